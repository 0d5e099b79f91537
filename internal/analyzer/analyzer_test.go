package analyzer

import (
	"slices"
	"strings"
	"testing"

	"pyrint/internal/diag"
)

func TestCleanSourceHasNoIssues(t *testing.T) {
	src := `import os.path as p, sys
from . import util

class Point:
    def __init__(self, x, y=0):
        self.x = x
        self.y = y
        return None

    @property
    def norm(self):
        return (self.x ** 2 + self.y ** 2) ** 0.5

    @norm.setter
    def norm(self, value):
        pass

    @staticmethod
    def origin():
        return Point(0)

    @classmethod
    def build(cls, *args):
        return cls(*args)

def gen(items):
    for i, *rest in items:
        if not rest:
            continue
        yield i
    return

async def fetch(urls):
    async with session() as s:
        return [await s.get(u) for u in urls]

def outer():
    count = 0
    def inner():
        nonlocal count
        count += 1
        return count
    return inner

try:
    pass
except ValueError as e:
    raise
`
	expectCodes(t, src)
}

func TestInitRules(t *testing.T) {
	src := `class A:
    def __init__(self):
        yield 1
        return 2

class B:
    def __init__(self):
        if self:
            return 1
        return
`
	expectCodes(t, src, "E0100:2", "E0101:4", "E0101:9")
}

func TestFunctionRedefined(t *testing.T) {
	src := `def f():
    pass

def f():
    pass

class A:
    def m(self):
        pass
    def m(self):
        pass

class B:
    def f(self):
        pass

def g():
    def f():
        pass
    def f():
        pass

def f():
    pass
`
	a := analyzeSource(t, src, nil)
	want := []string{"E0102:4", "E0102:10", "E0102:20", "E0102:23"}
	if got := a.codesAt(); !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	msgs := a.messages()
	if msgs[0] != "function already defined line 1" || msgs[1] != "method already defined line 8" || msgs[3] != "function already defined line 1" {
		t.Fatalf("unexpected messages %q", msgs)
	}
	if len(a.diags[0].Notes) != 1 {
		t.Fatalf("expected a note pointing at the first definition")
	}
}

func TestRedefinitionExemptions(t *testing.T) {
	src := `from typing import overload
import typing

class A:
    @property
    def v(self):
        return 1

    @v.setter
    def v(self, value):
        pass

    @v.deleter
    def v(self):
        pass

@overload
def h(x: int) -> int: ...
@typing.overload
def h(x: str) -> str: ...
def h(x):
    return x
`
	expectCodes(t, src)
}

func TestPropertyRedefined(t *testing.T) {
	src := `class A:
    @property
    def v(self):
        return 1

    @property
    def v(self):
        return 2
`
	expectCodes(t, src, "E0102:7")
}

func TestOutsideFunction(t *testing.T) {
	src := `return 1
yield 2
x = yield from y

class A:
    return
    yield 3

    def ok(self):
        yield 4
        return

for i in x:
    def f():
        yield i
`
	expectCodes(t, src, "E0104:1", "E0105:2", "E0105:3", "E0104:6", "E0105:7")
}

func TestReturnArgInGenerator(t *testing.T) {
	src := `def g():
    yield 1
    if x:
        return "early"
    return

def h():
    return 1

async def ag():
    yield 1
    return None

def nested():
    def inner():
        yield 1
    return 5
`
	expectCodes(t, src, "E0106:4")
}

func TestReturnNoneIsBare(t *testing.T) {
	src := `class A:
    def __init__(self):
        if self:
            return None
        return

    def gen(self):
        yield 1
        return None

class B:
    def __init__(self):
        return 0
`
	expectCodes(t, src, "E0101:13")
}

func TestDuplicateArgumentName(t *testing.T) {
	src := `def f(a, b, a, a, *b):
    pass

fn = lambda x, x: x

def ok(a, b, *args, c, **kw):
    pass
`
	a := analyzeSource(t, src, nil)
	if got, want := a.codesAt(), []string{"E0108:1", "E0108:4"}; !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if a.diags[0].Message != "Duplicate argument name a in function definition" {
		t.Fatalf("message = %q", a.diags[0].Message)
	}
}

func TestNotInLoop(t *testing.T) {
	src := `def f():
    if x:
        continue

for i in x:
    def g():
        break
    class C:
        continue
    try:
        continue
    except E:
        break
    finally:
        pass
else:
    break

while x:
    pass
continue
`
	a := analyzeSource(t, src, nil)
	want := []string{"E0116:3", "E0116:7", "E0116:9", "E0116:17", "E0116:21"}
	if got := a.codesAt(); !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if a.diags[0].Message != "'continue' not properly in loop" || a.diags[1].Message != "'break' not properly in loop" {
		t.Fatalf("messages %q", a.messages())
	}
}

func TestNonlocalAndGlobal(t *testing.T) {
	src := `x = 1

def outer():
    x = 2
    y = 3
    def inner():
        global x
        nonlocal x
        x = 4
    def other():
        nonlocal y
        global y, y
        nonlocal y
    return inner
`
	a := analyzeSource(t, src, nil)
	want := []string{"E0115:8", "E0115:12"}
	if got := a.codesAt(); !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if a.diags[0].Message != "Name 'x' is nonlocal and global" {
		t.Fatalf("message = %q", a.diags[0].Message)
	}
}

func TestNonlocalAndGlobalOnlyInFunctions(t *testing.T) {
	src := `class C:
    global x
    nonlocal x

def f():
    y = 1
    class D:
        global y
        nonlocal y
    return D
`
	a := analyzeSource(t, src, nil)
	want := []string{"E0117:3"}
	if got := a.codesAt(); !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestNonlocalWithoutBinding(t *testing.T) {
	src := `g = 1
nonlocal g

def f1():
    def inner():
        nonlocal x
        x = 10
    return inner

def f2():
    def inner():
        nonlocal g
    return inner

def f3():
    y = 1
    def inner():
        nonlocal y
        nonlocal z
    return inner

def f4():
    def inner():
        nonlocal later
    later = 1

class K:
    attr = 1
    def m(self):
        def inner():
            nonlocal attr
        return inner

def f5(param):
    class Mid:
        def m(self):
            nonlocal param
    def chain():
        nonlocal param
        def deeper():
            nonlocal param
`
	want := []string{"E0117:2", "E0117:6", "E0117:12", "E0117:19", "E0117:24", "E0117:31"}
	expectCodes(t, src, want...)
}

func TestUsedPriorGlobalDeclaration(t *testing.T) {
	src := `def f1():
    print(x)
    global x
    x = 10

def f2():
    y = y + 1
    global y

def f3():
    def inner():
        return nested
    global nested

def f4():
    result = [comp for i in range(1)]
    global comp

class C:
    def m(self):
        return attr
    global attr

def ok():
    global z
    z = 1
    global z

def shadow():
    def inner(w):
        return w
    global w
`
	a := analyzeSource(t, src, nil)
	want := []string{"E0118:2", "E0118:7", "E0118:12", "E0118:16", "E0118:21"}
	if got := a.codesAt(); !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if a.diags[0].Message != "Name 'x' is used prior to global declaration" {
		t.Fatalf("message = %q", a.diags[0].Message)
	}
}

func TestSupplementaryRules(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []string
	}{
		{"nonexistent operator", "if 5 <> 10:\n    pass\nx = (3 != 4)\n", []string{"E0107:1"}},
		{"starred value", "def f(x):\n    return *x\ny = [*x]\nprint(*x)\n", []string{"E0114:2"}},
		{"too many stars", "a, *b, *c = d\n[x, *y] = z\nfor *p, *q in r:\n    pass\nv = [i for *s, *t in u]\n((m, *n), *o) = w\n",
			[]string{"E0112:1", "E0112:3", "E0112:5"}},
		{"bare raise", "raise\ntry:\n    pass\nexcept:\n    raise\nelse:\n    raise\nfinally:\n    raise\n",
			[]string{"E0704:1", "E0704:7", "E0704:9"}},
		{"bare raise nested def", "try:\n    pass\nexcept:\n    def f():\n        raise\n    try:\n        pass\n    except:\n        raise\n    raise\n",
			[]string{"E0704:5"}},
		{"notimplemented", "def f():\n    raise NotImplemented\ndef g():\n    raise NotImplemented('x')\ndef h():\n    raise NotImplementedError\n    return NotImplemented\n",
			[]string{"E0711:2", "E0711:4"}},
		{"await outside async", "await x\ndef f():\n    await x\nasync def g():\n    await x\n    h = lambda: await x\n    def i():\n        await x\n    return [await v for v in x]\n",
			[]string{"E1142:1", "E1142:3", "E1142:6", "E1142:8"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expectCodes(t, tc.src, tc.want...)
		})
	}
}

func TestMethodArguments(t *testing.T) {
	src := `class A:
    def none():
        pass
    def wrong(this):
        pass
    @staticmethod
    def s():
        pass
    @classmethod
    def c(cls):
        pass
    @classmethod
    def c2():
        pass
    def __new__(cls):
        pass
    def var(*args):
        pass
    def kwonly(*, a):
        pass
    def good(self, other):
        pass

def free():
    pass
`
	a := analyzeSource(t, src, nil)
	want := []string{"E0211:2", "E0213:4", "E0211:13", "E0211:19"}
	if got := a.codesAt(); !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if a.diags[1].Message != `Method 'wrong' should have "self" as first argument` {
		t.Fatalf("message = %q", a.diags[1].Message)
	}
}

func TestDuplicateKeys(t *testing.T) {
	src := `d = {
    "k": 1,
    'k': 2,
    1: "one",
    1.0: "float",
    True: "bool",
    None: 0,
    None: 1,
    -1: 0,
    -1: 1,
    0x10: 0,
    16: 1,
    f"k": 3,
    key: 4,
    key: 5,
    **extra,
    "nested": {"a": 1, "a": 2},
}
`
	a := analyzeSource(t, src, nil)
	want := []string{"E0109:3", "E0109:5", "E0109:6", "E0109:8", "E0109:10", "E0109:12", "E0109:17"}
	if got := a.codesAt(); !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if a.diags[0].Message != "Duplicate key 'k' in dictionary" {
		t.Fatalf("message = %q", a.diags[0].Message)
	}
}

func TestDisabledRulesAreSilent(t *testing.T) {
	src := `def f():
    def g():
        print(x)
        global x
        nonlocal x
        nonlocal y
    return
    continue
`
	rules, err := diag.NewRuleSet(nil, []diag.Code{
		diag.NonlocalAndGlobal, diag.NonlocalWithoutBind, diag.UsedPriorGlobalDecl,
	})
	if err != nil {
		t.Fatal(err)
	}
	a := analyzeSource(t, src, rules)
	if got, want := a.codesAt(), []string{"E0116:8"}; !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	all := analyzeSource(t, src, nil)
	got := strings.Join(all.codesAt(), " ")
	for _, code := range []string{"E0118:3", "E0115:5", "E0117:5", "E0117:6", "E0116:8"} {
		if !strings.Contains(got, code) {
			t.Errorf("missing %s in %s", code, got)
		}
	}
}

func TestFramesBalanced(t *testing.T) {
	src := `class A:
    def m(self):
        f = lambda x: lambda y: x + y
        return f
def g():
    pass
`
	a := analyzeSource(t, src, nil)
	if a.result.Frames != 6 || a.result.Functions != 4 {
		t.Fatalf("frames=%d functions=%d", a.result.Frames, a.result.Functions)
	}
}
