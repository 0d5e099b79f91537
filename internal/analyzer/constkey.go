package analyzer

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"pyrint/internal/ast"
	"pyrint/internal/diag"
)

// checkDictKeys reports every repeat of a constant key in one display.
// Keys compare the way the runtime hashes them: 1, 1.0 and True collide.
func (c *checker) checkDictKeys(data *ast.ExprDictData) {
	if !c.enabled(diag.DuplicateKey) || len(data.Entries) < 2 {
		return
	}
	seen := make(map[string]struct{}, len(data.Entries))
	for _, en := range data.Entries {
		if !en.Key.IsValid() {
			continue
		}
		key, repr, ok := c.constKey(en.Key)
		if !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			c.report(diag.DuplicateKey, c.b.Exprs.Get(en.Key).Span, "Duplicate key %s in dictionary", repr)
			continue
		}
		seen[key] = struct{}{}
	}
}

// constKey returns a canonical key and a display form for constant
// expressions. f-strings and anything computed are not constant.
func (c *checker) constKey(id ast.ExprID) (key, repr string, ok bool) {
	exprs := c.b.Exprs
	if un, isUnary := exprs.Unary(id); isUnary && (un.Op == ast.UnaryNeg || un.Op == ast.UnaryPos) {
		key, repr, ok = c.constKey(un.Operand)
		if !ok || !strings.HasPrefix(key, "n:") {
			return "", "", false
		}
		if un.Op == ast.UnaryPos {
			return key, "+" + repr, true
		}
		return negateNumericKey(key), "-" + repr, true
	}

	lit, isLit := exprs.Lit(id)
	if !isLit {
		return "", "", false
	}
	text := c.name(lit.Value)
	switch lit.Kind {
	case ast.LitInt:
		n, valid := parseIntLiteral(text)
		if !valid {
			return "", "", false
		}
		return "n:" + n.String(), text, true
	case ast.LitFloat:
		return floatKey(text), text, true
	case ast.LitImag:
		return "j:" + strings.ReplaceAll(strings.ToLower(text), "_", ""), text, true
	case ast.LitTrue:
		return "n:1", "True", true
	case ast.LitFalse:
		return "n:0", "False", true
	case ast.LitNone:
		return "None", "None", true
	case ast.LitEllipsis:
		return "...", "Ellipsis", true
	case ast.LitString:
		return "s:" + text, "'" + text + "'", true
	case ast.LitBytes:
		return "b:" + text, "b'" + text + "'", true
	}
	return "", "", false
}

func parseIntLiteral(text string) (*big.Int, bool) {
	clean := strings.ReplaceAll(text, "_", "")
	n, ok := new(big.Int).SetString(clean, 0)
	if !ok {
		// base 0 rejects a plain leading zero such as "00".
		n, ok = new(big.Int).SetString(clean, 10)
	}
	return n, ok
}

// floatKey maps integral floats onto the integer key space.
func floatKey(text string) string {
	f, err := strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 64)
	if err != nil {
		return "f:" + text
	}
	if !math.IsInf(f, 0) && f == math.Trunc(f) {
		n, _ := new(big.Float).SetFloat64(f).Int(nil)
		return "n:" + n.String()
	}
	return "f:" + strconv.FormatFloat(f, 'g', -1, 64)
}

func negateNumericKey(key string) string {
	digits := strings.TrimPrefix(key, "n:")
	switch {
	case digits == "0":
		return key
	case strings.HasPrefix(digits, "-"):
		return "n:" + digits[1:]
	}
	return "n:-" + digits
}
