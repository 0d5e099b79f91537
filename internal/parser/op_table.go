package parser

import (
	"pyrint/internal/ast"
	"pyrint/internal/token"
)

// Precedence levels of the arithmetic and bitwise operators, lowest first.
// Boolean operators, comparisons, unary operators and '**' have their own
// productions.
const (
	precBitOr = iota + 1
	precBitXor
	precBitAnd
	precShift
	precAdditive
	precMultiplicative
)

// binaryOperator returns the precedence and AST operator of a binary token.
func binaryOperator(kind token.Kind) (int, ast.BinaryOp, bool) {
	switch kind {
	case token.Pipe:
		return precBitOr, ast.BinaryBitOr, true
	case token.Caret:
		return precBitXor, ast.BinaryBitXor, true
	case token.Amp:
		return precBitAnd, ast.BinaryBitAnd, true
	case token.Shl:
		return precShift, ast.BinaryShl, true
	case token.Shr:
		return precShift, ast.BinaryShr, true
	case token.Plus:
		return precAdditive, ast.BinaryAdd, true
	case token.Minus:
		return precAdditive, ast.BinarySub, true
	case token.Star:
		return precMultiplicative, ast.BinaryMul, true
	case token.Slash:
		return precMultiplicative, ast.BinaryDiv, true
	case token.SlashSlash:
		return precMultiplicative, ast.BinaryFloorDiv, true
	case token.Percent:
		return precMultiplicative, ast.BinaryMod, true
	case token.At:
		return precMultiplicative, ast.BinaryMatMul, true
	default:
		return -1, 0, false
	}
}

// augmentedOperator maps '+=' and friends to their binary operator.
func augmentedOperator(kind token.Kind) (ast.BinaryOp, bool) {
	switch kind {
	case token.PlusAssign:
		return ast.BinaryAdd, true
	case token.MinusAssign:
		return ast.BinarySub, true
	case token.StarAssign:
		return ast.BinaryMul, true
	case token.SlashAssign:
		return ast.BinaryDiv, true
	case token.SlashSlashAssign:
		return ast.BinaryFloorDiv, true
	case token.PercentAssign:
		return ast.BinaryMod, true
	case token.AtAssign:
		return ast.BinaryMatMul, true
	case token.AmpAssign:
		return ast.BinaryBitAnd, true
	case token.PipeAssign:
		return ast.BinaryBitOr, true
	case token.CaretAssign:
		return ast.BinaryBitXor, true
	case token.ShlAssign:
		return ast.BinaryShl, true
	case token.ShrAssign:
		return ast.BinaryShr, true
	case token.StarStarAssign:
		return ast.BinaryPow, true
	default:
		return 0, false
	}
}

func unaryOperator(kind token.Kind) (ast.UnaryOp, bool) {
	switch kind {
	case token.Plus:
		return ast.UnaryPos, true
	case token.Minus:
		return ast.UnaryNeg, true
	case token.Tilde:
		return ast.UnaryInvert, true
	default:
		return 0, false
	}
}

// compareOperator maps single-token comparison operators.
func compareOperator(kind token.Kind) (ast.CompareOp, bool) {
	switch kind {
	case token.EqEq:
		return ast.CmpEq, true
	case token.BangEq:
		return ast.CmpNotEq, true
	case token.LtGt:
		return ast.CmpLtGt, true
	case token.Lt:
		return ast.CmpLt, true
	case token.LtEq:
		return ast.CmpLtEq, true
	case token.Gt:
		return ast.CmpGt, true
	case token.GtEq:
		return ast.CmpGtEq, true
	case token.KwIn:
		return ast.CmpIn, true
	default:
		return 0, false
	}
}
