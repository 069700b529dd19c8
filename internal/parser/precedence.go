package parser

import "github.com/cfs-lang/cfscript/internal/token"

// precedence implements the four-tier table from spec.md §4.1, resolved
// per SPEC_FULL.md Open Question #2: tier 1 binds tightest, tier 4 loosest
// — the only ordering under which `1 + 2 * 3 == 7` (spec.md §8 scenario 1)
// holds, since tier 3 (`* / %`) must out-bind tier 4 (`+ -`).
//
// Tier 1 (tightest): || && > >= < <=
// Tier 2:            == != **
// Tier 3:            * / %
// Tier 4 (loosest):  + -
func precedence(t token.Type) int {
	switch t {
	case token.OR, token.AND, token.GT, token.GT_EQ, token.LT, token.LT_EQ:
		return 4
	case token.EQ, token.NOT_EQ, token.POW:
		return 3
	case token.STAR, token.SLASH, token.PERCENT:
		return 2
	case token.PLUS, token.MINUS:
		return 1
	default:
		return 0
	}
}

func isBinaryOperator(t token.Type) bool {
	return precedence(t) > 0
}

// rightAssociative reports whether op should fold right-to-left. Every
// operator in the table is left-associative except `**`, which spec.md §8
// pins down explicitly: "2 ** 3 ** 2 evaluates left-associatively to 64"
// — so in fact `**` is ALSO left-associative; cfscript has no
// right-associative operator. This function exists so a future operator
// (spec.md doesn't add one) has somewhere to be wired in without
// revisiting parseBinary's fold direction.
func rightAssociative(t token.Type) bool {
	return false
}
