package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupIdent(t *testing.T) {
	assert.Equal(t, LET, LookupIdent("let", false))
	assert.Equal(t, LET, LookupIdent("ليكن", true))
	assert.Equal(t, MATCH, LookupIdent("طابق", true))
	assert.Equal(t, BOOL_LIT, LookupIdent("true", false))
	assert.Equal(t, BOOL_LIT, LookupIdent("خطا", true))
	assert.Equal(t, UNDERSCORE, LookupIdent("_", false))
	assert.Equal(t, ID, LookupIdent("fib", false))
	// spellings are dialect-scoped
	assert.Equal(t, ID, LookupIdent("ليكن", false))
	assert.Equal(t, ID, LookupIdent("let", true))
}

func TestBinaryPrecOrdering(t *testing.T) {
	// multiplication binds tighter than addition, addition tighter than
	// comparison, comparison tighter than the logical operators
	assert.Greater(t, BinaryPrec(STAR), BinaryPrec(PLUS))
	assert.Greater(t, BinaryPrec(PLUS), BinaryPrec(LT))
	assert.Greater(t, BinaryPrec(LT), BinaryPrec(AND))
	assert.Greater(t, BinaryPrec(AND), BinaryPrec(OR))
	assert.Greater(t, BinaryPrec(OR), BinaryPrec(ASSIGN))
	// the application kinds bind tightest
	assert.Greater(t, BinaryPrec(LPAREN), BinaryPrec(DOT))
	assert.Greater(t, BinaryPrec(DOT), BinaryPrec(STAR))
	// non-operators have no precedence
	assert.Zero(t, BinaryPrec(ID))
}

func TestUnaryAndPostfix(t *testing.T) {
	assert.True(t, IsPrefix(MINUS))
	assert.True(t, IsPrefix(NOT))
	assert.True(t, IsPostfix(QUESTION))
	assert.True(t, IsPostfix(NOT))
	assert.False(t, IsPostfix(MINUS))
	assert.Greater(t, UnaryPrec(QUESTION), UnaryPrec(MINUS))
}

func TestAssociativity(t *testing.T) {
	assert.True(t, RightAssoc(ASSIGN))
	assert.True(t, RightAssoc(PLUS_ASSIGN))
	assert.False(t, RightAssoc(PLUS))
}

func TestIsApplication(t *testing.T) {
	assert.True(t, IsApplication(LPAREN))
	assert.True(t, IsApplication(LBRACKET))
	assert.True(t, IsApplication(LBRACE))
	assert.False(t, IsApplication(RPAREN))
}

func TestIsLiteral(t *testing.T) {
	assert.True(t, INT_LIT.IsLiteral())
	assert.True(t, STRING_LIT.IsLiteral())
	assert.False(t, ID.IsLiteral())
}
