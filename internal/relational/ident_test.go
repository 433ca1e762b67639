package relational_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schemaforge/xsd2erd/internal/relational"
)

func TestCleanReplacesSeparators(t *testing.T) {
	norm := relational.NewNormalizer(true)

	assert.Equal(t, "order_line", norm.Clean("order-line"))
	assert.Equal(t, "order_line", norm.Clean("order.line"))
	assert.Equal(t, "order_line", norm.Clean("order line"))
	assert.Equal(t, "ns_order", norm.Clean("ns:order"))
	assert.Equal(t, "a_b_c_d", norm.Clean("a-b.c d"))
}

func TestCleanTrimsLeadingWhitespace(t *testing.T) {
	norm := relational.NewNormalizer(true)

	assert.Equal(t, "Person", norm.Clean("  Person"))
	assert.Equal(t, "Person", norm.Clean("\tPerson"))
}

func TestCleanDisabledKeepsName(t *testing.T) {
	norm := relational.NewNormalizer(false)

	assert.Equal(t, "order-line", norm.Clean("order-line"))
	assert.Equal(t, "order.line", norm.Clean("  order.line"), "leading whitespace still goes")
}

func TestJoinSuffixInsertsSeparatorAfterDigit(t *testing.T) {
	assert.Equal(t, "PersonId", relational.JoinSuffix("Person", "Id"))
	assert.Equal(t, "Table1_Id", relational.JoinSuffix("Table1", "Id"))
	assert.Equal(t, "Id", relational.JoinSuffix("", "Id"))
}
