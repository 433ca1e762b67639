package sqltype_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemaforge/xsd2erd/internal/sqltype"
)

func TestResolvePrimitives(t *testing.T) {
	m := sqltype.NewMapper(nil)

	tests := []struct {
		name string
		want string
	}{
		{"string", "text"},
		{"boolean", "boolean"},
		{"decimal", "numeric(18,2)"},
		{"dateTime", "timestamp"},
		{"date", "date"},
		{"integer", "bigint"},
		{"int", "integer"},
		{"short", "smallint"},
		{"hexBinary", "bytea"},
		{"anyURI", "text"},
	}
	for _, tt := range tests {
		got, ok := m.Resolve(tt.name)
		require.True(t, ok, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}
}

func TestResolveUnknown(t *testing.T) {
	m := sqltype.NewMapper(nil)

	for _, name := range []string{"QName", "IDREF", "NOTATION", "SomethingElse", ""} {
		_, ok := m.Resolve(name)
		assert.False(t, ok, name)
	}
}

func TestResolveUserTypeChain(t *testing.T) {
	m := sqltype.NewMapper(map[string]string{
		"Money":  "decimal",
		"Price":  "Money",
		"amount": "Price",
	})

	got, ok := m.Resolve("amount")
	require.True(t, ok)
	assert.Equal(t, "numeric(18,2)", got)
}

func TestResolveSelfReferentialAliasDoesNotLoop(t *testing.T) {
	m := sqltype.NewMapper(map[string]string{
		"Loop": "Loop",
		"A":    "B",
		"B":    "A",
	})

	_, ok := m.Resolve("Loop")
	assert.False(t, ok)
	_, ok = m.Resolve("A")
	assert.False(t, ok)
}
