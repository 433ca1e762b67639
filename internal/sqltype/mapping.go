// Package sqltype maps XSD primitive and user-defined simple types to
// PostgreSQL column types.
package sqltype

// primitives is the XSD built-in to PostgreSQL translation table. Entries
// without a sensible relational representation are absent on purpose.
var primitives = map[string]string{
	"string":             "text",
	"boolean":            "boolean",
	"decimal":            "numeric(18,2)",
	"float":              "real",
	"double":             "double precision",
	"duration":           "interval",
	"dateTime":           "timestamp",
	"time":               "time",
	"date":               "date",
	"gYearMonth":         "timestamp",
	"gYear":              "timestamp",
	"gMonthDay":          "timestamp",
	"gDay":               "timestamp",
	"gMonth":             "timestamp",
	"hexBinary":          "bytea",
	"base64Binary":       "bytea",
	"anyURI":             "text",
	"normalizedString":   "text",
	"token":              "text",
	"language":           "text",
	"Name":               "text",
	"NCName":             "text",
	"integer":            "bigint",
	"nonPositiveInteger": "bigint",
	"negativeInteger":    "bigint",
	"long":               "bigint",
	"int":                "integer",
	"short":              "smallint",
	"byte":               "smallint",
	"nonNegativeInteger": "bigint",
	"unsignedLong":       "bigint",
	"unsignedInt":        "integer",
	"unsignedShort":      "smallint",
	"unsignedByte":       "smallint",
	"positiveInteger":    "bigint",
}

// Mapper resolves type names against the primitive table and a set of
// user-defined simple types (simpleType restrictions and globally typed
// elements).
type Mapper struct {
	user map[string]string
}

func NewMapper(userTypes map[string]string) *Mapper {
	m := &Mapper{user: make(map[string]string, len(userTypes))}
	for name, base := range userTypes {
		m.user[name] = base
	}
	return m
}

// Resolve returns the PostgreSQL type for an XSD type name, following
// user-defined aliases down to a primitive. The chain is bounded so that a
// self-referential alias cannot loop.
func (m *Mapper) Resolve(name string) (string, bool) {
	for hops := 0; hops < 8; hops++ {
		if sqlType, ok := primitives[name]; ok {
			return sqlType, true
		}
		base, ok := m.user[name]
		if !ok || base == name {
			return "", false
		}
		name = base
	}
	return "", false
}
