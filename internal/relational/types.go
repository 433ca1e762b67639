// Package relational translates a parsed XSD tree into a relational model:
// tables with synthetic primary keys, foreign keys resolved by cardinality,
// and dependency-ordered DDL statements.
package relational

import "fmt"

type Cardinality int

const (
	Single Cardinality = iota
	Many
)

func (c Cardinality) String() string {
	if c == Many {
		return "many"
	}
	return "single"
}

type Column struct {
	Name       string
	Type       string
	Nullable   bool
	PrimaryKey bool
	ForeignKey bool
	// References holds the referenced table name for foreign key columns.
	References string
	// ChoiceGroup tags columns that belong to one mutually-exclusive
	// cluster. Zero means the column is not part of a choice.
	ChoiceGroup int
}

type Table struct {
	Name    string
	Columns []Column
	// Generated marks a table whose definition has been emitted at least
	// once. Emitted tables still grow through column merges.
	Generated bool
}

// Column returns the named column, if present.
func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// PrimaryKey returns the table's synthetic primary key column name.
func (t *Table) PrimaryKey() string {
	return JoinSuffix(t.Name, "Id")
}

// Relationship records which table owns the foreign key column for one
// schema field pair.
type Relationship struct {
	// OwningTable carries the foreign key column.
	OwningTable string
	// OwnedTable is the referenced side.
	OwnedTable  string
	Column      string
	Cardinality Cardinality
}

// Warning is a non-fatal issue collected during generation.
type Warning struct {
	Element  string
	TypeName string
	Fallback string
}

func (w Warning) String() string {
	return fmt.Sprintf("element %q: unknown type %q, using %s", w.Element, w.TypeName, w.Fallback)
}

// Snapshot is the finalized model handed to diagram rendering.
type Snapshot struct {
	Tables        []*Table
	Relationships []Relationship
	Graph         *Graph
}

// Result is the complete output of one generation run.
type Result struct {
	// CreateStatements are table creations in dependency order.
	CreateStatements []string
	// ConstraintStatements re-apply foreign keys deferred by cycle breaking.
	ConstraintStatements []string
	// DropStatements are table deletions in reverse dependency order.
	DropStatements []string
	Warnings       []Warning
	Snapshot       *Snapshot
}

// Statements returns the full forward sequence: creations, then deferred
// constraints.
func (r *Result) Statements() []string {
	out := make([]string, 0, len(r.CreateStatements)+len(r.ConstraintStatements))
	out = append(out, r.CreateStatements...)
	out = append(out, r.ConstraintStatements...)
	return out
}
