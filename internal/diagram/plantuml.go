// Package diagram renders the finalized relational model as a PlantUML
// entity-relationship diagram.
package diagram

import (
	"fmt"
	"strings"

	"github.com/schemaforge/xsd2erd/internal/relational"
)

// PlantUML serializes the snapshot: one entity block per table and one
// relation line per registered relationship. Primary keys carry a "+"
// marker, foreign keys "-", and choice columns an inline group annotation.
func PlantUML(snap *relational.Snapshot) string {
	var b strings.Builder
	b.WriteString("@startuml\n")
	b.WriteString("hide circle\n")
	b.WriteString("skinparam linetype ortho\n\n")

	for _, t := range snap.Tables {
		fmt.Fprintf(&b, "entity \"%s\" {\n", t.Name)
		for _, col := range t.Columns {
			b.WriteString("  ")
			switch {
			case col.PrimaryKey:
				b.WriteString("+ ")
			case col.ForeignKey:
				b.WriteString("- ")
			}
			fmt.Fprintf(&b, "%s: %s", col.Name, col.Type)
			if col.ChoiceGroup > 0 {
				fmt.Fprintf(&b, " <<choice %d>>", col.ChoiceGroup)
			}
			b.WriteString("\n")
		}
		b.WriteString("}\n\n")
	}

	for _, rel := range snap.Relationships {
		b.WriteString(relationLine(snap, rel))
		b.WriteString("\n")
	}

	b.WriteString("@enduml\n")
	return b.String()
}

func relationLine(snap *relational.Snapshot, rel relational.Relationship) string {
	if rel.Cardinality == relational.Many {
		// one owned row, many owning rows
		return fmt.Sprintf("\"%s\" ||--o{ \"%s\"", rel.OwnedTable, rel.OwningTable)
	}
	glyph := "||--||"
	if columnNullable(snap, rel.OwningTable, rel.Column) {
		glyph = "||--o|"
	}
	return fmt.Sprintf("\"%s\" %s \"%s\"", rel.OwningTable, glyph, rel.OwnedTable)
}

func columnNullable(snap *relational.Snapshot, table, column string) bool {
	for _, t := range snap.Tables {
		if t.Name != table {
			continue
		}
		if col, ok := t.Column(column); ok {
			return col.Nullable
		}
	}
	return false
}
