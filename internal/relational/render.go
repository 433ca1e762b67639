package relational

import (
	"fmt"
	"strings"
)

// ForeignKeyName builds the constraint identifier for a foreign key column.
func ForeignKeyName(table, column string) string {
	return fmt.Sprintf("FK_%s_%s", table, column)
}

func edgeKey(table, column string) string {
	return table + ";" + column
}

// RenderCreate serializes one table definition. Foreign key constraints stay
// inline right after their column unless the edge was deferred by cycle
// breaking; the column itself always stays in place.
func RenderCreate(t *Table, deferred map[string]bool) string {
	parts := make([]string, 0, len(t.Columns))
	for _, col := range t.Columns {
		parts = append(parts, renderColumn(t.Name, col))
		if col.ForeignKey && !deferred[edgeKey(t.Name, col.Name)] {
			parts = append(parts, fmt.Sprintf(
				"CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s(%s)",
				ForeignKeyName(t.Name, col.Name), col.Name,
				col.References, JoinSuffix(col.References, "Id"),
			))
		}
	}
	return fmt.Sprintf("CREATE TABLE %s (%s);", t.Name, strings.Join(parts, ", "))
}

func renderColumn(table string, col Column) string {
	def := col.Name + " " + col.Type
	if col.PrimaryKey {
		return def + " PRIMARY KEY NOT NULL"
	}
	if col.Nullable {
		return def + " NULL"
	}
	return def + " NOT NULL"
}

// RenderConstraint re-applies a foreign key whose inline definition was
// deferred to break a dependency cycle.
func RenderConstraint(table string, col Column) string {
	return fmt.Sprintf(
		"ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s(%s);",
		table, ForeignKeyName(table, col.Name), col.Name,
		col.References, JoinSuffix(col.References, "Id"),
	)
}

// RenderDrop serializes one table deletion.
func RenderDrop(name string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s;", name)
}
