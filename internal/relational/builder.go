package relational

// TableBuilder maintains the evolving table map: every table carries exactly
// one synthetic primary key, columns merge by name across repeated visits,
// and at most one most-current definition per table exists at any time.
type TableBuilder struct {
	tables  map[string]*Table
	created []string
	emitted []string
}

func NewTableBuilder() *TableBuilder {
	return &TableBuilder{tables: make(map[string]*Table)}
}

// BuildOrMerge records candidate columns for a table, creating it on first
// encounter, and returns the current full definition text. Candidate columns
// already present (by name) drop silently; new ones append in first-seen
// order. The table is marked generated and its definition moves to the back
// of the emission order.
func (b *TableBuilder) BuildOrMerge(name string, cols []Column) string {
	t, ok := b.tables[name]
	if !ok {
		t = &Table{
			Name: name,
			Columns: []Column{{
				Name:       JoinSuffix(name, "Id"),
				Type:       "bigint",
				PrimaryKey: true,
			}},
		}
		b.tables[name] = t
		b.created = append(b.created, name)
	}

	for _, col := range cols {
		if _, exists := t.Column(col.Name); !exists {
			t.Columns = append(t.Columns, col)
		}
	}

	t.Generated = true
	b.touch(name)
	return RenderCreate(t, nil)
}

// RemoveColumn deletes a column from a table's current set. The synthetic
// primary key cannot be removed.
func (b *TableBuilder) RemoveColumn(table, column string) bool {
	t, ok := b.tables[table]
	if !ok {
		return false
	}
	for i := range t.Columns {
		if t.Columns[i].Name == column && !t.Columns[i].PrimaryKey {
			t.Columns = append(t.Columns[:i], t.Columns[i+1:]...)
			return true
		}
	}
	return false
}

func (b *TableBuilder) Table(name string) (*Table, bool) {
	t, ok := b.tables[name]
	return t, ok
}

func (b *TableBuilder) Generated(name string) bool {
	t, ok := b.tables[name]
	return ok && t.Generated
}

// TablesByCreation returns tables in first-discovery order.
func (b *TableBuilder) TablesByCreation() []*Table {
	out := make([]*Table, 0, len(b.created))
	for _, name := range b.created {
		out = append(out, b.tables[name])
	}
	return out
}

// TablesByEmission returns tables ordered by most recent build time.
func (b *TableBuilder) TablesByEmission() []*Table {
	out := make([]*Table, 0, len(b.emitted))
	for _, name := range b.emitted {
		out = append(out, b.tables[name])
	}
	return out
}

func (b *TableBuilder) touch(name string) {
	for i, n := range b.emitted {
		if n == name {
			b.emitted = append(b.emitted[:i], b.emitted[i+1:]...)
			break
		}
	}
	b.emitted = append(b.emitted, name)
}
