package relational

import "github.com/schemaforge/xsd2erd/internal/xsd"

// relationshipKey identifies one schema field pair: the table being built
// and the field name observed inside it. Cardinality inversion rewrites the
// entry under the same key.
func relationshipKey(owner, field string) string {
	return owner + ";" + field
}

// Registry tracks which table owns the foreign key column for every resolved
// reference. Entries keep insertion order so diagram output and consistency
// checks stay deterministic.
type Registry struct {
	entries map[string]Relationship
	order   []string
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Relationship)}
}

func (r *Registry) Put(key string, rel Relationship) {
	if _, ok := r.entries[key]; !ok {
		r.order = append(r.order, key)
	}
	r.entries[key] = rel
}

func (r *Registry) Get(key string) (Relationship, bool) {
	rel, ok := r.entries[key]
	return rel, ok
}

func (r *Registry) Remove(key string) {
	if _, ok := r.entries[key]; !ok {
		return
	}
	delete(r.entries, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}

// HasInverse reports whether some entry already records the opposite
// direction between two tables.
func (r *Registry) HasInverse(owning, owned string) bool {
	for _, key := range r.order {
		rel := r.entries[key]
		if rel.OwningTable == owned && rel.OwnedTable == owning {
			return true
		}
	}
	return false
}

// Relationships returns every entry in insertion order.
func (r *Registry) Relationships() []Relationship {
	out := make([]Relationship, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.entries[key])
	}
	return out
}

// resolveReference turns an element that points at another table into a
// foreign key. Single occurrences put the key on the table under
// construction; repeated occurrences put it on the referenced table, and a
// repeat observed after a single occurrence of the same field evicts the
// stale column before rewriting the relationship.
func (c *buildContext) resolveReference(el *xsd.Node, parent, target string, group int, cols []Column) ([]Column, error) {
	owner := c.norm.Clean(parent)
	ref := c.norm.Clean(target)
	field := el.Name
	if field == "" {
		field = el.Ref
	}
	key := relationshipKey(owner, c.norm.Clean(field))

	if el.Repeated() {
		if existing, ok := c.registry.Get(key); ok {
			if existing.Cardinality == Many {
				return cols, nil
			}
			removed := false
			for i := range cols {
				if cols[i].Name == existing.Column {
					cols = append(cols[:i], cols[i+1:]...)
					removed = true
					break
				}
			}
			if !removed {
				removed = c.builder.RemoveColumn(existing.OwningTable, existing.Column)
			}
			if !removed {
				return cols, &InconsistentStateError{Table: existing.OwningTable, Column: existing.Column}
			}
			c.registry.Remove(key)
		}
		fk := Column{
			Name:        fkColumnName(ref, owner, c.norm.Clean(field)),
			Type:        "bigint",
			Nullable:    nullable(el, group),
			ForeignKey:  true,
			References:  owner,
			ChoiceGroup: group,
		}
		c.builder.BuildOrMerge(ref, []Column{fk})
		c.builder.BuildOrMerge(owner, nil)
		c.registry.Put(key, Relationship{
			OwningTable: ref,
			OwnedTable:  owner,
			Column:      fk.Name,
			Cardinality: Many,
		})
		return cols, nil
	}

	if existing, ok := c.registry.Get(key); ok && existing.Cardinality == Many {
		// a repeated occurrence already claimed this field; it stays many
		return cols, nil
	}
	fk := Column{
		Name:        fkColumnName(owner, ref, c.norm.Clean(field)),
		Type:        "bigint",
		Nullable:    nullable(el, group),
		ForeignKey:  true,
		References:  ref,
		ChoiceGroup: group,
	}
	exists := false
	for i := range cols {
		if cols[i].Name == fk.Name {
			exists = true
			break
		}
	}
	if !exists {
		cols = append(cols, fk)
	}
	c.builder.BuildOrMerge(ref, nil)
	c.registry.Put(key, Relationship{
		OwningTable: owner,
		OwnedTable:  ref,
		Column:      fk.Name,
		Cardinality: Single,
	})
	return cols, nil
}

// fkColumnName derives the foreign key column from the referenced table's
// primary key. Self-references fall back to the field name so the column
// does not collide with the primary key itself.
func fkColumnName(owning, referenced, field string) string {
	if owning == referenced && field != "" {
		return JoinSuffix(field, "Id")
	}
	return JoinSuffix(referenced, "Id")
}
