package relational

import "github.com/schemaforge/xsd2erd/internal/xsd"

// TypeResolver maps schema type names to SQL column types.
type TypeResolver interface {
	Resolve(name string) (sqlType string, ok bool)
}

// Config tunes one generation run.
type Config struct {
	// Strict aborts on unresolvable types instead of falling back.
	Strict bool
	// Normalize rewrites separator characters in identifiers to underscores.
	Normalize bool
	// MaxDepth bounds traversal depth.
	MaxDepth int
	// CycleBudget bounds how many edges cycle breaking may remove.
	CycleBudget int
	// FallbackType is the column type for unresolvable names outside strict
	// mode.
	FallbackType string
}

func DefaultConfig() Config {
	return Config{
		Normalize:    true,
		MaxDepth:     1000,
		CycleBudget:  100,
		FallbackType: "text",
	}
}

// Input is one schema document plus the name of the synthetic root table
// that anchors its global declarations.
type Input struct {
	Doc       *xsd.Document
	RootTable string
	Types     TypeResolver
}

// Generate translates the input documents into one relational model and the
// dependency-ordered DDL for it. Output is all-or-nothing: any fatal
// condition returns an error and no statements.
func Generate(inputs []Input, cfg Config) (*Result, error) {
	ctx := &buildContext{
		cfg:      cfg,
		builder:  NewTableBuilder(),
		registry: NewRegistry(),
		norm:     NewNormalizer(cfg.Normalize),
		state:    make(map[string]expandState),
	}

	for _, in := range inputs {
		ctx.doc = in.Doc
		ctx.types = in.Types
		root := ctx.norm.Clean(in.RootTable)
		if _, _, err := ctx.walk(in.Doc.Root, root, 0, 0); err != nil {
			return nil, err
		}
		if !ctx.builder.Generated(root) {
			ctx.builder.BuildOrMerge(root, nil)
		}
	}

	if err := ctx.checkConsistency(); err != nil {
		return nil, err
	}

	graph := BuildGraph(ctx.builder.TablesByCreation())
	deferred, err := graph.BreakCycles(cfg.CycleBudget)
	if err != nil {
		return nil, err
	}
	order, err := graph.TopoSort()
	if err != nil {
		return nil, err
	}

	deferredSet := make(map[string]bool, len(deferred))
	for _, e := range deferred {
		deferredSet[edgeKey(e.From, e.Column)] = true
	}

	result := &Result{Warnings: ctx.warnings}
	for _, name := range order {
		t, ok := ctx.builder.Table(name)
		if !ok {
			continue
		}
		result.CreateStatements = append(result.CreateStatements, RenderCreate(t, deferredSet))
	}
	for _, e := range deferred {
		t, ok := ctx.builder.Table(e.From)
		if !ok {
			continue
		}
		col, ok := t.Column(e.Column)
		if !ok {
			return nil, &InconsistentStateError{Table: e.From, Column: e.Column}
		}
		result.ConstraintStatements = append(result.ConstraintStatements, RenderConstraint(e.From, *col))
	}
	for i := len(order) - 1; i >= 0; i-- {
		result.DropStatements = append(result.DropStatements, RenderDrop(order[i]))
	}

	result.Snapshot = &Snapshot{
		Tables:        ctx.builder.TablesByEmission(),
		Relationships: ctx.registry.Relationships(),
		Graph:         graph,
	}
	return result, nil
}

// checkConsistency verifies that every registered relationship still has its
// foreign key column in its owning table before any ordering is derived.
func (c *buildContext) checkConsistency() error {
	for _, rel := range c.registry.Relationships() {
		t, ok := c.builder.Table(rel.OwningTable)
		if !ok {
			return &InconsistentStateError{Table: rel.OwningTable, Column: rel.Column}
		}
		if _, ok := t.Column(rel.Column); !ok {
			return &InconsistentStateError{Table: rel.OwningTable, Column: rel.Column}
		}
	}
	return nil
}
