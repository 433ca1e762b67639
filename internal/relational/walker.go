package relational

import "github.com/schemaforge/xsd2erd/internal/xsd"

type expandState int

const (
	stateUnvisited expandState = iota
	stateInProgress
	stateMaterialized
)

// buildContext carries everything one generation run needs through the
// recursive traversal.
type buildContext struct {
	cfg      Config
	doc      *xsd.Document
	builder  *TableBuilder
	registry *Registry
	norm     *Normalizer
	types    TypeResolver
	warnings []Warning

	// choiceSeq hands out choice group tags; nested choices reuse the
	// enclosing group's tag instead of drawing a new one.
	choiceSeq int
	// state tracks structural expansion per named complex type, separately
	// from table emission.
	state map[string]expandState
}

// walk expands one node of the schema tree into the table under
// construction. It returns the columns accumulated for the caller when the
// node sits inside a choice; otherwise columns merge into the parent table
// before returning.
func (c *buildContext) walk(node *xsd.Node, parent string, depth, group int) (bool, []Column, error) {
	if depth > c.cfg.MaxDepth {
		return false, nil, &RecursionLimitError{Element: parent, Limit: c.cfg.MaxDepth}
	}

	if node.Kind == xsd.KindElement && len(node.Children) == 0 {
		return c.expandTypedLeaf(node, parent, depth)
	}

	found := false
	var cols []Column
	var err error
	for _, child := range node.Children {
		switch child.Kind {
		case xsd.KindElement:
			sub, _, werr := c.walk(child, nameOr(child, parent), depth+1, 0)
			if werr != nil {
				return false, nil, werr
			}
			found = found || sub
			cols, err = c.processElement(child, parent, group, cols)
			if err != nil {
				return false, nil, err
			}
			found = true
		case xsd.KindComplexType:
			name := nameOr(child, parent)
			key := c.norm.Clean(name)
			if child.Name == "" || c.state[key] == stateUnvisited {
				if child.Name != "" {
					c.state[key] = stateInProgress
				}
				sub, ccols, werr := c.walk(child, name, depth+1, group)
				if werr != nil {
					return false, nil, werr
				}
				found = found || sub
				cols = append(cols, ccols...)
				if child.Name != "" {
					c.state[key] = stateMaterialized
				}
			}
			cols, err = c.processElement(child, parent, group, cols)
			if err != nil {
				return false, nil, err
			}
		case xsd.KindSequence:
			sub, scols, werr := c.walk(child, parent, depth+1, group)
			if werr != nil {
				return false, nil, werr
			}
			found = found || sub
			cols = append(cols, scols...)
		case xsd.KindChoice:
			g := group
			if g == 0 {
				c.choiceSeq++
				g = c.choiceSeq
			}
			sub, ccols, werr := c.walk(child, parent, depth+1, g)
			if werr != nil {
				return false, nil, werr
			}
			found = found || sub
			cols = append(cols, ccols...)
		}
	}

	if len(cols) > 0 && parent != "" && group == 0 {
		c.builder.BuildOrMerge(c.norm.Clean(parent), cols)
		cols = nil
	}
	return found, cols, err
}

// expandTypedLeaf materializes the named complex type behind a childless
// typed element. Each distinct type expands structurally once; re-entry
// while the expansion is still in progress short-circuits, which is what
// bounds recursive type definitions.
func (c *buildContext) expandTypedLeaf(node *xsd.Node, parent string, depth int) (bool, []Column, error) {
	if node.TypeName == "" {
		return false, nil, nil
	}
	ct := c.doc.ComplexType(node.TypeName)
	if ct == nil {
		return false, nil, nil
	}
	key := c.norm.Clean(nameOr(ct, parent))
	if c.state[key] != stateUnvisited {
		return true, nil, nil
	}
	c.state[key] = stateInProgress
	if _, _, err := c.walk(ct, nameOr(ct, parent), depth+1, 0); err != nil {
		return false, nil, err
	}
	if !c.builder.Generated(key) {
		c.builder.BuildOrMerge(key, nil)
	}
	c.state[key] = stateMaterialized
	return true, nil, nil
}

// processElement appends the column an element contributes to the table
// under construction: a foreign key when the element points at another
// table, a typed data column otherwise.
func (c *buildContext) processElement(el *xsd.Node, parent string, group int, cols []Column) ([]Column, error) {
	if parent == "" {
		return cols, nil
	}
	name := el.Name
	if name == "" {
		name = el.Ref
	}
	if name == "" {
		return cols, nil
	}

	if target := c.referenceTarget(el); target != "" {
		return c.resolveReference(el, parent, target, group, cols)
	}

	typeName := el.TypeName
	if typeName == "" {
		typeName = el.Ref
	}
	if typeName == "" {
		typeName = "string"
	}
	sqlType, ok := c.types.Resolve(typeName)
	if !ok {
		if c.cfg.Strict {
			return cols, &UnknownTypeError{Element: name, TypeName: typeName}
		}
		sqlType = c.cfg.FallbackType
		c.warnings = append(c.warnings, Warning{Element: name, TypeName: typeName, Fallback: sqlType})
	}
	col := Column{
		Name:        c.norm.Clean(name),
		Type:        sqlType,
		Nullable:    nullable(el, group),
		ChoiceGroup: group,
	}
	for i := range cols {
		if cols[i].Name == col.Name {
			return cols, nil
		}
	}
	return append(cols, col), nil
}

// referenceTarget decides whether an element resolves to another table and
// returns that table's schema name, or "" for a plain data column.
func (c *buildContext) referenceTarget(el *xsd.Node) string {
	if el.Name != "" && c.builder.Generated(c.norm.Clean(el.Name)) {
		return el.Name
	}
	if el.Name != "" && c.doc.ComplexType(el.Name) != nil {
		return el.Name
	}
	if el.Ref != "" {
		return el.Ref
	}
	if el.TypeName != "" && c.doc.ComplexType(el.TypeName) != nil {
		return el.TypeName
	}
	return ""
}

func nullable(el *xsd.Node, group int) bool {
	return el.Optional() || el.Nillable || group > 0
}

func nameOr(node *xsd.Node, fallback string) string {
	if node.Name != "" {
		return node.Name
	}
	return fallback
}
