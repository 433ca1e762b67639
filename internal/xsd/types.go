// Package xsd parses XML Schema documents into the in-memory tree the
// relational generator walks. Imports, includes and multi-namespace
// documents are not resolved; namespace prefixes are stripped.
package xsd

// Unbounded marks an unlimited maxOccurs.
const Unbounded = -1

type Kind int

const (
	KindSchema Kind = iota
	KindElement
	KindComplexType
	KindSequence
	KindChoice
)

func (k Kind) String() string {
	switch k {
	case KindSchema:
		return "schema"
	case KindElement:
		return "element"
	case KindComplexType:
		return "complexType"
	case KindSequence:
		return "sequence"
	case KindChoice:
		return "choice"
	}
	return "unknown"
}

// Node is one declaration in the schema tree.
type Node struct {
	Kind      Kind
	Name      string
	TypeName  string
	Ref       string
	MinOccurs int
	MaxOccurs int
	Nillable  bool
	Children  []*Node
}

// Optional reports whether the declaration may be absent.
func (n *Node) Optional() bool {
	return n.MinOccurs == 0
}

// Repeated reports whether more than one occurrence is allowed.
func (n *Node) Repeated() bool {
	return n.MaxOccurs == Unbounded || n.MaxOccurs > 1
}

// Document is a parsed schema: the declaration tree plus the indexes the
// walker needs to resolve type references.
type Document struct {
	Root *Node

	complexTypes map[string]*Node
	userTypes    map[string]string
}

// ComplexType returns the named complex type declaration, or nil.
func (d *Document) ComplexType(name string) *Node {
	if name == "" {
		return nil
	}
	return d.complexTypes[name]
}

// UserTypes returns the user-defined simple type mapping: element and
// simpleType names to the primitive they ultimately restrict.
func (d *Document) UserTypes() map[string]string {
	return d.userTypes
}
