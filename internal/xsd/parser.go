package xsd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// ParseFile reads and parses one XSD document from disk.
func ParseFile(path string) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	return convert(doc)
}

// Parse parses one XSD document from raw bytes.
func Parse(data []byte) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to read schema document: %w", err)
	}
	return convert(doc)
}

func convert(doc *etree.Document) (*Document, error) {
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("schema document is empty")
	}
	if root.Tag != "schema" {
		return nil, fmt.Errorf("unexpected document root <%s>, want <schema>", root.Tag)
	}

	d := &Document{
		Root:         convertElement(root, KindSchema),
		complexTypes: make(map[string]*Node),
		userTypes:    make(map[string]string),
	}

	indexComplexTypes(d.Root, d.complexTypes)
	collectUserTypes(root, d.userTypes)

	return d, nil
}

func convertElement(el *etree.Element, kind Kind) *Node {
	node := &Node{
		Kind:      kind,
		Name:      el.SelectAttrValue("name", ""),
		TypeName:  localName(el.SelectAttrValue("type", "")),
		Ref:       localName(el.SelectAttrValue("ref", "")),
		MinOccurs: parseOccurs(el.SelectAttrValue("minOccurs", "1")),
		MaxOccurs: parseOccurs(el.SelectAttrValue("maxOccurs", "1")),
		Nillable:  strings.EqualFold(el.SelectAttrValue("nillable", "false"), "true"),
	}

	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "element":
			node.Children = append(node.Children, convertElement(child, KindElement))
		case "complexType":
			node.Children = append(node.Children, convertElement(child, KindComplexType))
		case "sequence", "all":
			node.Children = append(node.Children, convertElement(child, KindSequence))
		case "choice":
			node.Children = append(node.Children, convertElement(child, KindChoice))
		}
		// Attributes, annotations, simpleTypes and facet constructs carry no
		// table structure and are left out of the tree.
	}

	return node
}

func parseOccurs(value string) int {
	if value == "unbounded" {
		return Unbounded
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 1
	}
	return n
}

func localName(qname string) string {
	if i := strings.IndexByte(qname, ':'); i >= 0 {
		return qname[i+1:]
	}
	return qname
}

func indexComplexTypes(node *Node, index map[string]*Node) {
	if node.Kind == KindComplexType && node.Name != "" {
		if _, ok := index[node.Name]; !ok {
			index[node.Name] = node
		}
	}
	for _, child := range node.Children {
		indexComplexTypes(child, index)
	}
}

// collectUserTypes records the primitive behind every named simple type and
// every globally declared typed element, so that fields declared with those
// names resolve to a column type instead of a relationship.
func collectUserTypes(root *etree.Element, types map[string]string) {
	for _, el := range root.ChildElements() {
		switch el.Tag {
		case "element":
			name := el.SelectAttrValue("name", "")
			typ := localName(el.SelectAttrValue("type", ""))
			if name != "" && typ != "" {
				types[name] = typ
			}
		case "simpleType":
			name := el.SelectAttrValue("name", "")
			restr := el.SelectElement("restriction")
			if name != "" && restr != nil {
				if base := localName(restr.SelectAttrValue("base", "")); base != "" {
					types[name] = base
				}
			}
		}
	}

	// simpleTypes may also appear below the top level.
	for _, el := range root.FindElements("//simpleType") {
		name := el.SelectAttrValue("name", "")
		restr := el.SelectElement("restriction")
		if name == "" || restr == nil {
			continue
		}
		if _, ok := types[name]; ok {
			continue
		}
		if base := localName(restr.SelectAttrValue("base", "")); base != "" {
			types[name] = base
		}
	}
}
