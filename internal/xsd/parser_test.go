package xsd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemaforge/xsd2erd/internal/xsd"
)

func TestParseBuildsTree(t *testing.T) {
	doc, err := xsd.Parse([]byte(`
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
  <xs:element name="Order">
    <xs:complexType>
      <xs:sequence>
        <xs:element name="customer" type="xs:string" minOccurs="0"/>
        <xs:element name="item" type="ItemType" maxOccurs="unbounded"/>
      </xs:sequence>
    </xs:complexType>
  </xs:element>
  <xs:complexType name="ItemType">
    <xs:sequence>
      <xs:element name="sku" type="xs:string" nillable="true"/>
    </xs:sequence>
  </xs:complexType>
</xs:schema>`))
	require.NoError(t, err)

	root := doc.Root
	assert.Equal(t, xsd.KindSchema, root.Kind)
	require.Len(t, root.Children, 2)

	order := root.Children[0]
	assert.Equal(t, xsd.KindElement, order.Kind)
	assert.Equal(t, "Order", order.Name)

	seq := order.Children[0].Children[0]
	require.Equal(t, xsd.KindSequence, seq.Kind)
	require.Len(t, seq.Children, 2)

	customer := seq.Children[0]
	assert.Equal(t, "string", customer.TypeName, "namespace prefix is stripped")
	assert.True(t, customer.Optional())
	assert.False(t, customer.Repeated())

	item := seq.Children[1]
	assert.Equal(t, "ItemType", item.TypeName)
	assert.True(t, item.Repeated())
	assert.False(t, item.Optional())
}

func TestParseIndexesComplexTypes(t *testing.T) {
	doc, err := xsd.Parse([]byte(`
<schema xmlns="http://www.w3.org/2001/XMLSchema">
  <complexType name="ItemType">
    <sequence>
      <element name="sku" type="string"/>
    </sequence>
  </complexType>
</schema>`))
	require.NoError(t, err)

	ct := doc.ComplexType("ItemType")
	require.NotNil(t, ct)
	assert.Equal(t, xsd.KindComplexType, ct.Kind)
	assert.Nil(t, doc.ComplexType("Missing"))
	assert.Nil(t, doc.ComplexType(""))
}

func TestParseCollectsUserTypes(t *testing.T) {
	doc, err := xsd.Parse([]byte(`
<schema xmlns="http://www.w3.org/2001/XMLSchema">
  <element name="amount" type="Money"/>
  <simpleType name="Money">
    <restriction base="decimal"/>
  </simpleType>
  <element name="wrapper">
    <complexType>
      <sequence>
        <element name="code" type="SkuCode"/>
        <simpleType name="SkuCode">
          <restriction base="string"/>
        </simpleType>
      </sequence>
    </complexType>
  </element>
</schema>`))
	require.NoError(t, err)

	types := doc.UserTypes()
	assert.Equal(t, "decimal", types["Money"])
	assert.Equal(t, "Money", types["amount"], "globally typed elements resolve through their type")
	assert.Equal(t, "string", types["SkuCode"], "nested simple types are picked up too")
}

func TestParseNillableAndAll(t *testing.T) {
	doc, err := xsd.Parse([]byte(`
<schema xmlns="http://www.w3.org/2001/XMLSchema">
  <element name="Rec">
    <complexType>
      <all>
        <element name="note" type="string" nillable="true"/>
      </all>
    </complexType>
  </element>
</schema>`))
	require.NoError(t, err)

	group := doc.Root.Children[0].Children[0].Children[0]
	assert.Equal(t, xsd.KindSequence, group.Kind, "all groups behave like sequences")
	assert.True(t, group.Children[0].Nillable)
}

func TestParseRejectsNonSchemaRoot(t *testing.T) {
	_, err := xsd.Parse([]byte(`<html></html>`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
}

func TestParseRejectsEmptyDocument(t *testing.T) {
	_, err := xsd.Parse([]byte(``))
	require.Error(t, err)
}
