package relational_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemaforge/xsd2erd/internal/relational"
)

func fkTable(name string, fks ...relational.Column) *relational.Table {
	cols := []relational.Column{{Name: relational.JoinSuffix(name, "Id"), Type: "bigint", PrimaryKey: true}}
	cols = append(cols, fks...)
	return &relational.Table{Name: name, Columns: cols, Generated: true}
}

func fk(referenced string, nullable bool) relational.Column {
	return relational.Column{
		Name:       relational.JoinSuffix(referenced, "Id"),
		Type:       "bigint",
		Nullable:   nullable,
		ForeignKey: true,
		References: referenced,
	}
}

func TestSimpleCyclesFindsEachCycleOnce(t *testing.T) {
	g := relational.BuildGraph([]*relational.Table{
		fkTable("A", fk("B", false)),
		fkTable("B", fk("A", false)),
		fkTable("C"),
	})

	cycles := g.SimpleCycles()
	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"A", "B"}, cycles[0])
}

func TestSimpleCyclesSelfLoop(t *testing.T) {
	self := fkTable("Employee")
	self.Columns = append(self.Columns, relational.Column{
		Name: "managerId", Type: "bigint", ForeignKey: true, References: "Employee",
	})
	g := relational.BuildGraph([]*relational.Table{self})

	cycles := g.SimpleCycles()
	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"Employee"}, cycles[0])
}

func TestBreakCyclesRemovesSelfReferencingEdge(t *testing.T) {
	emp := fkTable("Employee")
	emp.Columns = append(emp.Columns, relational.Column{
		Name: "managerId", Type: "bigint", ForeignKey: true, References: "Employee",
	})
	g := relational.BuildGraph([]*relational.Table{emp})

	removed, err := g.BreakCycles(10)
	require.NoError(t, err)
	require.Len(t, removed, 1)
	assert.Equal(t, "Employee", removed[0].From)
	assert.Equal(t, "Employee", removed[0].To)
	assert.Equal(t, "managerId", removed[0].Column)
	assert.Empty(t, g.SimpleCycles())
}

func TestBreakCyclesPrefersNullableEdge(t *testing.T) {
	g := relational.BuildGraph([]*relational.Table{
		fkTable("A", fk("B", false)),
		fkTable("B", fk("A", true)),
	})

	removed, err := g.BreakCycles(10)
	require.NoError(t, err)
	require.Len(t, removed, 1)
	assert.Equal(t, "B", removed[0].From)
	assert.Equal(t, "AId", removed[0].Column)
	assert.Empty(t, g.SimpleCycles())
}

func TestBreakCyclesFallsBackToFirstEdge(t *testing.T) {
	g := relational.BuildGraph([]*relational.Table{
		fkTable("A", fk("B", false)),
		fkTable("B", fk("A", false)),
	})

	removed, err := g.BreakCycles(10)
	require.NoError(t, err)
	require.Len(t, removed, 1)
	assert.Equal(t, "A", removed[0].From)
}

func TestBreakCyclesBudgetExhausted(t *testing.T) {
	g := relational.BuildGraph([]*relational.Table{
		fkTable("A", fk("B", false)),
		fkTable("B", fk("A", false)),
	})

	_, err := g.BreakCycles(0)
	require.Error(t, err)

	var cycleErr *relational.CycleError
	require.True(t, errors.As(err, &cycleErr))
	require.Len(t, cycleErr.Cycles, 1)
	assert.Equal(t, []string{"A", "B"}, cycleErr.Cycles[0])
}

func TestTopoSortPlacesReferencedTablesFirst(t *testing.T) {
	g := relational.BuildGraph([]*relational.Table{
		fkTable("Order", fk("Customer", false)),
		fkTable("Customer"),
		fkTable("LineItem", fk("Order", false)),
	})

	order, err := g.TopoSort()
	require.NoError(t, err)
	assert.Equal(t, []string{"Customer", "Order", "LineItem"}, order)
}

func TestTopoSortTieBreaksByDiscoveryOrder(t *testing.T) {
	g := relational.BuildGraph([]*relational.Table{
		fkTable("B"),
		fkTable("A"),
		fkTable("C", fk("B", false), fk("A", false)),
	})

	order, err := g.TopoSort()
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A", "C"}, order)
}

func TestTopoSortRejectsRemainingCycle(t *testing.T) {
	g := relational.BuildGraph([]*relational.Table{
		fkTable("A", fk("B", false)),
		fkTable("B", fk("A", false)),
	})

	_, err := g.TopoSort()
	var cycleErr *relational.CycleError
	require.True(t, errors.As(err, &cycleErr))
}
