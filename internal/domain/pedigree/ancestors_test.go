package pedigree

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// Familia de prueba:
//
//	gs1 + gd1 -> sire
//	gs2 + gd2 -> dam
//	sire + dam -> pup
func threeGenerations() []Animal {
	return []Animal{
		{ID: "pup", Name: "Pup", FatherID: "sire", MotherID: "dam"},
		{ID: "sire", Name: "Sire", FatherID: "gs1", MotherID: "gd1"},
		{ID: "dam", Name: "Dam", FatherID: "gs2", MotherID: "gd2"},
		{ID: "gs1", Name: "GS1"},
		{ID: "gd1", Name: "GD1"},
		{ID: "gs2", Name: "GS2"},
		{ID: "gd2", Name: "GD2"},
	}
}

func TestResolveAncestors_BreadthFirstWithRolesAndLines(t *testing.T) {
	nodes := ResolveAncestors("pup", IndexByID(threeGenerations()))
	require.Len(t, nodes, 7)

	assert.Equal(t, AncestorNode{ID: "pup", Name: "Pup", Role: RoleSelf, Generation: 0}, nodes[0])

	byID := map[string]AncestorNode{}
	for i, n := range nodes {
		byID[n.ID] = n
		if i > 0 {
			assert.GreaterOrEqual(t, n.Generation, nodes[i-1].Generation, "nodes must come out by generation")
		}
	}

	assert.Equal(t, RoleSire, byID["sire"].Role)
	assert.Equal(t, LinePaternal, byID["sire"].Line)
	assert.Equal(t, 1, byID["sire"].Generation)
	assert.Equal(t, RoleDam, byID["dam"].Role)
	assert.Equal(t, LineMaternal, byID["dam"].Line)

	assert.Equal(t, 2, byID["gd1"].Generation)
	assert.Equal(t, LinePaternal, byID["gd1"].Line)
	assert.Equal(t, "paternal granddam", byID["gd1"].Label())
	assert.Equal(t, "maternal grandsire", byID["gs2"].Label())
	assert.Equal(t, "sire", byID["sire"].Label())
}

func TestResolveAncestors_SharedAncestorAppearsOnce(t *testing.T) {
	// Ambos padres comparten el mismo padre (medio hermanos).
	records := []Animal{
		{ID: "pup", FatherID: "sire", MotherID: "dam"},
		{ID: "sire", FatherID: "common"},
		{ID: "dam", FatherID: "common"},
		{ID: "common"},
	}

	nodes := ResolveAncestors("pup", IndexByID(records))

	seen := map[string]int{}
	for _, n := range nodes {
		seen[n.ID]++
	}
	for id, c := range seen {
		assert.Equal(t, 1, c, "duplicate ancestor %s", id)
	}
	require.Len(t, nodes, 4)

	// Se descubre primero por el lado paterno.
	last := nodes[3]
	assert.Equal(t, "common", last.ID)
	assert.Equal(t, 2, last.Generation)
	assert.Equal(t, LinePaternal, last.Line)
}

func TestResolveAncestors_CycleTerminates(t *testing.T) {
	records := []Animal{
		{ID: "A", FatherID: "B"},
		{ID: "B", FatherID: "A"},
	}

	nodes := ResolveAncestors("A", IndexByID(records))
	require.Len(t, nodes, 2)
	assert.Equal(t, "A", nodes[0].ID)
	assert.Equal(t, "B", nodes[1].ID)
}

func TestResolveAncestors_SelfParentTerminates(t *testing.T) {
	nodes := ResolveAncestors("A", IndexByID([]Animal{{ID: "A", FatherID: "A", MotherID: "A"}}))
	require.Len(t, nodes, 1)
}

func TestResolveAncestors_MissingParentsAreUnknownNotErrors(t *testing.T) {
	records := []Animal{
		{ID: "pup", FatherID: "ghost", MotherID: "dam"},
		{ID: "dam"},
	}

	nodes := ResolveAncestors("pup", IndexByID(records))
	require.Len(t, nodes, 2)
	assert.Equal(t, "dam", nodes[1].ID)

	assert.Empty(t, ResolveAncestors("nobody", IndexByID(records)))
	assert.Empty(t, ResolveAncestors("", IndexByID(records)))
	assert.Empty(t, ResolveAncestors("pup", nil))
}

func TestResolveAncestors_CarriesBirthDate(t *testing.T) {
	bd := date(2019, time.March, 4)
	records := []Animal{
		{ID: "pup", FatherID: "sire"},
		{ID: "sire", Name: "Rex", BirthDate: bd},
	}
	nodes := ResolveAncestors("pup", IndexByID(records))
	require.Len(t, nodes, 2)
	assert.Equal(t, bd, nodes[1].BirthDate)
	assert.Equal(t, "Rex", nodes[1].Name)
}

func TestTruncateGenerations(t *testing.T) {
	nodes := ResolveAncestors("pup", IndexByID(threeGenerations()))

	assert.Len(t, TruncateGenerations(nodes, 1), 3)
	assert.Len(t, TruncateGenerations(nodes, 0), 7)
	assert.Len(t, TruncateGenerations(nodes, 5), 7)
}

func TestAncestorNodeLabel_DeepGenerations(t *testing.T) {
	assert.Equal(t, "self", AncestorNode{Role: RoleSelf}.Label())
	assert.Equal(t, "maternal great-granddam", AncestorNode{Role: RoleDam, Line: LineMaternal, Generation: 3}.Label())
	assert.Equal(t, "paternal 3x-great-grandsire", AncestorNode{Role: RoleSire, Line: LinePaternal, Generation: 5}.Label())
}
