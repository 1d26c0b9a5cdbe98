package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
)

func node(id, shop string, parent *string, level int, name, path string) *domain.CategoryNode {
	return &domain.CategoryNode{
		CatalogCategory: domain.CatalogCategory{
			ID:       id,
			ShopCode: shop,
			Name:     name,
			ParentID: parent,
			Level:    level,
			FullPath: path,
			IsActive: true,
		},
	}
}

func strPtr(s string) *string { return &s }

func TestBuildTree(t *testing.T) {
	nodes := []*domain.CategoryNode{
		node("1", "s1", nil, 0, "Liquids", "Liquids"),
		node("2", "s1", nil, 0, "Devices", "Devices"),
		node("3", "s1", strPtr("1"), 1, "Salt", "Liquids > Salt"),
		node("4", "s1", strPtr("3"), 2, "Strong", "Liquids > Salt > Strong"),
		node("5", "s1", strPtr("missing"), 3, "Orphan", "X > Orphan"),
		node("1", "s2", nil, 0, "Other shop root", "Other shop root"),
	}

	roots := BuildTree(nodes)
	require.Len(t, roots, 4)
	assert.Equal(t, "Liquids", roots[0].Name)
	assert.True(t, roots[0].HasSubcategories)
	require.Len(t, roots[0].Children, 1)
	assert.Equal(t, "Salt", roots[0].Children[0].Name)
	assert.Equal(t, "Strong", roots[0].Children[0].Children[0].Name)
	assert.False(t, roots[1].HasSubcategories)
	assert.Equal(t, "Orphan", roots[2].Name)
	assert.Equal(t, "s2", roots[3].ShopCode)
	assert.Empty(t, roots[3].Children)
}

func TestCheckLineage(t *testing.T) {
	parent := &domain.CatalogCategory{ID: "1", ShopCode: "s1", Name: "Liquids", Level: 0, FullPath: "Liquids"}

	good := &domain.CatalogCategory{ID: "3", ShopCode: "s1", Name: "Salt", ParentID: strPtr("1"), Level: 1, FullPath: "Liquids > Salt"}
	assert.NoError(t, CheckLineage(parent, good))

	badLevel := *good
	badLevel.Level = 2
	assert.Error(t, CheckLineage(parent, &badLevel))

	badPath := *good
	badPath.FullPath = "Salt"
	assert.Error(t, CheckLineage(parent, &badPath))

	badShop := *good
	badShop.ShopCode = "s2"
	assert.Error(t, CheckLineage(parent, &badShop))

	root := *good
	root.ParentID = nil
	assert.Error(t, CheckLineage(parent, &root))
}

func TestWalkBreadthFirst(t *testing.T) {
	roots := BuildTree([]*domain.CategoryNode{
		node("1", "s", nil, 0, "A", "A"),
		node("2", "s", nil, 0, "B", "B"),
		node("3", "s", strPtr("1"), 1, "A1", "A > A1"),
		node("4", "s", strPtr("2"), 1, "B1", "B > B1"),
	})

	var visited []string
	var parents []string
	Walk(roots, func(parent, n *domain.CategoryNode) {
		visited = append(visited, n.Name)
		if parent != nil {
			parents = append(parents, parent.Name)
		}
	})
	assert.Equal(t, []string{"A", "B", "A1", "B1"}, visited)
	assert.Equal(t, []string{"A", "B"}, parents)
}

func TestPathPrefixes(t *testing.T) {
	assert.Equal(t, []string{"A", "A > B", "A > B > C"}, PathPrefixes("A > B > C"))
	assert.Equal(t, []string{"Root"}, PathPrefixes("Root"))
	assert.Equal(t, []string{"A", "A > B"}, PathPrefixes(" A >> B "))
	assert.Empty(t, PathPrefixes(""))
}
