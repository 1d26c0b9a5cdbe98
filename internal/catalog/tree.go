package catalog

import (
	"fmt"
	"strings"

	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
)

// PathSeparator joins names in a category's materialized full path
const PathSeparator = " > "

type nodeKey struct {
	shop string
	id   string
}

// BuildTree nests flat category rows into trees. Rows must already be ordered
// (level, sort_order, name); that order is kept among siblings. A node whose
// parent is not in the input is returned as a root.
func BuildTree(nodes []*domain.CategoryNode) []*domain.CategoryNode {
	byKey := make(map[nodeKey]*domain.CategoryNode, len(nodes))
	for _, n := range nodes {
		byKey[nodeKey{n.ShopCode, n.ID}] = n
	}

	roots := make([]*domain.CategoryNode, 0)
	for _, n := range nodes {
		if n.ParentID == nil {
			roots = append(roots, n)
			continue
		}
		parent, ok := byKey[nodeKey{n.ShopCode, *n.ParentID}]
		if !ok || parent == n {
			roots = append(roots, n)
			continue
		}
		parent.Children = append(parent.Children, n)
		parent.HasSubcategories = true
	}
	return roots
}

// CheckLineage verifies the stored level and full path of child against its parent
func CheckLineage(parent, child *domain.CatalogCategory) error {
	if child.ParentID == nil || *child.ParentID != parent.ID {
		return fmt.Errorf("category %s: parent is not %s", child.ID, parent.ID)
	}
	if child.ShopCode != parent.ShopCode {
		return fmt.Errorf("category %s: parent %s belongs to shop %s, not %s", child.ID, parent.ID, parent.ShopCode, child.ShopCode)
	}
	if child.Level != parent.Level+1 {
		return fmt.Errorf("category %s: level %d, want %d", child.ID, child.Level, parent.Level+1)
	}
	if want := parent.FullPath + PathSeparator + child.Name; child.FullPath != want {
		return fmt.Errorf("category %s: full path %q, want %q", child.ID, child.FullPath, want)
	}
	return nil
}

// Walk visits every node breadth-first: all roots, then all their children, and so on.
func Walk(roots []*domain.CategoryNode, visit func(parent, node *domain.CategoryNode)) {
	type entry struct{ parent, node *domain.CategoryNode }
	queue := make([]entry, 0, len(roots))
	for _, r := range roots {
		queue = append(queue, entry{nil, r})
	}
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		visit(e.parent, e.node)
		for _, c := range e.node.Children {
			queue = append(queue, entry{e.node, c})
		}
	}
}

// PathPrefixes splits a materialized full path into its ancestor chain:
// "A > B > C" yields "A", "A > B", "A > B > C". Empty segments are skipped.
func PathPrefixes(fullPath string) []string {
	parts := strings.Split(fullPath, ">")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			segments = append(segments, p)
		}
	}

	prefixes := make([]string, len(segments))
	for i := range segments {
		prefixes[i] = strings.Join(segments[:i+1], PathSeparator)
	}
	return prefixes
}
