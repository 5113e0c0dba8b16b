package tree

import "testing"

type node struct {
	ID       int64
	ParentID *int64
	Children []*node
}

func ptr(v int64) *int64 { return &v }

func buildNodes(items []*node) []*node {
	return Build(items,
		func(n *node) int64 { return n.ID },
		func(n *node) (int64, bool) {
			if n.ParentID == nil {
				return 0, false
			}
			return *n.ParentID, true
		},
		func(p, c *node) { p.Children = append(p.Children, c) },
	)
}

func TestBuild(t *testing.T) {
	// 两棵树，父节点先于子节点出现
	items := []*node{
		{ID: 1},
		{ID: 2, ParentID: ptr(1)},
		{ID: 3, ParentID: ptr(1)},
		{ID: 4, ParentID: ptr(2)},
		{ID: 5},
		{ID: 6, ParentID: ptr(5)},
	}

	roots := buildNodes(items)
	if len(roots) != 2 {
		t.Fatalf("根节点数 = %d, want 2", len(roots))
	}
	if roots[0].ID != 1 || roots[1].ID != 5 {
		t.Errorf("根节点顺序 = [%d, %d], want [1, 5]", roots[0].ID, roots[1].ID)
	}
	if len(roots[0].Children) != 2 {
		t.Fatalf("节点1子节点数 = %d, want 2", len(roots[0].Children))
	}
	if len(roots[0].Children[0].Children) != 1 || roots[0].Children[0].Children[0].ID != 4 {
		t.Errorf("节点2应有子节点4")
	}
	if len(roots[1].Children) != 1 || roots[1].Children[0].ID != 6 {
		t.Errorf("节点5应有子节点6")
	}
}

func TestBuildDropsOrphans(t *testing.T) {
	// 父节点不在输入中的子节点被丢弃
	items := []*node{
		{ID: 1},
		{ID: 9, ParentID: ptr(99)},
	}

	roots := buildNodes(items)
	if len(roots) != 1 || roots[0].ID != 1 {
		t.Fatalf("孤儿节点应被丢弃, roots = %v", roots)
	}
}

func TestBuildEmpty(t *testing.T) {
	roots := buildNodes(nil)
	if len(roots) != 0 {
		t.Fatalf("空输入应返回空森林, got %d", len(roots))
	}
}
