package tree

// Build 把平铺列表组装成森林，单次遍历 O(n)。
//
// 约定: 输入必须保证父节点不晚于子节点出现（按 path ASC 或 depth+order
// 排序均可）。parent 返回 (父ID, true) 表示非根节点；父节点不在输入中的
// 子节点会被丢弃，调用方负责排序与过滤的一致性。
func Build[T any](items []*T, id func(*T) int64, parent func(*T) (int64, bool), attach func(p, c *T)) []*T {
	index := make(map[int64]*T, len(items))
	roots := make([]*T, 0)

	for _, it := range items {
		index[id(it)] = it

		pid, ok := parent(it)
		if !ok {
			roots = append(roots, it)
			continue
		}
		if p, found := index[pid]; found {
			attach(p, it)
		}
		// 父节点缺失: 顺序契约被破坏或父节点被过滤，丢弃
	}

	return roots
}
