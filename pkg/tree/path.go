package tree

import (
	"strconv"
	"strings"
)

// 物化路径 (materialized path) 工具集。
//
// 两种路径风格并存:
//   - 分类风格: 祖先 ID 以 "/" 连接且带结尾分隔符，如 "1/27/105/"，根深度为 1
//   - 评论风格: 不带结尾分隔符，如 "100/101/102"，根路径就是自身 ID，根深度为 0
//
// path 只在创建时写入（两段式: 占位路径 → 用生成的 ID 回填），之后不存在
// move 操作，因此前缀查询始终与 parent_id 一致。

// SplitIDs 把路径拆成有序的祖先 ID 列表
// 例: "1/27/105/" → [1, 27, 105]；"100/101" → [100, 101]
func SplitIDs(path string) []int64 {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}

	parts := strings.Split(trimmed, "/")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// SegmentCount 路径段数
func SegmentCount(path string) int {
	return len(SplitIDs(path))
}

// ==================== 分类风格 (带结尾 "/") ====================

// CategoryPath 生成分类的最终路径
// parentPath 为空表示根分类
// 例: ("", 1) → "1/"；("1/", 2) → "1/2/"
func CategoryPath(parentPath string, id int64) string {
	return parentPath + strconv.FormatInt(id, 10) + "/"
}

// CategoryTempPath 分类插入时的占位路径，拿到生成 ID 后回填
func CategoryTempPath(parentPath string) string {
	if parentPath == "" {
		return "0"
	}
	return parentPath + "0/"
}

// CategoryDepth 分类深度 = 路径段数，根为 1
func CategoryDepth(path string) int {
	return SegmentCount(path)
}

// ==================== 评论风格 (无结尾 "/") ====================

// CommentPath 生成评论的最终路径
// 例: ("", 100) → "100"；("100", 101) → "100/101"
func CommentPath(parentPath string, id int64) string {
	if parentPath == "" {
		return strconv.FormatInt(id, 10)
	}
	return parentPath + "/" + strconv.FormatInt(id, 10)
}

// CommentTempPath 评论插入时的占位路径
func CommentTempPath(parentPath string) string {
	if parentPath == "" {
		return "0"
	}
	return parentPath + "/0"
}

// CommentDepth 评论深度 = 路径段数 - 1，根为 0
func CommentDepth(path string) int {
	n := SegmentCount(path)
	if n == 0 {
		return 0
	}
	return n - 1
}

// ParentPath 去掉最后一段，返回父路径
// 分类: "1/27/105/" → "1/27/"；评论: "100/101/102" → "100/101"
// 根节点返回 ""
func ParentPath(path string) string {
	trailing := strings.HasSuffix(path, "/")
	ids := SplitIDs(path)
	if len(ids) <= 1 {
		return ""
	}

	parts := make([]string, 0, len(ids)-1)
	for _, id := range ids[:len(ids)-1] {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	joined := strings.Join(parts, "/")
	if trailing {
		return joined + "/"
	}
	return joined
}
