package tree

import (
	"reflect"
	"testing"
)

func TestSplitIDs(t *testing.T) {
	tests := []struct {
		path string
		want []int64
	}{
		{"1/27/105/", []int64{1, 27, 105}},
		{"100/101/102", []int64{100, 101, 102}},
		{"1/", []int64{1}},
		{"100", []int64{100}},
		{"", nil},
	}

	for _, tt := range tests {
		got := SplitIDs(tt.path)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitIDs(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestCategoryPath(t *testing.T) {
	tests := []struct {
		parentPath string
		id         int64
		want       string
		wantDepth  int
	}{
		{"", 1, "1/", 1},
		{"1/", 27, "1/27/", 2},
		{"1/27/", 105, "1/27/105/", 3},
		{"1/27/105/", 200, "1/27/105/200/", 4},
	}

	for _, tt := range tests {
		got := CategoryPath(tt.parentPath, tt.id)
		if got != tt.want {
			t.Errorf("CategoryPath(%q, %d) = %q, want %q", tt.parentPath, tt.id, got, tt.want)
		}
		if depth := CategoryDepth(got); depth != tt.wantDepth {
			t.Errorf("CategoryDepth(%q) = %d, want %d", got, depth, tt.wantDepth)
		}
		if parent := ParentPath(got); parent != tt.parentPath {
			t.Errorf("ParentPath(%q) = %q, want %q", got, parent, tt.parentPath)
		}
	}
}

func TestCategoryTempPath(t *testing.T) {
	if got := CategoryTempPath(""); got != "0" {
		t.Errorf("根分类占位路径 = %q, want %q", got, "0")
	}
	if got := CategoryTempPath("1/27/"); got != "1/27/0/" {
		t.Errorf("子分类占位路径 = %q, want %q", got, "1/27/0/")
	}
}

func TestCommentPath(t *testing.T) {
	tests := []struct {
		parentPath string
		id         int64
		want       string
		wantDepth  int
	}{
		{"", 100, "100", 0},
		{"100", 101, "100/101", 1},
		{"100/101", 102, "100/101/102", 2},
		{"100/101/102", 103, "100/101/102/103", 3},
	}

	for _, tt := range tests {
		got := CommentPath(tt.parentPath, tt.id)
		if got != tt.want {
			t.Errorf("CommentPath(%q, %d) = %q, want %q", tt.parentPath, tt.id, got, tt.want)
		}
		if depth := CommentDepth(got); depth != tt.wantDepth {
			t.Errorf("CommentDepth(%q) = %d, want %d", got, depth, tt.wantDepth)
		}
		if parent := ParentPath(got); parent != tt.parentPath {
			t.Errorf("ParentPath(%q) = %q, want %q", got, parent, tt.parentPath)
		}
	}
}

func TestCommentTempPath(t *testing.T) {
	if got := CommentTempPath(""); got != "0" {
		t.Errorf("根评论占位路径 = %q, want %q", got, "0")
	}
	if got := CommentTempPath("100/101"); got != "100/101/0" {
		t.Errorf("回复占位路径 = %q, want %q", got, "100/101/0")
	}
}
