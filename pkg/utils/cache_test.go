package utils

import (
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	SetCache("k1", "v1", time.Minute)

	val, ok := GetCache("k1")
	if !ok || val != "v1" {
		t.Fatalf("GetCache = (%q, %v), want (\"v1\", true)", val, ok)
	}

	if _, ok := GetCache("missing"); ok {
		t.Errorf("不存在的 key 不应命中")
	}
}

func TestCacheExpiry(t *testing.T) {
	SetCache("k2", "v2", 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	if _, ok := GetCache("k2"); ok {
		t.Errorf("过期的 key 不应命中")
	}
}

func TestCacheDelete(t *testing.T) {
	SetCache("k3", "v3", time.Minute)
	DeleteCache("k3")

	if _, ok := GetCache("k3"); ok {
		t.Errorf("删除后的 key 不应命中")
	}
}
