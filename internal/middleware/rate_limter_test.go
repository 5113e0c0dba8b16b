package middleware

import (
	"testing"
	"time"
)

func TestActionRateLimiter_Check(t *testing.T) {
	limiter := &ActionRateLimiter{}
	key := IPActionKey("1.2.3.4", ActionTypeComment)

	// 首次放行
	result := limiter.Check(key, time.Second)
	if !result.Allowed {
		t.Fatalf("首次检查应放行")
	}

	// 冷却期内拒绝，并给出剩余时间
	result = limiter.Check(key, time.Second)
	if result.Allowed {
		t.Fatalf("冷却期内应拒绝")
	}
	if result.RetryAfter <= 0 || result.RetryAfter > time.Second {
		t.Errorf("RetryAfter = %v, 应在 (0, 1s] 区间", result.RetryAfter)
	}

	// 不同 key 互不影响
	other := UserActionKey(42, ActionTypeComment)
	if result := limiter.Check(other, time.Second); !result.Allowed {
		t.Errorf("不同 key 应独立限流")
	}
}

func TestActionRateLimiter_CheckOnly(t *testing.T) {
	limiter := &ActionRateLimiter{}
	key := UserActionKey(1, ActionTypeUpload)

	// 未执行过的 key 放行
	if result := limiter.CheckOnly(key, time.Second); !result.Allowed {
		t.Fatalf("无记录时 CheckOnly 应放行")
	}

	limiter.Check(key, time.Second)

	// CheckOnly 不更新时间
	if result := limiter.CheckOnly(key, time.Second); result.Allowed {
		t.Fatalf("冷却期内 CheckOnly 应拒绝")
	}
	if result := limiter.CheckOnly(key, 0); !result.Allowed {
		t.Errorf("零间隔时应放行")
	}
}

func TestActionRateLimiter_Reset(t *testing.T) {
	limiter := &ActionRateLimiter{}
	key := IPActionKey("5.6.7.8", ActionTypeLogin)

	limiter.Check(key, time.Minute)
	if result := limiter.Check(key, time.Minute); result.Allowed {
		t.Fatalf("冷却期内应拒绝")
	}

	limiter.Reset(key)
	if result := limiter.Check(key, time.Minute); !result.Allowed {
		t.Errorf("重置后应放行")
	}
}

func TestGetInterval(t *testing.T) {
	if got := GetInterval(ActionTypePost); got != 30*time.Second {
		t.Errorf("发帖间隔 = %v, want 30s", got)
	}
	// 未配置的动作回落到默认值
	if got := GetInterval(ActionType("unknown")); got != 5*time.Second {
		t.Errorf("未知动作间隔 = %v, want 5s", got)
	}
}

func TestGetLimiter(t *testing.T) {
	if GetLimiter() != globalLimiter {
		t.Errorf("GetLimiter 应返回全局实例")
	}
}
