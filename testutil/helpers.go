// =============================================================================
// 🧪 测试辅助函数
// =============================================================================
// 提供通用的测试辅助函数和断言
//
// 使用方法:
//
//	ctx := testutil.TestContext(t)
//	in := testutil.MustInput(t, types.ModalityText, "hello")
//	testutil.AssertJSONSemanticEqual(t, `{"a":1}`, out.Content.Text())
// =============================================================================
package testutil

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/BaSui01/modality/types"
)

// =============================================================================
// 🎯 上下文辅助
// =============================================================================

// TestContext 返回带超时的测试上下文
func TestContext(t *testing.T) context.Context {
	return TestContextWithTimeout(t, 30*time.Second)
}

// TestContextWithTimeout 返回带自定义超时的测试上下文
func TestContextWithTimeout(t *testing.T, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}

// CancelledContext 返回已取消的上下文
func CancelledContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

// =============================================================================
// 🔧 载荷辅助
// =============================================================================

// MustInput 构造文本内容的输入，失败时终止测试
func MustInput(t testing.TB, m types.Modality, text string, opts ...types.InputOption) types.Input {
	t.Helper()
	return MustInputContent(t, m, types.TextContent(text), opts...)
}

// MustInputContent 构造任意内容的输入，失败时终止测试
func MustInputContent(t testing.TB, m types.Modality, c types.Content, opts ...types.InputOption) types.Input {
	t.Helper()
	in, err := types.NewInput(m, c, opts...)
	if err != nil {
		t.Fatalf("NewInput(%q): %v", m, err)
	}
	return in
}

// =============================================================================
// 🔍 断言辅助
// =============================================================================

// AssertJSONSemanticEqual 断言两个 JSON 文本解析后的值相等（忽略格式与键顺序）
func AssertJSONSemanticEqual(t testing.TB, expected, actual string) {
	t.Helper()

	var want, got any
	if err := json.Unmarshal([]byte(expected), &want); err != nil {
		t.Fatalf("expected is not JSON: %v", err)
	}
	if err := json.Unmarshal([]byte(actual), &got); err != nil {
		t.Fatalf("actual is not JSON: %v\n%s", err, actual)
	}

	if !reflect.DeepEqual(want, got) {
		t.Errorf("JSON mismatch:\nexpected: %s\nactual: %s", expected, actual)
	}
}

// =============================================================================
// ⏱️ 时间辅助
// =============================================================================

// WaitFor 等待条件满足或超时
func WaitFor(condition func() bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return condition()
}
