package xtls

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockFatal 替换致命出口，记录消息而不终止进程。
// 不可与 t.Parallel() 同用：替换包级变量会引发竞态。
func mockFatal(t *testing.T) *[]string {
	t.Helper()
	var msgs []string
	orig := fatalf
	fatalf = func(format string, args ...any) {
		msgs = append(msgs, fmt.Sprintf(format, args...))
	}
	t.Cleanup(func() { fatalf = orig })
	return &msgs
}

func TestCreateKey_InertSlots(t *testing.T) {
	e := New()

	// nil 析构函数不受单一绑定限制，可以反复分配惰性槽位
	k1 := e.CreateKey(nil)
	k2 := e.CreateKey(nil)
	k3 := e.CreateKey(nil)
	assert.NotEqual(t, k1, k2)
	assert.NotEqual(t, k2, k3)
}

func TestCreateKey_SecondDestructorFatal(t *testing.T) {
	msgs := mockFatal(t)
	e := New()

	e.CreateKey(func(any) {})
	require.Empty(t, *msgs, "first registration must not be fatal")

	e.CreateKey(func(any) {})
	require.Len(t, *msgs, 1)
	assert.Contains(t, (*msgs)[0], "already registered")
}

func TestCreateKey_NilAfterDestructorOK(t *testing.T) {
	msgs := mockFatal(t)
	e := New()

	e.CreateKey(func(any) {})
	// 已有绑定后，nil 析构函数的调用仍然成功（只分配惰性槽位）
	e.CreateKey(nil)
	assert.Empty(t, *msgs)
}

func TestCreateKey_SlotExhaustionFatal(t *testing.T) {
	msgs := mockFatal(t)
	e := New(WithMaxSlots(1))

	e.CreateKey(nil)
	require.Empty(t, *msgs)

	e.CreateKey(nil)
	require.Len(t, *msgs, 1)
	assert.Contains(t, (*msgs)[0], "slots exhausted")
}

func TestOnThreadExit_InvokesDestructorOnce(t *testing.T) {
	var calls []any
	e := New()
	key := e.CreateKey(func(v any) { calls = append(calls, v) })

	const tid = ThreadID(42)
	value := &struct{ n int }{n: 7}
	e.Set(tid, key, value)

	e.OnThreadExit(tid)

	require.Len(t, calls, 1)
	assert.Same(t, value, calls[0], "destructor must receive the exact stored value")
	assert.Nil(t, e.Get(tid, key), "slot must be empty after notification")
}

func TestOnThreadExit_NeverSetValue(t *testing.T) {
	calls := 0
	e := New()
	e.CreateKey(func(any) { calls++ })

	e.OnThreadExit(ThreadID(5))
	assert.Zero(t, calls, "destructor must not fire for a never-set slot")
}

func TestOnThreadExit_NoBinding(t *testing.T) {
	e := New()
	// 从未登记析构函数：通知是预期中的空操作
	e.OnThreadExit(ThreadID(1))
	e.OnProcessExit(ThreadID(1))
}

func TestOnThreadExit_UntouchedThread(t *testing.T) {
	calls := 0
	e := New()
	key := e.CreateKey(func(any) { calls++ })
	e.Set(ThreadID(2), key, "present")

	// 平台钩子可能为从未执行过本包代码的线程触发
	e.OnThreadExit(ThreadID(99))
	assert.Zero(t, calls)

	// 不影响其他线程的槽位值
	assert.Equal(t, "present", e.Get(ThreadID(2), key))
}

func TestNotify_AtMostOnceAcrossBothPaths(t *testing.T) {
	calls := 0
	e := New()
	key := e.CreateKey(func(any) { calls++ })

	const tid = ThreadID(3)
	e.Set(tid, key, "value")

	e.OnThreadExit(tid)
	e.OnProcessExit(tid)

	assert.Equal(t, 1, calls, "second notification must observe the cleared sentinel")
}

func TestNotify_ClearsBeforeInvoke(t *testing.T) {
	e := New()
	var observed any = "unset"
	var key Key
	key = e.CreateKey(func(v any) {
		// 析构执行期间槽位必须已经是空值
		observed = e.Get(ThreadID(8), key)
	})

	e.Set(ThreadID(8), key, "payload")
	e.OnThreadExit(ThreadID(8))

	assert.Nil(t, observed, "slot must be cleared before the destructor runs")
}

func TestSetGet_Passthrough(t *testing.T) {
	e := New()
	key := e.CreateKey(nil)

	assert.Nil(t, e.Get(ThreadID(1), key))

	e.Set(ThreadID(1), key, "a")
	e.Set(ThreadID(2), key, "b")
	assert.Equal(t, "a", e.Get(ThreadID(1), key))
	assert.Equal(t, "b", e.Get(ThreadID(2), key))

	e.Set(ThreadID(1), key, nil)
	assert.Nil(t, e.Get(ThreadID(1), key))
	assert.Equal(t, "b", e.Get(ThreadID(2), key))
}

func TestNew_WithStore(t *testing.T) {
	store := NewMapStore(8)
	e := New(WithStore(store))
	key := e.CreateKey(nil)

	// 注入的存储被实际使用
	store.Set(ThreadID(1), key, "direct")
	assert.Equal(t, "direct", e.Get(ThreadID(1), key))
}

func TestNew_NilOptionIgnored(t *testing.T) {
	e := New(nil, WithMaxSlots(4))
	assert.NotNil(t, e)
}
