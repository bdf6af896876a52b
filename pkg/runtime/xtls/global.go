package xtls

import "sync/atomic"

// =============================================================================
// 全局 Emulator
//
// 定位：脚手架/小工具等简单场景。
// 需要隔离状态（测试、多实例）时推荐显式持有 *Emulator。
// =============================================================================

// globalEmulator 全局实例（惰性初始化，原子发布）
var globalEmulator atomic.Pointer[Emulator]

// Default 返回全局默认 Emulator。
//
// 懒初始化：首次调用时以默认配置创建。
// 设计决策: 并发首次调用用 CompareAndSwap 决出唯一胜者，落败方
// 创建的实例直接丢弃（无外部资源，丢弃无代价），避免锁。
func Default() *Emulator {
	if e := globalEmulator.Load(); e != nil {
		return e
	}
	fresh := New()
	if globalEmulator.CompareAndSwap(nil, fresh) {
		return fresh
	}
	return globalEmulator.Load()
}

// CreateKey 委托给 [Default] 的同名方法。
func CreateKey(destructor Destructor) Key {
	return Default().CreateKey(destructor)
}

// Get 委托给 [Default] 的同名方法。
func Get(tid ThreadID, key Key) any {
	return Default().Get(tid, key)
}

// Set 委托给 [Default] 的同名方法。
func Set(tid ThreadID, key Key, value any) {
	Default().Set(tid, key, value)
}

// OnThreadExit 委托给 [Default] 的同名方法。
func OnThreadExit(tid ThreadID) {
	Default().OnThreadExit(tid)
}

// OnProcessExit 委托给 [Default] 的同名方法。
func OnProcessExit(tid ThreadID) {
	Default().OnProcessExit(tid)
}

// ProcessExitHook 返回全局默认 Emulator 的进程退出钩子。
func ProcessExitHook() func() {
	return Default().ProcessExitHook()
}
