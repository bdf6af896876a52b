package xtls

import "sync"

// Bind 为当前 goroutine 分配一个新的线程标识，并返回配套的释放函数。
//
// release 触发该线程的退出通知（含析构调用），并在存储支持
// [ThreadReleaser] 时整体释放其槽位状态。release 幂等：重复调用
// 只有第一次生效。典型用法：
//
//	tid, release := emu.Bind()
//	defer release()
//
// defer 保证 goroutine 无论正常返回还是 panic 都会发出通知。
func (e *Emulator) Bind() (ThreadID, func()) {
	tid := ThreadID(e.threadSeq.Add(1))
	var once sync.Once
	release := func() {
		once.Do(func() {
			e.OnThreadExit(tid)
			if tr, ok := e.store.(ThreadReleaser); ok {
				tr.ReleaseThread(tid)
			}
		})
	}
	return tid, release
}

// Go 在新 goroutine 中运行 fn，自动完成线程标识的绑定与退出通知。
// fn panic 时通知仍会发出，panic 继续向上传播。
// 返回的 channel 在 goroutine 结束（通知已发出）后关闭，供调用方同步。
func (e *Emulator) Go(fn func(tid ThreadID)) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		tid, release := e.Bind()
		defer release()
		fn(tid)
	}()
	return done
}

// ProcessExitHook 返回幂等的进程退出钩子。
//
// 钩子为 [MainThreadID] 触发一次进程退出通知，供生命周期管理层
// （如 xrun.WithExitHook）在进程收尾时调用。重复调用只有第一次生效。
func (e *Emulator) ProcessExitHook() func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			e.OnProcessExit(MainThreadID)
		})
	}
}
