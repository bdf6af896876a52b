// Package xrun 提供基于 errgroup + context 的进程生命周期管理。
//
// # 概述
//
// xrun 基于 Go 官方扩展库 [errgroup] 构建，提供：
//   - 多服务并发运行和协调关闭
//   - 信号处理（SIGINT、SIGTERM 等）
//   - 进程收尾钩子（exit hook）
//   - Ticker 等常见服务模式的封装
//
// # 核心概念
//
// 基于 context 的协调：当任一服务返回错误或收到终止信号时，
// context 会被取消，所有服务应该监听 ctx.Done() 并优雅退出。
//
// # 快速开始
//
//	err := xrun.Run(context.Background(),
//	    xrun.Ticker(time.Minute, true, func(ctx context.Context) error {
//	        return sweep(ctx)
//	    }),
//	)
//	if errors.Is(err, xrun.ErrSignal) {
//	    // 收到终止信号，正常退出
//	}
//
// 使用 Group 管理多个服务：
//
//	g, ctx := xrun.NewGroup(ctx, xrun.WithName("watcher"))
//	g.Go(runWatcher)
//	g.OnExit(flushState)
//	if err := g.Wait(); err != nil {
//	    log.Fatal(err)
//	}
//
// # 退出钩子
//
// OnExit/WithExitHook 注册的钩子在所有服务停止后、Wait 返回前执行，
// 按注册顺序的逆序（后注册先执行），每个钩子至多执行一次。
// 典型用途：触发进程级收尾通知（如线程本地槽位的析构派发）、
// 刷写缓冲、关闭句柄。钩子不接收 context——执行时服务已全部退出。
//
// # 错误处理
//
// Wait() 的错误处理规则：
//   - 服务返回非 nil、非 context.Canceled 的错误时，直接返回该错误
//   - context.Canceled 来自 Group 主动取消（Cancel 或信号）时被过滤，
//     但显式 cause（如 SignalError）会被保留并返回
//   - context.Canceled 来自服务内部时不过滤
//
// 信号退出示例：
//
//	var sigErr *xrun.SignalError
//	if errors.As(err, &sigErr) {
//	    log.Printf("received signal: %v", sigErr.Signal)
//	}
//
// [errgroup]: https://pkg.go.dev/golang.org/x/sync/errgroup
package xrun
