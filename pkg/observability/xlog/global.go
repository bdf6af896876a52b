package xlog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
)

// =============================================================================
// 全局 Logger
//
// 定位：脚手架/小工具等简单场景。
// 在服务端推荐依赖注入（显式持有 Logger）。
// =============================================================================

// globalLogger 全局 Logger 实例（并发安全）
var globalLogger atomic.Pointer[LoggerWithLevel]

// globalMu 保护 globalOnce 及其 Do 执行（也用于 ResetDefault）
var globalMu sync.Mutex

// globalOnce 确保默认 Logger 只初始化一次
var globalOnce sync.Once

// defaultLogger 创建默认 Logger（惰性初始化）。
//
// 设计决策: 在持锁状态下执行 once.Do，确保 ResetDefault（重置 globalOnce）
// 与 once.Do 之间不会发生并发竞争。初始化后 Default() 走 atomic.Load
// 快速路径，不进入此函数。
func defaultLogger() LoggerWithLevel {
	globalMu.Lock()
	defer globalMu.Unlock()

	globalOnce.Do(func() {
		// 默认配置：输出到 stderr，Info 级别，text 格式
		logger, _, err := New().Build()
		if err != nil {
			// 设计决策: 默认参数不应失败；如果失败则降级为最小可用 logger，
			// 避免库代码 panic 终止宿主进程（项目约定：构造不 panic）。
			fmt.Fprintf(os.Stderr, "xlog: failed to build default logger: %v, using fallback\n", err)
			var fallback LoggerWithLevel = &xlogger{
				handler:  slog.NewTextHandler(os.Stderr, nil),
				levelVar: new(slog.LevelVar),
			}
			globalLogger.Store(&fallback)
			return
		}
		globalLogger.Store(&logger)
	})
	return *globalLogger.Load()
}

// Default 返回全局默认 Logger。
// 懒初始化，并发安全。
func Default() LoggerWithLevel {
	if l := globalLogger.Load(); l != nil {
		return *l
	}
	return defaultLogger()
}

// SetDefault 替换全局 Logger。nil 会被静默忽略。
func SetDefault(logger LoggerWithLevel) {
	if logger == nil {
		return
	}
	globalLogger.Store(&logger)
}

// ResetDefault 重置为未初始化状态。仅用于测试。
func ResetDefault() {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger.Store(nil)
	globalOnce = sync.Once{}
}

// Debug 使用全局 Logger 记录 Debug 级别日志。
func Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().Debug(ctx, msg, attrs...)
}

// Info 使用全局 Logger 记录 Info 级别日志。
func Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().Info(ctx, msg, attrs...)
}

// Warn 使用全局 Logger 记录 Warn 级别日志。
func Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().Warn(ctx, msg, attrs...)
}

// Error 使用全局 Logger 记录 Error 级别日志。
func Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().Error(ctx, msg, attrs...)
}
