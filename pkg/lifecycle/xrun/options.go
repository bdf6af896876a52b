package xrun

import (
	"log/slog"
	"os"
)

// Option 配置 Group 的选项函数。
type Option func(*groupOptions)

type groupOptions struct {
	logger          *slog.Logger
	name            string
	signals         []os.Signal
	noSignalHandler bool
	exitHooks       []func()
}

func defaultOptions() *groupOptions {
	return &groupOptions{
		logger: slog.Default(),
		name:   "xrun",
	}
}

// WithLogger 设置日志记录器，用于记录服务启动、关闭等生命周期事件。
// 默认使用 slog.Default()。
func WithLogger(logger *slog.Logger) Option {
	return func(o *groupOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithName 设置 Group 名称，用于日志中标识不同的 Group。
func WithName(name string) Option {
	return func(o *groupOptions) {
		if name != "" {
			o.name = name
		}
	}
}

// WithSignals 设置 Run/RunWithOptions 监听的信号列表。
// 默认监听 DefaultSignals()（SIGHUP、SIGINT、SIGTERM、SIGQUIT）。
func WithSignals(signals []os.Signal) Option {
	// 创建时拷贝，避免调用方后续修改切片导致配置漂移
	copied := append([]os.Signal(nil), signals...)
	return func(o *groupOptions) {
		o.signals = copied
	}
}

// WithoutSignalHandler 禁用自动信号处理。
// 使用此选项后 Run/RunWithOptions 不注册信号监听，调用方自行管理。
func WithoutSignalHandler() Option {
	return func(o *groupOptions) {
		o.noSignalHandler = true
	}
}

// WithExitHook 注册进程收尾钩子，等价于在 NewGroup 后调用 OnExit。
// 钩子在所有服务停止后、Wait 返回前执行。
func WithExitHook(hook func()) Option {
	return func(o *groupOptions) {
		if hook != nil {
			o.exitHooks = append(o.exitHooks, hook)
		}
	}
}
