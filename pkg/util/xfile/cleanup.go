package xfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	retry "github.com/avast/retry-go/v5"

	"github.com/omeyang/portkit/pkg/observability/xlog"
)

// 删除重试的默认参数。瞬时性失败（句柄尚未释放、杀毒软件短暂锁定）
// 通常在几十毫秒内消退，次数和间隔都保守取值。
const (
	defaultDeleteAttempts = 3
	defaultDeleteDelay    = 50 * time.Millisecond
)

// CleanupOption 配置 DeleteMatchingFiles 的选项函数。
type CleanupOption func(*cleanupOptions)

type cleanupOptions struct {
	logger   xlog.Logger
	attempts uint
	delay    time.Duration
}

func defaultCleanupOptions() *cleanupOptions {
	return &cleanupOptions{
		logger:   xlog.Default(),
		attempts: defaultDeleteAttempts,
		delay:    defaultDeleteDelay,
	}
}

// WithCleanupLogger 设置清理过程的日志记录器。
// 默认使用 xlog.Default()。传入 nil 会被静默忽略。
func WithCleanupLogger(logger xlog.Logger) CleanupOption {
	return func(o *cleanupOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithDeleteAttempts 设置单个文件删除的最大尝试次数（包含首次）。
// 0 会被静默忽略，保持默认值。
func WithDeleteAttempts(n uint) CleanupOption {
	return func(o *cleanupOptions) {
		if n > 0 {
			o.attempts = n
		}
	}
}

// WithDeleteDelay 设置删除重试间隔。
// 非正值会被静默忽略，保持默认值。
func WithDeleteDelay(d time.Duration) CleanupOption {
	return func(o *cleanupOptions) {
		if d > 0 {
			o.delay = d
		}
	}
}

// DeleteMatchingFiles 删除 dir 下匹配 glob 且文件名以 prefix 开头的
// 普通文件，返回成功删除的数量。
//
// 典型用途是清理陈旧的 profile 转储：
//
//	n, err := xfile.DeleteMatchingFiles(ctx, dir, "profile.", "profile.*.tmp")
//
// 语义：
//   - glob 只在 dir 内枚举（不递归）；prefix 对文件名（basename）匹配
//   - 目录、枚举失败或删不掉的条目记录日志后跳过，不中断整体清理
//   - 文件在枚举和删除之间消失视为已完成（竞争删除是正常情况）
//   - 没有任何匹配时静默完成，返回 (0, nil)
//
// 只有参数非法（空/非法模式、空字节）或 ctx 取消才返回错误。
func DeleteMatchingFiles(ctx context.Context, dir, prefix, glob string, opts ...CleanupOption) (int, error) {
	if glob == "" {
		return 0, fmt.Errorf("glob is required: %w", ErrEmptyPattern)
	}
	if containsNullByte(dir) || containsNullByte(prefix) || containsNullByte(glob) {
		return 0, fmt.Errorf("cleanup arguments contain null byte: %w", ErrNullByte)
	}

	options := defaultCleanupOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(options)
	}

	matches, err := filepath.Glob(filepath.Join(dir, glob))
	if err != nil {
		// filepath.Glob 只在模式语法非法时报错，属于调用方编程错误
		return 0, fmt.Errorf("%w: %w", ErrBadPattern, err)
	}

	deleted := 0
	for _, path := range matches {
		if err := ctx.Err(); err != nil {
			return deleted, err
		}

		name := filepath.Base(path)
		if !strings.HasPrefix(name, prefix) {
			continue
		}

		info, err := os.Lstat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue // 枚举后被并发删除，视为已完成
			}
			options.logger.Warn(ctx, "skipping unreadable stale file",
				slog.String("file", name), xlog.Err(err))
			continue
		}
		if info.IsDir() {
			continue
		}

		if err := removeWithRetry(ctx, path, options); err != nil {
			options.logger.Warn(ctx, "failed to remove stale file",
				slog.String("file", name), xlog.Err(err))
			continue
		}
		options.logger.Info(ctx, "removed stale file", slog.String("file", name))
		deleted++
	}
	return deleted, nil
}

// removeWithRetry 在有限次数内重试删除单个文件。
// 文件不存在视为成功；权限类错误不可恢复，立即放弃。
func removeWithRetry(ctx context.Context, path string, o *cleanupOptions) error {
	return retry.New(
		retry.Context(ctx),
		retry.Attempts(o.attempts),
		retry.Delay(o.delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, fs.ErrPermission)
		}),
	).Do(func() error {
		err := os.Remove(path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	})
}
