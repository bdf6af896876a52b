package xlog

import (
	"log/slog"
	"time"
)

// Err 错误属性。err 为 nil 时值为 "<nil>"，避免属性缺失造成格式漂移。
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.String("error", err.Error())
}

// Component 组件名属性。
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Operation 操作名属性。
func Operation(name string) slog.Attr {
	return slog.String("operation", name)
}

// Count 计数属性。
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}

// Duration 耗时属性，输出人类可读格式（如 "5s"、"1m30s"）。
// 如需机器解析的数值格式，使用 slog.Int64("duration_ms", d.Milliseconds())。
func Duration(d time.Duration) slog.Attr {
	return slog.String("duration", d.String())
}
