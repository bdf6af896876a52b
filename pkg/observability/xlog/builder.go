package xlog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Builder 日志配置构建器。
// first-error-wins：遇到第一个配置错误后，后续 Set 操作被跳过。
type Builder struct {
	output    io.Writer
	levelVar  *slog.LevelVar
	format    string
	addSource bool
	rotator   *lumberjack.Logger
	err       error
}

// New 创建配置构建器。
// 默认输出到 stderr，Info 级别，text 格式。
func New() *Builder {
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelInfo)

	return &Builder{
		output:   os.Stderr,
		levelVar: levelVar,
		format:   "text",
	}
}

// SetOutput 设置日志输出目标。
func (b *Builder) SetOutput(w io.Writer) *Builder {
	if b.err != nil {
		return b
	}
	if w != nil {
		b.output = w
	}
	return b
}

// SetLevel 设置日志级别。
func (b *Builder) SetLevel(level Level) *Builder {
	if b.err != nil {
		return b
	}
	b.levelVar.Set(slog.Level(level))
	return b
}

// SetLevelString 通过字符串设置日志级别。
func (b *Builder) SetLevelString(s string) *Builder {
	if b.err != nil {
		return b
	}
	level, err := ParseLevel(s)
	if err != nil {
		b.err = err
		return b
	}
	return b.SetLevel(level)
}

// SetFormat 设置输出格式：text 或 json。
func (b *Builder) SetFormat(format string) *Builder {
	if b.err != nil {
		return b
	}
	normalized := strings.ToLower(strings.TrimSpace(format))
	if normalized == "" {
		// 空值视为使用默认格式，避免误把"没填"变成配置错误
		b.format = "text"
		return b
	}
	if normalized != "text" && normalized != "json" {
		b.err = fmt.Errorf("xlog: unknown format %q", format)
		return b
	}
	b.format = normalized
	return b
}

// SetAddSource 是否在日志中添加源码位置。
func (b *Builder) SetAddSource(enable bool) *Builder {
	if b.err != nil {
		return b
	}
	b.addSource = enable
	return b
}

// SetRotation 设置基于 lumberjack 的日志轮转输出。
// 自动创建日志文件的父目录。覆盖之前的 SetOutput。
func (b *Builder) SetRotation(filename string, opts ...RotateOption) *Builder {
	if b.err != nil {
		return b
	}
	if filename == "" {
		b.err = fmt.Errorf("xlog: rotation filename is required")
		return b
	}
	// 就地创建父目录，不依赖 xfile（xfile 的日志走本包，避免引入环）
	if dir := filepath.Dir(filename); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			b.err = fmt.Errorf("xlog: create log directory: %w", err)
			return b
		}
	}

	rotator := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    defaultRotateMaxSizeMB,
		MaxBackups: defaultRotateMaxBackups,
		MaxAge:     defaultRotateMaxAgeDays,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(rotator)
	}
	b.rotator = rotator
	b.output = rotator
	return b
}

// Build 构建 Logger。
//
// 返回 cleanup 函数：释放轮转文件句柄（未启用轮转时为空操作）。
// Builder 为一次性使用，Build 之后不可复用。
func (b *Builder) Build() (LoggerWithLevel, func() error, error) {
	if b.err != nil {
		return nil, nil, b.err
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     b.levelVar,
		AddSource: b.addSource,
	}

	var handler slog.Handler
	if b.format == "json" {
		handler = slog.NewJSONHandler(b.output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(b.output, handlerOpts)
	}

	logger := &xlogger{
		handler:   handler,
		levelVar:  b.levelVar,
		addSource: b.addSource,
	}

	rotator := b.rotator
	cleanup := func() error {
		if rotator != nil {
			return rotator.Close()
		}
		return nil
	}
	return logger, cleanup, nil
}
