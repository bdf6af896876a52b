package xlog

import "gopkg.in/natefinch/lumberjack.v2"

// 轮转默认参数。
const (
	defaultRotateMaxSizeMB  = 100 // 单文件上限（MB）
	defaultRotateMaxBackups = 3   // 保留历史文件数
	defaultRotateMaxAgeDays = 28  // 历史文件保留天数
)

// RotateOption 配置日志轮转的选项函数。
type RotateOption func(*lumberjack.Logger)

// WithMaxSizeMB 设置触发轮转的单文件大小上限（MB）。
// 非正值会被静默忽略。
func WithMaxSizeMB(size int) RotateOption {
	return func(l *lumberjack.Logger) {
		if size > 0 {
			l.MaxSize = size
		}
	}
}

// WithMaxBackups 设置保留的历史文件数量。
// 负值会被静默忽略；0 表示不按数量清理。
func WithMaxBackups(n int) RotateOption {
	return func(l *lumberjack.Logger) {
		if n >= 0 {
			l.MaxBackups = n
		}
	}
}

// WithMaxAgeDays 设置历史文件的保留天数。
// 负值会被静默忽略；0 表示不按时间清理。
func WithMaxAgeDays(days int) RotateOption {
	return func(l *lumberjack.Logger) {
		if days >= 0 {
			l.MaxAge = days
		}
	}
}

// WithCompress 设置是否压缩历史文件。
func WithCompress(enable bool) RotateOption {
	return func(l *lumberjack.Logger) {
		l.Compress = enable
	}
}
