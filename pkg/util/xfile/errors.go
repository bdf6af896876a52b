package xfile

import "errors"

var (
	// ErrEmptyPath 表示必需的路径参数为空。
	ErrEmptyPath = errors.New("xfile: path is required")

	// ErrEmptyPattern 表示 glob 模式为空。
	ErrEmptyPattern = errors.New("xfile: glob pattern is required")

	// ErrBadPattern 表示 glob 模式语法非法。
	ErrBadPattern = errors.New("xfile: malformed glob pattern")

	// ErrNullByte 表示路径中包含空字节（\x00）。Linux 内核在 VFS 层
	// 会在空字节处截断路径，导致 Go 代码与操作系统实际操作的路径不一致。
	ErrNullByte = errors.New("xfile: path contains null byte")

	// ErrInvalidPerm 表示目录权限无效（如缺少所有者执行位，目录无法遍历）。
	ErrInvalidPerm = errors.New("xfile: invalid directory permission")
)
