package xfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDirPerm 默认目录权限：所有者读写执行，组读执行，其他无权限。
// 符合 gosec G301 安全建议。
const DefaultDirPerm = 0750

// EnsureDir 确保文件的父目录存在，使用默认权限 0750 创建。
// 目录已存在时不报错。
//
// 底层使用 os.MkdirAll，会跟随符号链接；filename 应来自可信输入。
func EnsureDir(filename string) error {
	return EnsureDirWithPerm(filename, DefaultDirPerm)
}

// EnsureDirWithPerm 确保文件的父目录存在，使用指定权限。
//
// 参数：
//   - filename: 文件路径（不是目录路径），不能为空，不能包含空字节
//   - perm: 目录权限，必须包含所有者执行位（0100），否则目录无法遍历
//
// 目录已存在时不会修改其权限。
func EnsureDirWithPerm(filename string, perm os.FileMode) error {
	if filename == "" {
		return fmt.Errorf("filename is required: %w", ErrEmptyPath)
	}
	if containsNullByte(filename) {
		return fmt.Errorf("filename contains null byte: %w", ErrNullByte)
	}
	// 目录必须包含所有者执行位（0100），否则无法进入和遍历
	if perm&0100 == 0 {
		return fmt.Errorf("directory permission %04o missing owner execute bit: %w", perm, ErrInvalidPerm)
	}
	dir := filepath.Dir(filename)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, perm)
}
