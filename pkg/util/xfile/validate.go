package xfile

import "strings"

// containsNullByte 检测路径是否包含空字节。
// 内核会在空字节处截断路径，必须在任何文件操作前拒绝。
func containsNullByte(path string) bool {
	return strings.ContainsRune(path, '\x00')
}
