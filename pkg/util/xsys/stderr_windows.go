//go:build windows

package xsys

import "golang.org/x/sys/windows"

// writeRawStderr 通过标准错误句柄执行一次原始写入。
// 使用 GetStdHandle 而非 os.Stderr，避免经过 os.File 的加锁与缓冲路径。
func writeRawStderr(p []byte) {
	h, err := windows.GetStdHandle(windows.STD_ERROR_HANDLE)
	if err != nil {
		return
	}
	var done uint32
	_ = windows.WriteFile(h, p, &done, nil)
}
