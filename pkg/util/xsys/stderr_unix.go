//go:build unix

package xsys

import "golang.org/x/sys/unix"

var rawWrite = unix.Write

// writeRawStderr 直接对文件描述符 2 执行一次写入。
// 短写不重试：诊断输出是尽力而为的，重试循环在信号/崩溃上下文中反而有风险。
func writeRawStderr(p []byte) {
	_, _ = rawWrite(2, p)
}
