//go:build !unix && !windows

package xsys

import "os"

// queryPageSize 在其他平台回退到运行时报告的页大小。
func queryPageSize() int {
	return os.Getpagesize()
}
