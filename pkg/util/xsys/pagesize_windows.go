//go:build windows

package xsys

import "golang.org/x/sys/windows"

var getSystemInfo = windows.GetNativeSystemInfo

// queryPageSize 查询 Windows 平台的内存分配粒度。
//
// Windows 上 VirtualAlloc 的保留粒度（dwAllocationGranularity，通常 64KB）
// 大于页大小（dwPageSize，通常 4KB）。取两者较大值，保证以此为单位的
// 内存预留不会浪费粒度内的空洞。
func queryPageSize() int {
	var info windows.SystemInfo
	getSystemInfo(&info)
	size := info.PageSize
	if info.AllocationGranularity > size {
		size = info.AllocationGranularity
	}
	return int(size)
}
