package xsys

import "sync"

// 记忆化状态。页大小在进程生命周期内不变，只查询一次。
var (
	pageSizeOnce sync.Once
	pageSizeVal  int
)

// PageSize 返回平台的内存分配粒度（字节）。
//
// 首次调用执行平台查询，之后返回记忆化的值；同一进程内每次调用
// 返回相同结果。返回值为正的 2 的幂，且不小于平台报告的分配粒度。
// 并发安全。
func PageSize() int {
	pageSizeOnce.Do(func() {
		pageSizeVal = queryPageSize()
	})
	return pageSizeVal
}
