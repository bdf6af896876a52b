//go:build unix

package xsys

import "golang.org/x/sys/unix"

// 系统调用函数变量，支持测试中 mock 替换以覆盖异常路径。
// 设计决策: 使用包级变量 mock 模式，对此规模的包足够简洁。
// 注意：mock 测试不可使用 t.Parallel()，因为替换包级变量会引发竞态。
var getpagesize = unix.Getpagesize

// queryPageSize 查询 Unix 平台的页大小。
func queryPageSize() int {
	return getpagesize()
}
