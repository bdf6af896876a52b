package xsys

import "os"

// fatalExitCode 致命错误的进程退出码。
const fatalExitCode = 2

// osExit 进程终止函数变量，测试中可替换以验证致命路径。
var osExit = os.Exit

// Fatal 输出诊断信息后终止进程，永不正常返回。
//
// 输出走 [WriteStderr]，不经过日志层也不分配内存，因此可以在
// 分配器失败等受限上下文中安全调用。
func Fatal(msg string) {
	WriteStderr([]byte(msg))
	WriteStderr([]byte{'\n'})
	osExit(fatalExitCode)
}

// Sbrk 是 sbrk 式连续堆增长原语的占位实现。
//
// 目标平台不提供可移植的 break 指针语义，任何调用都说明上层把
// 不支持的分配路径链接了进来。这是平台能力缺口而非可恢复错误：
// 调用立即终止进程并输出明确诊断，绝不静默当作空操作。
// 本函数永不正常返回；返回类型仅为保持调用方签名兼容。
func Sbrk(increment int) uintptr {
	_ = increment
	Fatal("xsys: sbrk is not supported on this platform")
	return 0
}
