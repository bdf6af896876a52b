package xsys

// stderrChunk 单次原始写入的最大字节数。
// 部分系统（如 Windows 控制台）在超过约 80 字节的写入时会在输出路径上
// 分配内存，而 WriteStderr 的调用场景恰恰不允许分配，因此保守分块。
const stderrChunk = 80

// WriteStderr 将 p 原样写入进程的错误流。
//
// 专为不允许动态内存分配的上下文设计（分配器失败处理、线程销毁回调）：
// 绕过带缓冲的输出层，按不超过 80 字节的块直接写文件描述符 2。
// 写入失败被忽略——此路径没有可用的错误上报通道。
//
// 正常业务日志请使用 xlog，本函数只服务于诊断输出。
func WriteStderr(p []byte) {
	for len(p) > 0 {
		n := len(p)
		if n > stderrChunk {
			n = stderrChunk
		}
		writeRawStderr(p[:n])
		p = p[n:]
	}
}
