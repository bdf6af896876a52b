// Package xsys 提供低层系统查询和诊断输出工具。
//
// # 功能概览
//
//   - [PageSize]: 查询内存分配粒度（页大小），首次查询后记忆化
//   - [WriteStderr]: 无内存分配的 stderr 诊断输出（分块写入）
//   - [Sbrk]: 不受支持的堆增长原语占位实现，调用即终止进程
//
// # 平台支持
//
// PageSize 在 Unix 平台通过 getpagesize 系统调用实现；在 Windows 上取
// GetNativeSystemInfo 返回的页大小与分配粒度中的较大值；其他平台回退到
// os.Getpagesize。所有平台上返回值均为正的 2 的幂。
//
// # 分配安全
//
// WriteStderr 专为"不允许动态分配"的上下文设计（如分配器自身的失败处理
// 路径、线程销毁回调）。它绕过带缓冲的输出层，直接对文件描述符 2 执行
// 原始写入，且每次写入不超过 80 字节——部分系统在大块写入时会在输出路径
// 上触发内存分配。
package xsys
