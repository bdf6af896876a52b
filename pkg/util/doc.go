// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xfile: 文件操作工具，目录创建、过期文件清理
//   - xsys: 平台查询与低层输出，内存页大小、原始 stderr 写入
//
// 设计原则：
//   - 提供常用的文件和系统操作封装
//   - 失败路径明确：尽力而为的操作记录日志，致命操作立即终止
//   - 跨平台兼容
package util
