// Package xfile 提供文件系统维护工具。
//
// # 功能概览
//
//   - [DeleteMatchingFiles]: 按 glob 枚举、按前缀匹配删除陈旧文件
//     （如历史 profile 转储），逐文件尽力而为，单个失败只记录不升级
//   - [EnsureDir] / [EnsureDirWithPerm]: 确保文件的父目录存在
//
// # 尽力而为语义
//
// 陈旧文件清理是后台维护动作：某个文件枚举不到或删不掉（被占用、
// 权限变化、竞争删除）不应让整个清理失败。DeleteMatchingFiles 对
// 单文件错误记录日志后跳过，只有模式本身非法或 context 取消才向
// 调用方返回错误。瞬时性的删除失败（如 Windows 上句柄尚未释放）
// 会在有限次数内重试。
//
// # 错误处理
//
// 预定义错误变量支持 [errors.Is] 判断，如 [ErrEmptyPattern]、[ErrNullByte]。
package xfile
