// Package xtls 提供带析构回调的线程本地存储（TLS）模拟。
//
// # 背景
//
// 一些线程模型的 TLS 槽位自带线程退出时的清理回调（如 pthread_key_create
// 的 destructor），另一些平台的原生 TLS 只是惰性存储，没有任何生命周期
// 钩子。本包在后者之上模拟前者的语义：为一个槽位注册析构函数，保证持有
// 该槽位非空值的线程在终止时，析构函数恰好被调用一次。
//
// # 核心概念
//
//   - [Store]: 原生 TLS 槽位管理器的抽象（分配槽位、按线程读写一个字）。
//     默认实现为进程内 map 存储；部署方可注入贴近宿主平台的实现。
//   - [Emulator]: 绑定一个 Store 和进程级唯一的析构注册表。
//   - [Emulator.CreateKey]: 分配槽位并一次性登记析构函数（公开入口）。
//   - [Emulator.OnThreadExit] / [Emulator.OnProcessExit]: 平台退出钩子的
//     汇聚点，由部署适配层在线程/进程销毁时调用。
//
// # 单一绑定限制
//
// 整个 Emulator 生命周期内只允许登记一个（析构函数, 槽位）对。第二次
// 携带非 nil 析构函数的 CreateKey 是致命的前置条件违规：注册表无法区分
// 两个析构函数各自对应哪个退出事件，静默覆盖会造成漏清理或错清理，
// 因此立即终止进程而不是假装支持。携带 nil 析构函数的调用不受限制，
// 只分配惰性槽位。
//
// # 先清后调
//
// 退出通知先把槽位覆盖为空值，再调用析构函数。这个顺序是承重不变量：
// 防止析构函数（或它触发的任何代码）重新观察到陈旧指针，也消除了平台
// 在线程销毁期间以未指定顺序破坏 TLS 值的歧义。同一线程先后经过
// 线程退出和进程退出两条通知路径时，第二条读到的已是空值，析构函数
// 至多执行一次。
//
// # 钩子接线
//
// 通知必须对"从未执行过本包任何代码"的线程也安全，因此不依赖任何
// 线程本地初始化。Go 侧提供两种冗余的部署适配：
//
//   - [Emulator.Bind] / [Emulator.Go]: 为 goroutine 绑定线程标识，
//     在其退出（含 panic）时触发线程退出通知；
//   - [Emulator.ProcessExitHook]: 幂等的进程退出钩子，交由生命周期
//     管理层（如 xrun 的 WithExitHook）在进程收尾时调用，覆盖不经过
//     线程退出路径的主线程。
//
// # 分配安全
//
// 退出通知路径（读槽位、清槽位、调用析构）不执行内存分配，可以在
// 受限的线程销毁上下文中运行。致命诊断经由 xsys.WriteStderr 输出，
// 同样无分配。
package xtls
