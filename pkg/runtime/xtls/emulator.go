package xtls

import (
	"fmt"
	"sync/atomic"

	"github.com/omeyang/portkit/pkg/util/xsys"
)

// fatalf 致命错误出口：输出诊断后终止进程，不返回。
// 默认经由 xsys.Fatal（无分配的 stderr 写入 + 退出码 2）。
// 包级变量 mock 模式：测试中替换以覆盖致命路径。
var fatalf = func(format string, args ...any) {
	xsys.Fatal(fmt.Sprintf(format, args...))
}

// Emulator 把一个 [Store] 和一写多读的析构注册表绑定在一起，
// 对外提供"可析构线程本地键"的模拟。
//
// 零散工具场景可直接使用包级函数（委托给 [Default]）；
// 需要隔离状态（如测试、多实例嵌入）时显式创建实例。
type Emulator struct {
	store     Store
	reg       registry
	threadSeq atomic.Uint64
}

// Option 配置 Emulator 的选项函数。
type Option func(*emulatorOptions)

type emulatorOptions struct {
	store    Store
	maxSlots uint32
}

// WithStore 注入自定义槽位管理器。
// 部署方可借此对接宿主平台的原生 TLS 设施。传入 nil 会被静默忽略。
func WithStore(store Store) Option {
	return func(o *emulatorOptions) {
		if store != nil {
			o.store = store
		}
	}
}

// WithMaxSlots 设置默认 map 存储的槽位上限。
// 仅在未通过 [WithStore] 注入存储时生效；0 表示使用 [DefaultMaxSlots]。
func WithMaxSlots(n uint32) Option {
	return func(o *emulatorOptions) {
		o.maxSlots = n
	}
}

// New 创建 Emulator。
func New(opts ...Option) *Emulator {
	options := &emulatorOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(options)
	}
	if options.store == nil {
		options.store = NewMapStore(options.maxSlots)
	}

	e := &Emulator{store: options.store}
	// Bind 分配的线程标识从 MainThreadID+1 开始，主线程标识保留
	e.threadSeq.Store(uint64(MainThreadID))
	return e
}

// CreateKey 分配一个新的 TLS 槽位，并在 destructor 非 nil 时将其
// 一次性登记到析构注册表。返回槽位句柄，调用方此后直接通过
// Get/Set 读写各线程的槽位值。
//
// 两类致命条件（终止进程，不静默降级）：
//   - 槽位耗尽：目标平台上不可恢复
//   - 第二次登记非 nil 析构函数：注册表只支持一个绑定，静默继续
//     会让后续的线程退出清理对这个未登记的键失效
//
// destructor 为 nil 时只分配惰性槽位，不受单一绑定限制。
// 登记应发生在单线程初始化阶段；发布采用原子 CAS，对并发首次
// 调用也是竞态安全的。
func (e *Emulator) CreateKey(destructor Destructor) Key {
	key, err := e.store.Alloc()
	if err != nil {
		fatalf("xtls: slot allocation failed: %v", err)
		return 0
	}
	if destructor != nil {
		if err := e.reg.register(destructor, key); err != nil {
			fatalf("xtls: CreateKey(key=%d): %v", key, err)
		}
	}
	return key
}

// Get 返回 tid 线程在 key 槽位的当前值，从未设置时返回 nil。
func (e *Emulator) Get(tid ThreadID, key Key) any {
	return e.store.Get(tid, key)
}

// Set 写入 tid 线程在 key 槽位的值；value 为 nil 表示清空。
func (e *Emulator) Set(tid ThreadID, key Key, value any) {
	e.store.Set(tid, key, value)
}

// OnThreadExit 线程退出通知。由部署适配层在任一线程终止时调用，
// 该线程自己的代码已经结束、原生 TLS 存储仍然有效。
//
// 对从未执行过本包代码的线程调用也安全；无绑定或槽位为空时是
// 预期中的空操作。本路径不执行内存分配。
func (e *Emulator) OnThreadExit(tid ThreadID) {
	e.notify(tid)
}

// OnProcessExit 进程退出通知，覆盖不经过线程退出钩子的最终/主线程。
//
// 执行与 [Emulator.OnThreadExit] 完全相同的读取、清空、调用序列：
// 若同一线程两条路径都被触发，第二条读到的已是清空后的哨兵值，
// 析构函数至多执行一次。
func (e *Emulator) OnProcessExit(tid ThreadID) {
	e.notify(tid)
}

// notify 读取、清空、调用三步序列。
// 先清后调是承重不变量：在调用析构函数之前就把槽位覆盖为空值，
// 防止析构过程重新观察到陈旧指针，也防止平台在线程销毁期间
// 以未指定顺序破坏槽位值。
func (e *Emulator) notify(tid ThreadID) {
	b := e.reg.current()
	if b == nil {
		return
	}
	value := e.store.Get(tid, b.key)
	e.store.Set(tid, b.key, nil)
	if value != nil {
		b.destructor(value)
	}
}
