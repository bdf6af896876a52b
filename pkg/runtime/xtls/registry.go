package xtls

import "sync/atomic"

// destructorBinding 注册表的唯一记录：一次写入，进程生命周期内只读。
type destructorBinding struct {
	destructor Destructor
	key        Key
}

// registry 一写多读的析构注册表。
//
// 写入通过 CompareAndSwap 发布，保证注册先行发生于任何后续的
// 退出通知读取；第二次写入被拒绝而非覆盖。注册表没有删除操作——
// 绑定随进程终止被隐式丢弃。
type registry struct {
	binding atomic.Pointer[destructorBinding]
}

// register 登记（析构函数, 槽位）绑定。已存在绑定时返回
// [ErrDestructorRegistered]，不覆盖。
func (r *registry) register(destructor Destructor, key Key) error {
	b := &destructorBinding{destructor: destructor, key: key}
	if !r.binding.CompareAndSwap(nil, b) {
		return ErrDestructorRegistered
	}
	return nil
}

// current 返回当前绑定；从未登记时返回 nil。
// 无锁读取（atomic load），可从退出通知路径调用。
func (r *registry) current() *destructorBinding {
	return r.binding.Load()
}
