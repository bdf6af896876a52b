package xtls

import "errors"

var (
	// ErrSlotsExhausted 表示原生 TLS 槽位已耗尽。
	// 对 CreateKey 而言这是不可恢复的致命条件。
	ErrSlotsExhausted = errors.New("xtls: thread-local slots exhausted")

	// ErrDestructorRegistered 表示析构函数已登记，拒绝第二次登记。
	// 注册表整个进程生命周期内只支持一个（析构函数, 槽位）绑定。
	ErrDestructorRegistered = errors.New("xtls: a destructor is already registered")
)
