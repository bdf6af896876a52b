package xtls

import "sync"

// Key 是 TLS 槽位的不透明句柄，进程内所有线程共享。
type Key uint32

// ThreadID 标识一个执行线程。由部署适配层分配（见 Bind/Go），
// 通知路径只把它当作不透明键使用。
type ThreadID uint64

// MainThreadID 是承载进程收尾的主/最终线程的保留标识。
// Bind 分配的线程标识从 MainThreadID+1 开始。
const MainThreadID ThreadID = 1

// Destructor 析构回调。线程终止时以该线程槽位的最终值为唯一参数调用。
// 值指向对象的所有权属于应用方，本包只负责转交。
type Destructor func(value any)

// Store 原生 TLS 槽位管理器的抽象（叶子依赖）。
//
// 语义约定：
//   - Alloc 分配一个新槽位；槽位耗尽返回 [ErrSlotsExhausted]
//   - Get 返回指定线程在该槽位的当前值，从未设置时返回 nil
//   - Set 写入指定线程的槽位值；value 为 nil 表示清空
//
// 实现必须并发安全，且 Get 与"清空已有值的 Set"不得执行内存分配——
// 退出通知路径在受限上下文中依赖这一点。
type Store interface {
	Alloc() (Key, error)
	Get(tid ThreadID, key Key) any
	Set(tid ThreadID, key Key, value any)
}

// ThreadReleaser 可选扩展：整体释放一个线程的全部槽位状态。
// Bind 的释放函数在退出通知完成后调用它，避免长生命周期进程中
// 已终止线程的存储残留。
type ThreadReleaser interface {
	ReleaseThread(tid ThreadID)
}

// DefaultMaxSlots 默认槽位上限。
// 对齐常见平台对静态 TLS 槽位数量的最低保证（Windows 的
// TLS_MINIMUM_AVAILABLE 为 64）。
const DefaultMaxSlots = 64

// 编译时接口检查
var (
	_ Store          = (*mapStore)(nil)
	_ ThreadReleaser = (*mapStore)(nil)
)

// mapStore Store 的默认进程内实现。
//
// 读多写少：Get 走读锁。写路径（Set/Alloc）持写锁。
// 清空一个从未设置过的槽位是纯粹的 map delete，不分配内存。
type mapStore struct {
	mu       sync.RWMutex
	values   map[ThreadID]map[Key]any
	next     uint32
	maxSlots uint32
}

// NewMapStore 创建默认的 map 存储。
// maxSlots 为 0 时使用 [DefaultMaxSlots]。
func NewMapStore(maxSlots uint32) Store {
	if maxSlots == 0 {
		maxSlots = DefaultMaxSlots
	}
	return &mapStore{
		values:   make(map[ThreadID]map[Key]any),
		maxSlots: maxSlots,
	}
}

func (s *mapStore) Alloc() (Key, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.next >= s.maxSlots {
		return 0, ErrSlotsExhausted
	}
	key := Key(s.next)
	s.next++
	return key, nil
}

func (s *mapStore) Get(tid ThreadID, key Key) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[tid][key]
}

func (s *mapStore) Set(tid ThreadID, key Key, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots := s.values[tid]
	if value == nil {
		// 清空：delete 对缺失键是空操作，不分配内存
		delete(slots, key)
		return
	}
	if slots == nil {
		slots = make(map[Key]any)
		s.values[tid] = slots
	}
	slots[key] = value
}

func (s *mapStore) ReleaseThread(tid ThreadID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, tid)
}
