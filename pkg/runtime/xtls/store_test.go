package xtls

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapStore_AllocSequence(t *testing.T) {
	s := NewMapStore(4)
	for want := Key(0); want < 4; want++ {
		key, err := s.Alloc()
		require.NoError(t, err)
		assert.Equal(t, want, key)
	}

	_, err := s.Alloc()
	assert.ErrorIs(t, err, ErrSlotsExhausted)
}

func TestMapStore_DefaultCap(t *testing.T) {
	s := NewMapStore(0)
	for range DefaultMaxSlots {
		_, err := s.Alloc()
		require.NoError(t, err)
	}
	_, err := s.Alloc()
	assert.ErrorIs(t, err, ErrSlotsExhausted)
}

func TestMapStore_GetNeverSet(t *testing.T) {
	s := NewMapStore(4)
	key, err := s.Alloc()
	require.NoError(t, err)

	assert.Nil(t, s.Get(ThreadID(1), key))
}

func TestMapStore_SetNilClears(t *testing.T) {
	s := NewMapStore(4)
	key, err := s.Alloc()
	require.NoError(t, err)

	s.Set(ThreadID(1), key, 123)
	require.Equal(t, 123, s.Get(ThreadID(1), key))

	s.Set(ThreadID(1), key, nil)
	assert.Nil(t, s.Get(ThreadID(1), key))

	// 清空从未设置的线程槽位是空操作
	s.Set(ThreadID(7), key, nil)
	assert.Nil(t, s.Get(ThreadID(7), key))
}

func TestMapStore_PerThreadIsolation(t *testing.T) {
	s := NewMapStore(4)
	key, err := s.Alloc()
	require.NoError(t, err)

	s.Set(ThreadID(1), key, "one")
	s.Set(ThreadID(2), key, "two")

	assert.Equal(t, "one", s.Get(ThreadID(1), key))
	assert.Equal(t, "two", s.Get(ThreadID(2), key))
}

func TestMapStore_ReleaseThread(t *testing.T) {
	s := NewMapStore(4).(*mapStore)
	k1, _ := s.Alloc()
	k2, _ := s.Alloc()

	s.Set(ThreadID(1), k1, "a")
	s.Set(ThreadID(1), k2, "b")
	s.Set(ThreadID(2), k1, "c")

	s.ReleaseThread(ThreadID(1))

	assert.Nil(t, s.Get(ThreadID(1), k1))
	assert.Nil(t, s.Get(ThreadID(1), k2))
	assert.Equal(t, "c", s.Get(ThreadID(2), k1))
}

func TestMapStore_Concurrent(t *testing.T) {
	s := NewMapStore(8)
	key, err := s.Alloc()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 64 {
		wg.Add(1)
		go func(tid ThreadID) {
			defer wg.Done()
			s.Set(tid, key, int(tid))
			for range 100 {
				_ = s.Get(tid, key)
			}
			s.Set(tid, key, nil)
		}(ThreadID(i + 1))
	}
	wg.Wait()

	for i := range 64 {
		assert.Nil(t, s.Get(ThreadID(i+1), key))
	}
}
