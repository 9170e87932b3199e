package tools

import "sync"

// KeyMutex 按 key 串行化的互斥锁，画像合并按手机号加锁用
// 锁对象创建后不回收，key 基数有限（活跃商家的手机号）
type KeyMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyMutex() *KeyMutex {
	return &KeyMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock 锁住指定 key，调用方负责 Unlock
func (km *KeyMutex) Lock(key string) {
	km.mu.Lock()
	l, ok := km.locks[key]
	if !ok {
		l = &sync.Mutex{}
		km.locks[key] = l
	}
	km.mu.Unlock()

	l.Lock()
}

func (km *KeyMutex) Unlock(key string) {
	km.mu.Lock()
	l, ok := km.locks[key]
	km.mu.Unlock()

	if ok {
		l.Unlock()
	}
}
