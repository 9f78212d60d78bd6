package keymutex

import "sync"

// KeyMutex набор мьютексов, адресуемых строковым ключом
// Используется для сериализации бронирований по паре (space, date):
// несвязанные ключи не конкурируют между собой
type KeyMutex struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// New создает новый KeyMutex
func New() *KeyMutex {
	return &KeyMutex{locks: make(map[string]*entry)}
}

// Lock захватывает мьютекс для ключа и возвращает функцию освобождения
// Возвращаемый unlock обязан быть вызван на всех путях выхода (defer)
func (k *KeyMutex) Lock(key string) (unlock func()) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Unlock()

			k.mu.Lock()
			e.refs--
			if e.refs == 0 {
				delete(k.locks, key)
			}
			k.mu.Unlock()
		})
	}
}
