package store

import "sync"

// Identifiable 可被 IdentityStore 保存的實體，Identity 回傳空字串視為無效實體
type Identifiable interface {
	Identity() string
}

// IdentityStore 以字串 identity 為 key 的並發註冊表
// 同一個 identity 在整個生命週期內只會註冊成功一次，註冊後不會被替換或刪除。
//
// 使用 sync.Map 的 LoadOrStore 做原子的 check-and-insert，
// 不同 identity 的註冊與查詢不會互相爭用同一把鎖。
type IdentityStore[T Identifiable] struct {
	entities sync.Map // map[string]T
}

// NewIdentityStore 建立空的 IdentityStore
func NewIdentityStore[T Identifiable]() *IdentityStore[T] {
	return &IdentityStore[T]{}
}

// Register 註冊實體
//
// 參數:
//
//	entity: 要註冊的實體
//
// 回傳:
//
//	bool: identity 原本不存在且已寫入時為 true；identity 為空或已被佔用時為 false (不做任何修改)
func (s *IdentityStore[T]) Register(entity T) bool {
	id := entity.Identity()
	if id == "" {
		return false
	}
	_, loaded := s.entities.LoadOrStore(id, entity)
	return !loaded
}

// Lookup 依 identity 取得實體
func (s *IdentityStore[T]) Lookup(id string) (T, bool) {
	var zero T
	if id == "" {
		return zero, false
	}
	v, ok := s.entities.Load(id)
	if !ok {
		return zero, false
	}
	return v.(T), true
}

// All 回傳目前所有實體的快照 (新的 slice)
// 迭代期間可與 Register 並行，不保證順序。
func (s *IdentityStore[T]) All() []T {
	out := make([]T, 0)
	s.entities.Range(func(_, value any) bool {
		out = append(out, value.(T))
		return true
	})
	return out
}

// Len 回傳目前已註冊的實體數量
func (s *IdentityStore[T]) Len() int {
	n := 0
	s.entities.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
