package sequence

import "sync/atomic"

// Sequencer 發放嚴格遞增的序號 (1, 2, 3...)
// 由組合根 (composition root) 建立並傳入需要的元件，不使用全域變數。
type Sequencer struct {
	last atomic.Uint64
}

// NewSequencer 建立 Sequencer，第一個 Next() 會回傳 start+1
func NewSequencer(start uint64) *Sequencer {
	s := &Sequencer{}
	s.last.Store(start)
	return s
}

// Next 發放下一個序號，並發呼叫也不會重複
func (s *Sequencer) Next() uint64 {
	return s.last.Add(1)
}

// Current 回傳最近一次發放的序號
func (s *Sequencer) Current() uint64 {
	return s.last.Load()
}
