package memory

import (
	"sort"

	"github.com/JoeShih716/go-money-transfer/internal/app/core/domain"
	"github.com/JoeShih716/go-money-transfer/internal/app/core/usecase"
	"github.com/JoeShih716/go-money-transfer/pkg/store"
)

// Journal 記憶體交易紀錄
//
// 以交易 ID 為 key，同一個 ID 只會記錄一次。
// 只支援新增與查詢，紀錄一旦寫入就不會被修改或刪除。
type Journal struct {
	transactions *store.IdentityStore[*domain.Transaction]
}

// NewJournal 建立空的 Journal
func NewJournal() *Journal {
	return &Journal{
		transactions: store.NewIdentityStore[*domain.Transaction](),
	}
}

// Record 寫入一筆已提交的交易
//
// 參數:
//
//	tran: 交易紀錄
//
// 回傳:
//
//	bool: 寫入成功回傳 true；ID 已存在或 tran 為 nil 回傳 false
func (j *Journal) Record(tran *domain.Transaction) bool {
	if tran == nil {
		return false
	}
	return j.transactions.Register(tran)
}

// Find 依交易 ID 查詢
func (j *Journal) Find(id string) (domain.Transaction, bool) {
	tran, ok := j.transactions.Lookup(id)
	if !ok {
		return domain.Transaction{}, false
	}
	return *tran, true
}

// All 回傳所有交易的副本，依序號排序
func (j *Journal) All() []domain.Transaction {
	trans := j.transactions.All()
	out := make([]domain.Transaction, 0, len(trans))
	for _, t := range trans {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Sequence < out[k].Sequence })
	return out
}

// Len 目前交易筆數
func (j *Journal) Len() int {
	return j.transactions.Len()
}

var _ usecase.Journal = (*Journal)(nil)
