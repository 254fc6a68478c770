package cache

import (
	"go.uber.org/zap"

	"udwallet/internal/domain"
	"udwallet/internal/store"
)

const transactionsFileName = "transactions.data"

// TransactionsStorage caches domain transactions, unique by id.
type TransactionsStorage struct {
	*fileCache[domain.Transaction]
}

// NewTransactionsStorage returns the transaction cache backed by transactions.data.
func NewTransactionsStorage(deps Deps) (*TransactionsStorage, error) {
	c, err := newFileCache[domain.Transaction](deps, "transactions", store.Documents, transactionsFileName)
	if err != nil {
		return nil, err
	}
	return &TransactionsStorage{fileCache: c}, nil
}

// GetTransactions returns cached transactions for the given domains, or all
// of them when domainNames is empty.
func (s *TransactionsStorage) GetTransactions(domainNames []string) []domain.Transaction {
	all := s.snapshot()
	if len(domainNames) == 0 {
		return all
	}
	want := make(map[string]struct{}, len(domainNames))
	for _, n := range domainNames {
		want[domain.NormalizeDomainName(n)] = struct{}{}
	}
	out := make([]domain.Transaction, 0, len(all))
	for _, tx := range all {
		if _, ok := want[domain.NormalizeDomainName(tx.DomainName)]; ok {
			out = append(out, tx)
		}
	}
	return out
}

// InjectTransactions merges transactions into the cache by id. A cached
// transaction is combined with the incoming one through Transaction.Merge, so
// locally known fields survive a fetch that omits them.
func (s *TransactionsStorage) InjectTransactions(transactions []domain.Transaction) error {
	incoming := append([]domain.Transaction{}, transactions...)
	return s.mutate(func(cur []domain.Transaction) ([]domain.Transaction, error) {
		return s.merge(cur, incoming), nil
	})
}

func (s *TransactionsStorage) merge(cached, incoming []domain.Transaction) []domain.Transaction {
	byID := make(map[string]int, len(cached)+len(incoming))
	out := make([]domain.Transaction, 0, len(cached)+len(incoming))
	for _, tx := range cached {
		if i, ok := byID[tx.ID]; ok {
			out[i] = out[i].Merge(tx)
			continue
		}
		byID[tx.ID] = len(out)
		out = append(out, tx)
	}
	for _, tx := range incoming {
		if tx.ID == "" {
			s.logger.Warn("skipping transaction without id", zap.String("domain", tx.DomainName))
			continue
		}
		if i, ok := byID[tx.ID]; ok {
			out[i] = out[i].Merge(tx)
			continue
		}
		byID[tx.ID] = len(out)
		out = append(out, tx)
	}
	return out
}

// ReplaceTransactions replaces the whole cache.
func (s *TransactionsStorage) ReplaceTransactions(transactions []domain.Transaction) error {
	next := append([]domain.Transaction{}, transactions...)
	return s.mutate(func([]domain.Transaction) ([]domain.Transaction, error) {
		return next, nil
	})
}

var _ domain.TransactionStore = (*TransactionsStorage)(nil)
