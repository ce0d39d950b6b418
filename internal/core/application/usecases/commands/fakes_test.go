package commands_test

import (
	"context"
	"errors"
	"sync"

	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/stock"
	"deliveryno/internal/core/ports"
	"deliveryno/internal/pkg/errs"
)

// memStockRepository keeps entries in memory and applies Stock.Decrement
// under a mutex, the way a single conditional UPDATE statement would.
type memStockRepository struct {
	mu      sync.Mutex
	entries map[kernel.UUID]stock.Snapshot
}

func newMemStockRepository(entries ...*stock.Stock) *memStockRepository {
	r := &memStockRepository{entries: make(map[kernel.UUID]stock.Snapshot)}
	for _, e := range entries {
		r.entries[e.ID()] = snapshotOf(e)
	}
	return r
}

func snapshotOf(s *stock.Stock) stock.Snapshot {
	return stock.Snapshot{
		ID:        s.ID(),
		SellerID:  s.SellerID(),
		Item:      s.Item(),
		Quantity:  s.Quantity(),
		Approved:  s.IsApproved(),
		Version:   s.Version(),
		CreatedAt: s.CreatedAt(),
		UpdatedAt: s.UpdatedAt(),
	}
}

func (r *memStockRepository) Add(_ context.Context, s *stock.Stock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.SellerID.IsEqual(s.SellerID()) && e.Item == s.Item() {
			return errs.NewValueIsInvalidError("item")
		}
	}
	r.entries[s.ID()] = snapshotOf(s)
	return nil
}

func (r *memStockRepository) Update(_ context.Context, s *stock.Stock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.entries[s.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("stock", s.ID())
	}
	if current.Version != s.LoadedVersion() {
		return errs.NewVersionIsInvalidError("stock")
	}
	r.entries[s.ID()] = snapshotOf(s)
	return nil
}

func (r *memStockRepository) Get(_ context.Context, id kernel.UUID) (*stock.Stock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("stock", id)
	}
	return stock.RestoreStock(e)
}

func (r *memStockRepository) Delete(_ context.Context, id kernel.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return errs.NewObjectNotFoundError("stock", id)
	}
	delete(r.entries, id)
	return nil
}

func (r *memStockRepository) has(id kernel.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[id]
	return ok
}

func (r *memStockRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*stock.Stock, error) {
	return r.Get(ctx, id)
}

func (r *memStockRepository) FindBySellerAndItem(
	_ context.Context, sellerID kernel.UUID, item string,
) (*stock.Stock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.SellerID.IsEqual(sellerID) && e.Item == item {
			return stock.RestoreStock(e)
		}
	}
	return nil, stock.NewItemNotFoundError(sellerID, item)
}

func (r *memStockRepository) DecrementIfAvailable(
	_ context.Context, sellerID kernel.UUID, item string, quantity int,
) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.entries {
		if !e.SellerID.IsEqual(sellerID) || e.Item != item {
			continue
		}
		s, err := stock.RestoreStock(e)
		if err != nil {
			return false, err
		}
		if err = s.Decrement(quantity); err != nil {
			if errors.Is(err, stock.ErrInsufficientStock) {
				return false, nil
			}
			return false, err
		}
		r.entries[id] = snapshotOf(s)
		return true, nil
	}
	return false, nil
}

func (r *memStockRepository) quantity(id kernel.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries[id].Quantity
}

type memSettlementRepository struct {
	mu      sync.Mutex
	byOrder map[kernel.UUID]*stock.Settlement
}

func newMemSettlementRepository() *memSettlementRepository {
	return &memSettlementRepository{byOrder: make(map[kernel.UUID]*stock.Settlement)}
}

func (r *memSettlementRepository) Add(_ context.Context, s *stock.Settlement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byOrder[s.OrderID()]; ok {
		return errs.NewVersionIsInvalidError("settlement")
	}
	r.byOrder[s.OrderID()] = s
	return nil
}

func (r *memSettlementRepository) GetByOrder(_ context.Context, orderID kernel.UUID) (*stock.Settlement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byOrder[orderID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("settlement", orderID)
	}
	return s, nil
}

func (r *memSettlementRepository) all() []*stock.Settlement {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*stock.Settlement, 0, len(r.byOrder))
	for _, s := range r.byOrder {
		out = append(out, s)
	}
	return out
}

// memLocker is a process-local ports.KeyLocker.
type memLocker struct {
	mu   sync.Mutex
	held map[string]bool
}

func newMemLocker() *memLocker {
	return &memLocker{held: make(map[string]bool)}
}

func (l *memLocker) TryLock(_ context.Context, key string) (ports.ReleaseFunc, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] {
		return nil, ports.ErrLockNotAcquired
	}
	l.held[key] = true
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, key)
		return nil
	}, nil
}
