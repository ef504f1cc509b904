// Package memory provides an in-memory PriceStore used by tests and by
// offline replay runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"dex-trades/internal/domain"
	"dex-trades/internal/storage"
)

// Store keeps points in a map keyed by "symbol|timestamp" under an RWMutex.
type Store struct {
	mu     sync.RWMutex
	points map[string]domain.PricePoint
}

var _ storage.PriceStore = (*Store)(nil)

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{points: make(map[string]domain.PricePoint)}
}

func key(symbol string, ts int64) string {
	return fmt.Sprintf("%s|%d", symbol, ts)
}

// Bracket returns the points at the hour floor of ts and one hour later.
func (s *Store) Bracket(_ context.Context, symbol string, ts int64) (*domain.PricePoint, *domain.PricePoint, error) {
	floor := domain.HourFloor(ts)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var before, after *domain.PricePoint
	if p, ok := s.points[key(symbol, floor)]; ok {
		cp := p
		before = &cp
	}
	if p, ok := s.points[key(symbol, floor+3600)]; ok {
		cp := p
		after = &cp
	}
	return before, after, nil
}

// UpsertBatch writes all points, counting new keys as inserts and existing
// keys as updates.
func (s *Store) UpsertBatch(_ context.Context, points []domain.PricePoint) (int64, int64, error) {
	for _, p := range points {
		if err := storage.ValidatePoint(p); err != nil {
			return 0, 0, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var inserted, updated int64
	for _, p := range points {
		k := key(p.Symbol, p.Timestamp)
		if _, ok := s.points[k]; ok {
			updated++
		} else {
			inserted++
		}
		s.points[k] = p
	}
	return inserted, updated, nil
}

// Range lists points for symbol within [from, to], ascending by timestamp.
func (s *Store) Range(_ context.Context, symbol string, from, to int64) ([]domain.PricePoint, error) {
	s.mu.RLock()
	out := make([]domain.PricePoint, 0)
	for _, p := range s.points {
		if p.Symbol == symbol && p.Timestamp >= from && p.Timestamp <= to {
			out = append(out, p)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out, nil
}

// Recent lists the newest points for symbol, descending by timestamp.
func (s *Store) Recent(_ context.Context, symbol string, limit int) ([]domain.PricePoint, error) {
	s.mu.RLock()
	out := make([]domain.PricePoint, 0)
	for _, p := range s.points {
		if p.Symbol == symbol {
			out = append(out, p)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
