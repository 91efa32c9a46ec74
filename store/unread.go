//go:generate go run go.uber.org/mock/mockgen -source=unread.go -destination=../mocks/mock_unread.go -package=mocks
// Package store holds the session-scoped mutable state: unread buckets and
// the recent-conversations cache. Both have a narrow mutation API and a
// single logical writer (the router), so every other surface observes
// instead of mutating.
package store

import (
	"sync"
	"time"

	"chatlink/domain"
)

type IUnreadStore interface {
	AddUnread(partnerID, partnerName, content string, at time.Time)
	MarkRead(partnerID string)
	TotalUnread() int
	Buckets() []domain.UnreadBucket
}

// UnreadStore keeps one bucket per partner with unseen messages.
// A bucket is removed entirely on MarkRead, never decremented, so a later
// AddUnread restarts the count at 1.
type UnreadStore struct {
	mu      sync.RWMutex
	buckets map[string]*domain.UnreadBucket
}

func NewUnreadStore() *UnreadStore {
	return &UnreadStore{buckets: make(map[string]*domain.UnreadBucket)}
}

func (s *UnreadStore) AddUnread(partnerID, partnerName, content string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buckets[partnerID]
	if !ok {
		s.buckets[partnerID] = &domain.UnreadBucket{
			PartnerID:     partnerID,
			PartnerName:   partnerName,
			Count:         1,
			LastMessage:   content,
			LastTimestamp: at,
		}
		return
	}
	b.Count++
	b.PartnerName = partnerName
	b.LastMessage = content
	b.LastTimestamp = at
}

func (s *UnreadStore) MarkRead(partnerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buckets, partnerID)
}

// TotalUnread is always the sum over buckets, never a separately
// maintained counter.
func (s *UnreadStore) TotalUnread() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, b := range s.buckets {
		total += b.Count
	}
	return total
}

func (s *UnreadStore) Buckets() []domain.UnreadBucket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.UnreadBucket, 0, len(s.buckets))
	for _, b := range s.buckets {
		out = append(out, *b)
	}
	return out
}
