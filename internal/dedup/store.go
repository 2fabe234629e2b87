// Package dedup keeps a bounded in-memory record of recently posted article
// fingerprints per topic, so consecutive cycles don't re-post the same story.
//
// State lives for the process lifetime only; a restart forgets everything.
package dedup

import "sync"

// DefaultCapacity bounds fingerprints kept per topic.
const DefaultCapacity = 20

type topicSet struct {
	seen  map[string]struct{}
	order []string // insertion order, oldest first
}

// Store is safe for concurrent use; topics do not contend beyond the single
// store mutex, which is uncontended under the single-loop scheduler.
type Store struct {
	mu     sync.Mutex
	cap    int
	topics map[string]*topicSet
}

func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{cap: capacity, topics: map[string]*topicSet{}}
}

// IsDuplicate reports whether fingerprint was recorded for topic.
// Pure membership test; never mutates.
func (s *Store) IsDuplicate(topic, fingerprint string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts := s.topics[topic]
	if ts == nil {
		return false
	}
	_, ok := ts.seen[fingerprint]
	return ok
}

// Record inserts fingerprint into the topic's set, evicting oldest-inserted
// entries when the set would exceed capacity. Recording an already-present
// fingerprint is a no-op (it keeps its original insertion position).
func (s *Store) Record(topic, fingerprint string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts := s.topics[topic]
	if ts == nil {
		ts = &topicSet{seen: map[string]struct{}{}}
		s.topics[topic] = ts
	}
	if _, ok := ts.seen[fingerprint]; ok {
		return
	}
	ts.seen[fingerprint] = struct{}{}
	ts.order = append(ts.order, fingerprint)
	for len(ts.order) > s.cap {
		oldest := ts.order[0]
		ts.order = ts.order[1:]
		delete(ts.seen, oldest)
	}
}

// Len reports how many fingerprints are recorded for topic.
func (s *Store) Len(topic string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ts := s.topics[topic]; ts != nil {
		return len(ts.order)
	}
	return 0
}
