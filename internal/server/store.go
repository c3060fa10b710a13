package server

import (
	"sync"

	"github.com/nhdewitt/specsheet/internal/protocol"
)

// ReportStore keeps the most recent envelope received from each host.
type ReportStore struct {
	mu      sync.RWMutex
	reports map[string]protocol.Envelope
}

func NewReportStore() *ReportStore {
	return &ReportStore{
		reports: make(map[string]protocol.Envelope),
	}
}

// Put records env unless a newer envelope from the same host is held.
func (s *ReportStore) Put(env protocol.Envelope) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.reports[env.Hostname]; ok && cur.Timestamp.After(env.Timestamp) {
		return
	}
	s.reports[env.Hostname] = env
}

func (s *ReportStore) Get(hostname string) (protocol.Envelope, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	env, ok := s.reports[hostname]
	return env, ok
}

func (s *ReportStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reports)
}
