// Package enginetest provides an in-memory engine for tests.
package enginetest

import (
	"context"
	"errors"
	"sync"
)

// Scripted answers RequestBestMove with the queued replies in order and
// repeats the last one when the queue runs dry.
type Scripted struct {
	mu        sync.Mutex
	replies   []string
	histories []string
	asked     int
	initErr   error
	submitErr error

	// Gate, when set, blocks RequestBestMove until a value arrives or ctx ends
	Gate chan struct{}
}

func New(replies ...string) *Scripted {
	return &Scripted{replies: replies}
}

func (s *Scripted) FailInit(err error)   { s.initErr = err }
func (s *Scripted) FailSubmit(err error) { s.submitErr = err }

func (s *Scripted) Push(replies ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies = append(s.replies, replies...)
}

func (s *Scripted) Init(ctx context.Context) error { return s.initErr }

func (s *Scripted) SubmitPosition(ctx context.Context, history string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitErr != nil {
		return s.submitErr
	}
	s.histories = append(s.histories, history)
	return nil
}

func (s *Scripted) RequestBestMove(ctx context.Context) (string, error) {
	if s.Gate != nil {
		select {
		case <-s.Gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.replies) == 0 {
		return "", errors.New("no scripted reply")
	}
	s.asked++
	r := s.replies[0]
	if len(s.replies) > 1 {
		s.replies = s.replies[1:]
	}
	return r, nil
}

func (s *Scripted) Close() {}

// Histories returns every history string submitted so far
func (s *Scripted) Histories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.histories))
	copy(out, s.histories)
	return out
}

func (s *Scripted) Asked() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.asked
}
