package engine

import (
	"context"
	"dragchess/src/logic/convert/convcoord"
	"dragchess/src/logx"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Policy bounds one engine query
type Policy struct {
	Timeout    time.Duration // per query; 0 = UCIBestMoveTimeout
	RetryDelay time.Duration // pause after a failed query; 0 = retry on the next frame
}

func (p Policy) timeout() time.Duration {
	if p.Timeout <= 0 {
		return UCIBestMoveTimeout
	}
	return p.Timeout
}

type Adapter struct {
	eng    Engine
	logx   logx.Logger
	policy Policy

	// one query at a time, a cancelled query may still be draining
	mu sync.Mutex

	now     func() time.Time
	retryAt time.Time
	fails   int
}

func NewAdapter(e Engine, l logx.Logger, p Policy) *Adapter {
	return &Adapter{eng: e, logx: l, policy: p, now: time.Now}
}

// Query sends the complete history and asks for one move.
// Anything but a four character long algebraic move is ErrMalformedReply.
func (a *Adapter) Query(ctx context.Context, history string) (convcoord.Move, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, a.policy.timeout())
	defer cancel()

	a.logx.Debugf("query engine, history: %q", history)
	if err := a.eng.SubmitPosition(ctx, history); err != nil {
		return convcoord.Move{}, a.wrap("submit position", err)
	}
	reply, err := a.eng.RequestBestMove(ctx)
	if err != nil {
		return convcoord.Move{}, a.wrap("request best move", err)
	}
	if len(reply) != 4 {
		return convcoord.Move{}, fmt.Errorf("%w: %q", ErrMalformedReply, reply)
	}
	mv, err := convcoord.ParseMove(reply)
	if err != nil {
		return convcoord.Move{}, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	return mv, nil
}

func (a *Adapter) wrap(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %v", op, ErrTimeout, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Failed records a failed query and schedules the next attempt
func (a *Adapter) Failed() {
	a.fails++
	a.retryAt = a.now().Add(a.policy.RetryDelay)
}

// Succeeded resets the failure counter
func (a *Adapter) Succeeded() {
	a.fails = 0
	a.retryAt = time.Time{}
}

// Ready reports whether a new query may start
func (a *Adapter) Ready() bool {
	return !a.now().Before(a.retryAt)
}

// Failures counts consecutive failed queries
func (a *Adapter) Failures() int { return a.fails }

type Reply struct {
	Move convcoord.Move
	Err  error
}

// Pending is a query running off the game loop
type Pending struct {
	ch     chan Reply
	cancel context.CancelFunc
}

// Start runs Query on its own goroutine; the game loop polls the result
func (a *Adapter) Start(ctx context.Context, history string) *Pending {
	ctx, cancel := context.WithCancel(ctx)
	p := &Pending{ch: make(chan Reply, 1), cancel: cancel}
	go func() {
		mv, err := a.Query(ctx, history)
		p.ch <- Reply{Move: mv, Err: err}
	}()
	return p
}

func (p *Pending) Poll() (Reply, bool) {
	select {
	case r := <-p.ch:
		p.cancel()
		return r, true
	default:
		return Reply{}, false
	}
}

// Wait blocks until the query finishes or ctx is done
func (p *Pending) Wait(ctx context.Context) (Reply, error) {
	select {
	case r := <-p.ch:
		p.cancel()
		return r, nil
	case <-ctx.Done():
		return Reply{}, ctx.Err()
	}
}

func (p *Pending) Cancel() {
	p.cancel()
}
