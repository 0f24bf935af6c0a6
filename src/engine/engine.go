package engine

import (
	"context"
	"errors"
	"time"
)

var (
	ErrMalformedReply = errors.New("malformed engine reply")
	ErrNoProcess      = errors.New("no running engine process")
	ErrTimeout        = errors.New("engine timeout")
)

const (
	UCIHandshakeTimeout = 2 * time.Second  // uci / isready
	UCIBestMoveTimeout  = 30 * time.Second // go ...
	UCIQuitTimeout      = 2 * time.Second
)

// Engine is the message level contract with the engine process.
// Every query sends the full history, the engine keeps no game state.
type Engine interface {
	Init(ctx context.Context) error
	SubmitPosition(ctx context.Context, history string) error
	RequestBestMove(ctx context.Context) (string, error)
	Close()
}

type AnalysisInfo struct {
	Depth    int   // current depth
	TimeMs   int64 // elapsed ms
	Nodes    int64
	NPS      int64
	ScoreCP  int // centipawns, + is good for the side to move
	MateIn   int // plies, 0 if none
	PV       []string
	BestMove string
}

type SearchParams struct {
	MaxDepth  int   // 0 = no depth limit
	MaxTimeMs int64 // 0 = no time limit
}

type LevelAnalyze int

const (
	LevelOne LevelAnalyze = iota
	LevelTwo
	LevelThree
	LevelFour
	LevelFive
	LevelSix
	LevelSeven
	LevelEight
	LevelNine
	LevelTen
	LevelInvalid
)

func LevelFromInt(n int) LevelAnalyze {
	if n < 1 || n > 10 {
		return LevelInvalid
	}
	return LevelAnalyze(n - 1)
}

func LevelToParams(lvl LevelAnalyze) SearchParams {
	switch lvl {
	case LevelOne:
		return SearchParams{MaxDepth: 1, MaxTimeMs: 500}
	case LevelTwo:
		return SearchParams{MaxDepth: 2, MaxTimeMs: 800}
	case LevelThree:
		return SearchParams{MaxDepth: 3, MaxTimeMs: 1000}
	case LevelFour:
		return SearchParams{MaxDepth: 5, MaxTimeMs: 1500}
	case LevelFive:
		return SearchParams{MaxDepth: 7, MaxTimeMs: 2500}
	case LevelSix:
		return SearchParams{MaxDepth: 9, MaxTimeMs: 4000}
	case LevelSeven:
		return SearchParams{MaxDepth: 11, MaxTimeMs: 6000}
	case LevelEight:
		return SearchParams{MaxDepth: 13, MaxTimeMs: 8000}
	case LevelNine:
		return SearchParams{MaxDepth: 16, MaxTimeMs: 10000}
	case LevelTen:
		return SearchParams{MaxDepth: 18, MaxTimeMs: 15000}
	default:
		return SearchParams{MaxTimeMs: 1000}
	}
}
