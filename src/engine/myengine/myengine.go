package myengine

import (
	"context"
	"dragchess/src/engine"
	"dragchess/src/logic/convert/convpgn"
	"dragchess/src/logx"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/corentings/chess/v2"
)

// Name selects the in-process engine instead of an executable
const Name = "internal"

// the search replays the game for every legal move it tries
const maxSearchDepth = 2

const (
	mateScore = 1_000_000
	infScore  = 1_000_000_000
)

var (
	ErrUnreplayable = errors.New("history cannot be replayed")
	ErrNoMoves      = errors.New("no plain move available")
)

var pieceValues = map[chess.PieceType]int{
	chess.Pawn:   100,
	chess.Knight: 320,
	chess.Bishop: 330,
	chess.Rook:   500,
	chess.Queen:  900,
	chess.King:   10000,
}

// MyEngine is a small material searcher living in the GUI process.
// It speaks the same history-in, move-out contract as a UCI process.
type MyEngine struct {
	logx   logx.Logger
	params engine.SearchParams

	mu       sync.Mutex
	moves    []string
	lastInfo engine.AnalysisInfo
	nodes    int64

	subsMu    sync.Mutex
	subs      map[int]chan<- engine.AnalysisInfo
	nextSubID int
}

func NewMyEngine(logger logx.Logger, params engine.SearchParams) *MyEngine {
	return &MyEngine{
		logx:   logger,
		params: params,
		subs:   make(map[int]chan<- engine.AnalysisInfo),
	}
}

func (e *MyEngine) Init(ctx context.Context) error {
	e.logx.Infof("internal engine ready, depth %d, movetime %dms", e.depth(), e.params.MaxTimeMs)
	return nil
}

// SubmitPosition keeps the history after checking the rules library accepts it
func (e *MyEngine) SubmitPosition(ctx context.Context, history string) error {
	moves := strings.Fields(history)
	if _, rest := convpgn.Replay(moves); len(rest) > 0 {
		return fmt.Errorf("%w: stuck at %s", ErrUnreplayable, rest[0])
	}
	e.mu.Lock()
	e.moves = moves
	e.mu.Unlock()
	return nil
}

// RequestBestMove runs iterative deepening until the depth or the time runs out
func (e *MyEngine) RequestBestMove(ctx context.Context) (string, error) {
	if e.params.MaxTimeMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(e.params.MaxTimeMs)*time.Millisecond)
		defer cancel()
	}

	e.mu.Lock()
	root := append([]string(nil), e.moves...)
	e.nodes = 0
	e.lastInfo = engine.AnalysisInfo{}
	e.mu.Unlock()

	start := time.Now()
	best := ""
	for depth := 1; depth <= e.depth(); depth++ {
		mv, score, err := e.searchRoot(ctx, root, depth)
		if err != nil {
			if best != "" && ctx.Err() != nil {
				// a finished shallower depth is still an answer
				break
			}
			return "", err
		}
		best = mv
		nodes := e.nodeCount()
		e.publish(engine.AnalysisInfo{
			Depth:    depth,
			TimeMs:   time.Since(start).Milliseconds(),
			Nodes:    nodes,
			NPS:      computeNPS(nodes, time.Since(start)),
			ScoreCP:  score,
			PV:       []string{mv},
			BestMove: mv,
		})
	}
	e.logx.Debugf("internal engine: %s after %d nodes", best, e.nodeCount())
	return best, nil
}

func (e *MyEngine) BestNow() engine.AnalysisInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastInfo
}

func (e *MyEngine) Subscribe(ch chan<- engine.AnalysisInfo) (unsubscribe func()) {
	e.subsMu.Lock()
	id := e.nextSubID
	e.nextSubID++
	e.subs[id] = ch
	e.subsMu.Unlock()
	return func() {
		e.subsMu.Lock()
		delete(e.subs, id)
		e.subsMu.Unlock()
	}
}

func (e *MyEngine) Close() {
	e.subsMu.Lock()
	e.subs = make(map[int]chan<- engine.AnalysisInfo)
	e.subsMu.Unlock()
	e.logx.Info("internal engine closed")
}

func (e *MyEngine) depth() int {
	if e.params.MaxDepth <= 0 || e.params.MaxDepth > maxSearchDepth {
		return maxSearchDepth
	}
	return e.params.MaxDepth
}

func (e *MyEngine) nodeCount() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.nodes
}

func (e *MyEngine) countNode() {
	e.mu.Lock()
	e.nodes++
	e.mu.Unlock()
}

func (e *MyEngine) searchRoot(ctx context.Context, root []string, depth int) (string, int, error) {
	children, err := e.expand(ctx, root)
	if err != nil {
		return "", 0, err
	}
	if len(children) == 0 {
		return "", 0, ErrNoMoves
	}

	bestMove, bestScore := "", -infScore
	for _, c := range children {
		score := c.score
		if depth > 1 && !c.mate {
			v, err := e.negamax(ctx, append(root, c.uci), depth-1, -infScore, -bestScore)
			if err != nil {
				return "", 0, err
			}
			score = -v
		}
		if score > bestScore {
			bestMove, bestScore = c.uci, score
		}
	}
	return bestMove, bestScore, nil
}

// negamax scores line for the side to move
func (e *MyEngine) negamax(ctx context.Context, line []string, depth, alpha, beta int) (int, error) {
	children, err := e.expand(ctx, line)
	if err != nil {
		return 0, err
	}
	if len(children) == 0 {
		return 0, nil
	}

	best := -infScore
	for _, c := range children {
		v := c.score
		if depth > 1 && !c.mate {
			r, err := e.negamax(ctx, append(line, c.uci), depth-1, -beta, -alpha)
			if err != nil {
				return 0, err
			}
			v = -r
		}
		if v > best {
			best = v
		}
		if v > alpha {
			alpha = v
		}
		if alpha >= beta {
			break
		}
	}
	return best, nil
}

type child struct {
	uci   string
	score int  // material after the move, mover's point of view
	mate  bool // the move ends the game in the mover's favour
}

// expand lists the plain legal moves after line. Castling, en passant and
// promotion are left out since the board only relocates the moving piece.
func (e *MyEngine) expand(ctx context.Context, line []string) ([]child, error) {
	game, rest := convpgn.Replay(line)
	if len(rest) > 0 {
		return nil, fmt.Errorf("%w: stuck at %s", ErrUnreplayable, rest[0])
	}
	pos := game.Position()
	board := pos.Board()
	turn := pos.Turn()
	notation := chess.UCINotation{}

	var out []child
	for from := 0; from < 64; from++ {
		fromSq := square(from)
		p := board.Piece(fromSq)
		if p == chess.NoPiece || p.Color() != turn {
			continue
		}
		for to := 0; to < 64; to++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			toSq := square(to)
			target := board.Piece(toSq)
			if to == from || (target != chess.NoPiece && target.Color() == turn) {
				continue
			}
			if special(p, from, to, target) {
				continue
			}
			uci := squareName(from) + squareName(to)
			mv, err := notation.Decode(pos, uci)
			if err != nil {
				continue
			}
			if err := game.Move(mv, nil); err != nil {
				continue
			}
			e.countNode()
			out = append(out, scoreChild(game, uci, turn))

			// the game moved on, start again from line
			game, _ = convpgn.Replay(line)
			pos = game.Position()
		}
	}
	return out, nil
}

func scoreChild(game *chess.Game, uci string, mover chess.Color) child {
	c := child{uci: uci, score: material(game.Position().Board(), mover)}
	switch game.Outcome() {
	case chess.WhiteWon:
		c.mate = mover == chess.White
	case chess.BlackWon:
		c.mate = mover == chess.Black
	case chess.Draw:
		c.score = 0
	}
	if c.mate {
		c.score = mateScore
	}
	return c
}

func material(board *chess.Board, side chess.Color) int {
	sum := 0
	for i := 0; i < 64; i++ {
		p := board.Piece(square(i))
		if p == chess.NoPiece {
			continue
		}
		if p.Color() == side {
			sum += pieceValues[p.Type()]
		} else {
			sum -= pieceValues[p.Type()]
		}
	}
	return sum
}

func special(p chess.Piece, from, to int, target chess.Piece) bool {
	df := to%8 - from%8
	if df < 0 {
		df = -df
	}
	switch p.Type() {
	case chess.King:
		return df == 2
	case chess.Pawn:
		rank := to / 8
		if rank == 0 || rank == 7 {
			return true
		}
		return df == 1 && target == chess.NoPiece
	}
	return false
}

// square 0 is a1, 63 is h8
func square(i int) chess.Square {
	return chess.NewSquare(chess.FileA+chess.File(i%8), chess.Rank1+chess.Rank(i/8))
}

func squareName(i int) string {
	return string([]byte{byte('a' + i%8), byte('1' + i/8)})
}

func (e *MyEngine) publish(info engine.AnalysisInfo) {
	e.mu.Lock()
	e.lastInfo = info
	e.mu.Unlock()

	e.subsMu.Lock()
	for _, ch := range e.subs {
		select {
		case ch <- info:
		default:
		}
	}
	e.subsMu.Unlock()
}

func computeNPS(nodes int64, dur time.Duration) int64 {
	s := dur.Seconds()
	if s < 1e-6 {
		return nodes
	}
	return int64(float64(nodes) / s)
}
