package uci

import (
	"bufio"
	"context"
	"dragchess/src/engine"
	"dragchess/src/logx"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"
)

type UCIExecutor struct {
	// init
	path string
	args []string

	// process; inmu guards in, Close may run while a query still writes
	cmd  *exec.Cmd
	inmu sync.Mutex
	in   io.WriteCloser
	out  io.ReadCloser

	// read stdout
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	lines  chan string

	// subscribers
	submu sync.Mutex
	subs  map[int]chan<- engine.AnalysisInfo
	subid int

	// runtime
	mu     sync.Mutex
	params engine.SearchParams
	info   engine.AnalysisInfo
	logx   logx.Logger
}

// to open a process, call Init()
func NewUCIExec(logx logx.Logger, params engine.SearchParams, enginePath string, engineArgs ...string) *UCIExecutor {
	return &UCIExecutor{
		path: enginePath, args: engineArgs, logx: logx, params: params,
		subs: make(map[int]chan<- engine.AnalysisInfo),
	}
}

// Init starts the process and runs the uci/isready handshake
func (e *UCIExecutor) Init(ctx context.Context) error {
	if e.path == "" {
		return errors.New("engine path is empty")
	}

	cmd := exec.Command(e.path, e.args...)
	in, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("connect to stdin of %s: %w", e.path, err)
	}
	out, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("connect to stdout of %s: %w", e.path, err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", e.path, err)
	}
	return e.attach(ctx, cmd, in, out)
}

// attach wires already opened pipes; cmd may be nil when talking to a fake
func (e *UCIExecutor) attach(ctx context.Context, cmd *exec.Cmd, in io.WriteCloser, out io.ReadCloser) error {
	e.cmd = cmd
	e.inmu.Lock()
	e.in = in
	e.inmu.Unlock()
	e.out = out
	e.lines = make(chan string, 256)

	e.ctx, e.cancel = context.WithCancel(context.Background())
	e.wg.Add(1)
	go e.stdoutLoop(e.ctx)

	if err := e.Exec("uci"); err != nil {
		e.Close()
		return err
	}
	if err := e.waitCompare(ctx, "uciok", engine.UCIHandshakeTimeout); err != nil {
		e.Close()
		return fmt.Errorf("read uciok: %w", err)
	}
	if err := e.checkReady(ctx); err != nil {
		e.Close()
		return err
	}
	if cmd != nil && cmd.Process != nil {
		e.logx.Infof("open engine %s (pid %d)", e.path, cmd.Process.Pid)
	}
	return nil
}

// Exec writes one command line
func (e *UCIExecutor) Exec(cmd string) error {
	e.inmu.Lock()
	in := e.in
	e.inmu.Unlock()
	if in == nil {
		return engine.ErrNoProcess
	}
	e.logx.Debugf("GUI: %s", cmd)
	_, err := io.WriteString(in, cmd+"\n")
	return err
}

// SubmitPosition sends the whole game from the start position
func (e *UCIExecutor) SubmitPosition(ctx context.Context, history string) error {
	moves := strings.Fields(history)
	cmd := "position startpos"
	if len(moves) > 0 {
		cmd += " moves " + strings.Join(moves, " ")
	}
	if err := e.Exec(cmd); err != nil {
		return err
	}
	return e.checkReady(ctx)
}

// RequestBestMove starts a search and returns the raw bestmove token
func (e *UCIExecutor) RequestBestMove(ctx context.Context) (string, error) {
	if e.lines == nil {
		return "", engine.ErrNoProcess
	}
	e.mu.Lock()
	e.info = engine.AnalysisInfo{}
	e.mu.Unlock()

	if err := e.Exec(goCommand(e.params)); err != nil {
		return "", err
	}
	for {
		line, err := e.waitLine(ctx)
		if err != nil {
			// leave the engine idle for the next query
			_ = e.Exec("stop")
			return "", err
		}
		if strings.HasPrefix(line, "bestmove") {
			f := strings.Fields(line)
			if len(f) < 2 {
				return "", nil
			}
			e.mu.Lock()
			e.info.BestMove = f[1]
			e.mu.Unlock()
			return f[1], nil
		}
	}
}

// BestNow is the last analysis seen
func (e *UCIExecutor) BestNow() engine.AnalysisInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.info
}

func (e *UCIExecutor) Subscribe(ch chan<- engine.AnalysisInfo) (unsubscribe func()) {
	e.submu.Lock()
	defer e.submu.Unlock()

	id := e.subid
	e.subs[id] = ch
	e.subid++

	return func() {
		e.submu.Lock()
		defer e.submu.Unlock()
		delete(e.subs, id)
	}
}

// Close terminates the process, killing it if quit is ignored
func (e *UCIExecutor) Close() {
	if e.cancel == nil {
		return
	}
	_ = e.Exec("quit")
	e.inmu.Lock()
	in := e.in
	e.in = nil
	e.inmu.Unlock()
	if in != nil {
		_ = in.Close()
	}

	done := make(chan struct{})
	go func() {
		if e.cmd != nil {
			_ = e.cmd.Wait()
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(engine.UCIQuitTimeout):
		if e.cmd != nil && e.cmd.Process != nil {
			_ = e.cmd.Process.Kill()
		}
		<-done
	}

	e.cancel()
	if e.cmd == nil && e.out != nil {
		_ = e.out.Close()
	}
	e.wg.Wait()
	e.cancel = nil
	e.logx.Info("uci-process terminated")
}

func goCommand(prm engine.SearchParams) string {
	var b strings.Builder
	b.WriteString("go")
	if prm.MaxDepth > 0 {
		b.WriteString(" depth ")
		b.WriteString(strconv.Itoa(prm.MaxDepth))
	}
	if prm.MaxTimeMs > 0 {
		b.WriteString(" movetime ")
		b.WriteString(strconv.FormatInt(prm.MaxTimeMs, 10))
	}
	if prm.MaxDepth <= 0 && prm.MaxTimeMs <= 0 {
		b.WriteString(" movetime 1000")
	}
	return b.String()
}

func (e *UCIExecutor) checkReady(ctx context.Context) error {
	if err := e.Exec("isready"); err != nil {
		return err
	}
	if err := e.waitCompare(ctx, "readyok", engine.UCIHandshakeTimeout); err != nil {
		return fmt.Errorf("read readyok: %w", err)
	}
	return nil
}

func (e *UCIExecutor) waitLine(ctx context.Context) (string, error) {
	select {
	case line, ok := <-e.lines:
		if !ok {
			return "", engine.ErrNoProcess
		}
		return line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (e *UCIExecutor) waitCompare(ctx context.Context, str string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	for {
		line, err := e.waitLine(ctx)
		if err != nil {
			return err
		}
		if strings.HasPrefix(line, str) {
			return nil
		}
	}
}

func (e *UCIExecutor) stdoutLoop(ctx context.Context) {
	defer e.wg.Done()
	defer close(e.lines)
	scr := bufio.NewScanner(e.out)
	for scr.Scan() {
		line := strings.TrimSpace(scr.Text())
		if line == "" {
			continue
		}
		e.logx.Debugf("ENGINE: %s", line)
		if strings.HasPrefix(line, "info ") {
			e.saveInfo(line)
			continue
		}
		select {
		case e.lines <- line:
		case <-ctx.Done():
			return
		}
	}
}

func (e *UCIExecutor) saveInfo(line string) {
	info := parseInfo(line)
	e.mu.Lock()
	best := e.info.BestMove
	e.info = info
	e.info.BestMove = best
	e.mu.Unlock()
	e.publish(info)
}

func parseInfo(line string) engine.AnalysisInfo {
	info := engine.AnalysisInfo{}
	fld := strings.Fields(line)
	n := len(fld)
	for i := 0; i < n; i++ {
		switch fld[i] {
		case "depth":
			if i+1 < n {
				info.Depth, _ = strconv.Atoi(fld[i+1])
				i++
			}
		case "nodes":
			if i+1 < n {
				info.Nodes, _ = strconv.ParseInt(fld[i+1], 10, 64)
				i++
			}
		case "nps":
			if i+1 < n {
				info.NPS, _ = strconv.ParseInt(fld[i+1], 10, 64)
				i++
			}
		case "time":
			if i+1 < n {
				info.TimeMs, _ = strconv.ParseInt(fld[i+1], 10, 64)
				i++
			}
		case "score":
			if i+2 < n {
				v, err := strconv.Atoi(fld[i+2])
				if err == nil {
					switch fld[i+1] {
					case "cp":
						info.ScoreCP = v
					case "mate":
						info.MateIn = v
					}
				}
				i += 2
			}
		case "pv":
			info.PV = append([]string(nil), fld[i+1:]...)
			i = n // pv is always last
		default:
			// seldepth, currmove, hashfull ...
		}
	}
	return info
}

func (e *UCIExecutor) publish(info engine.AnalysisInfo) {
	e.submu.Lock()
	defer e.submu.Unlock()

	for _, ch := range e.subs {
		select {
		case ch <- info:
		default:
		}
	}
}
