package engine

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/vytor/chessprofile/internal/logger"
)

// EvalType discriminates centipawn scores from forced-mate scores.
type EvalType string

const (
	EvalCentipawn EvalType = "cp"
	EvalMate      EvalType = "mate"
)

// mateSentinel is the saturated centipawn value a mate score collapses to.
const mateSentinel = 10000

// Evaluation is a single position score, normalized so that positive always
// favors White. For EvalMate, Value is the signed move distance to mate.
type Evaluation struct {
	Type  EvalType
	Value int
}

// Score collapses the evaluation into a single centipawn number. Mate scores
// saturate at the +-10000 sentinel so downstream arithmetic stays uniform.
func (e Evaluation) Score() int {
	if e.Type == EvalMate {
		if e.Value > 0 {
			return mateSentinel
		}
		return -mateSentinel
	}
	return e.Value
}

// Session is one UCI engine process. Position set and score read happen under
// a single lock, so concurrent callers queue instead of interleaving and
// corrupting the engine's in-flight position.
type Session struct {
	path string
	log  *logger.Logger

	mu     sync.Mutex
	cmd    *exec.Cmd
	stdin  ioWriter
	stdout *bufio.Reader
}

type ioWriter interface {
	Write([]byte) (int, error)
}

func NewSession(path string) (*Session, error) {
	log := logger.Default().WithPrefix("engine")

	if path == "" {
		path = "stockfish"
	}

	log.Info("starting engine: %s", path)
	cmd := exec.Command(path)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		log.Error("failed to create stdin pipe: %v", err)
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		log.Error("failed to create stdout pipe: %v", err)
		return nil, err
	}

	s := &Session{
		path:   path,
		log:    log,
		cmd:    cmd,
		stdin:  stdin,
		stdout: bufio.NewReader(stdout),
	}

	if err := cmd.Start(); err != nil {
		log.Error("failed to start engine: %v", err)
		return nil, err
	}

	log.Debug("initializing UCI protocol")
	if err := s.init(); err != nil {
		log.Error("failed to initialize UCI: %v", err)
		return nil, err
	}

	log.Info("engine ready")
	return s, nil
}

func (s *Session) init() error {
	if err := s.send("uci"); err != nil {
		return err
	}
	if err := s.waitFor("uciok", 2*time.Second); err != nil {
		return err
	}
	if err := s.send("isready"); err != nil {
		return err
	}
	return s.waitFor("readyok", 2*time.Second)
}

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cmd == nil {
		return nil
	}

	s.log.Debug("closing engine session")
	_ = s.sendLocked("quit")
	err := s.cmd.Wait()
	s.cmd = nil

	if err != nil {
		s.log.Debug("engine process exited: %v", err)
	} else {
		s.log.Debug("engine process exited cleanly")
	}

	return err
}

// Reset tells the engine to forget all prior game state. Called before each
// game's replay so no search state leaks between games.
func (s *Session) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sendLocked("ucinewgame"); err != nil {
		return err
	}
	if err := s.sendLocked("isready"); err != nil {
		return err
	}
	return s.waitForLocked(ctx, "readyok", 2*time.Second)
}

// Evaluate sets the position reached by playing moves (UCI notation) from the
// standard starting position, searches it, and returns the score from White's
// perspective. The set and the read are one atomic critical section.
func (s *Session) Evaluate(ctx context.Context, moves []string, depth int) (Evaluation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if depth <= 0 {
		depth = 12
	}

	log := s.log.WithField("depth", depth)
	start := time.Now()

	position := "position startpos"
	if len(moves) > 0 {
		position += " moves " + strings.Join(moves, " ")
	}
	if err := s.sendLocked(position); err != nil {
		log.Error("failed to set position: %v", err)
		return Evaluation{}, err
	}

	// After an even number of moves White is to move; UCI scores are from
	// the side to move, so odd histories need a sign flip.
	blackToMove := len(moves)%2 == 1

	if err := s.sendLocked(fmt.Sprintf("go depth %d", depth)); err != nil {
		log.Error("failed to start search: %v", err)
		return Evaluation{}, err
	}

	var best Evaluation
	var seen bool
	deadline := time.Now().Add(8 * time.Second)
	for {
		if ctx.Err() != nil {
			log.Warn("evaluation cancelled: %v", ctx.Err())
			return Evaluation{}, ctx.Err()
		}
		if time.Now().After(deadline) {
			log.Error("evaluation timed out after 8s")
			return Evaluation{}, errors.New("engine timeout")
		}
		line, err := s.stdout.ReadString('\n')
		if err != nil {
			log.Error("failed to read from engine: %v", err)
			return Evaluation{}, err
		}
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "info") {
			if ev, ok := ParseScore(line); ok {
				if blackToMove {
					ev.Value = -ev.Value
				}
				best = ev
				seen = true
			}
		}
		if strings.HasPrefix(line, "bestmove") {
			if !seen {
				log.Error("search finished without a score")
				return Evaluation{}, errors.New("engine produced no score")
			}
			log.Debug("evaluation completed in %v: type=%s value=%d", time.Since(start), best.Type, best.Value)
			return best, nil
		}
	}
}

// ParseScore extracts a score from a UCI "info" line. The returned value is
// from the side to move; callers normalize to White's perspective.
func ParseScore(line string) (Evaluation, bool) {
	parts := strings.Fields(line)
	for i := 0; i < len(parts); i++ {
		if parts[i] != "score" || i+2 >= len(parts) {
			continue
		}
		switch parts[i+1] {
		case "cp":
			if v, err := strconv.Atoi(parts[i+2]); err == nil {
				return Evaluation{Type: EvalCentipawn, Value: v}, true
			}
		case "mate":
			if v, err := strconv.Atoi(parts[i+2]); err == nil {
				return Evaluation{Type: EvalMate, Value: v}, true
			}
		}
	}
	return Evaluation{}, false
}

func (s *Session) send(cmd string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sendLocked(cmd)
}

func (s *Session) sendLocked(cmd string) error {
	_, err := s.stdin.Write([]byte(cmd + "\n"))
	return err
}

func (s *Session) waitFor(marker string, timeout time.Duration) error {
	return s.waitForLocked(context.Background(), marker, timeout)
}

func (s *Session) waitForLocked(ctx context.Context, marker string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if time.Now().After(deadline) {
			s.log.Error("timeout waiting for %s", marker)
			return fmt.Errorf("timeout waiting for %s", marker)
		}
		line, err := s.stdout.ReadString('\n')
		if err != nil {
			return err
		}
		if strings.Contains(line, marker) {
			return nil
		}
	}
}
