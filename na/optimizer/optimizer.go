package optimizer

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrWorkerFailure is returned when a worker subprocess exits with a
// non-zero status and no result (spec.md §7 "WorkerFailure"); the
// optimizer kills all siblings and aborts.
var ErrWorkerFailure = errors.New("optimizer: worker failure")

// ErrNoResult is returned when the global timeout elapses with no
// satisfying k ever found (spec.md §7 "Timeout", "no result" outcome).
var ErrNoResult = errors.New("optimizer: timed out with no satisfying k")

// Spec configures one optimizer run.
type Spec struct {
	WorkerName     string          // must match a name passed to Register
	Params         json.RawMessage // opaque, forwarded verbatim to the worker
	InitialK       int
	MaxNSubProcs   int
	InitialTimeout time.Duration
	// TimeoutGrowth is the per-pass multiplier applied to the worker
	// timeout when a full pass finds no SAT (default 10, per spec.md
	// §4.6 "×10 each full pass").
	TimeoutGrowth float64
}

// Outcome is the best-effort or exact result of an optimizer run.
type Outcome struct {
	K      int
	Sat    bool
	Result json.RawMessage
}

// Run scans k upward from spec.InitialK, ramping worker timeouts up
// geometrically across passes, until some k is found satisfiable; it then
// sweeps downward from k−1 to find the true minimum, killing any
// in-flight worker whose k becomes uninteresting (spec.md §4.6). On
// global timeout it returns the best SAT found so far (possibly none).
func Run(ctx context.Context, spec Spec) (Outcome, error) {
	if spec.MaxNSubProcs <= 0 {
		spec.MaxNSubProcs = 1
	}
	if spec.TimeoutGrowth <= 0 {
		spec.TimeoutGrowth = 10
	}

	st := &runState{minSAT: -1, maxUNSAT: spec.InitialK - 1, cancels: map[int]context.CancelFunc{}}

	timeout := spec.InitialTimeout
	nextK := spec.InitialK

	// Ramp-up: scan k upward, one pass at a time, growing the per-worker
	// timeout each pass that finds nothing, until some k is SAT or the
	// caller's context is exhausted.
	for st.minSAT < 0 {
		select {
		case <-ctx.Done():
			return st.outcome(), ErrNoResult
		default:
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(spec.MaxNSubProcs)

		// Each pass probes a bounded window of candidate k values at the
		// current timeout; if none turn out SAT, the next pass re-probes
		// the following window at a ×TimeoutGrowth longer timeout.
		passWindow := spec.MaxNSubProcs * 2
		passStart := nextK
		foundThisPass := false
		for k := passStart; k < passStart+passWindow && !foundThisPass; k++ {
			select {
			case <-ctx.Done():
				foundThisPass = true // stop spawning; fall through to Wait below
				continue
			default:
			}
			if !st.interesting(k) {
				nextK = k + 1
				continue
			}
			k := k
			g.Go(func() error {
				return st.runOne(gctx, spec, k, timeout)
			})
			nextK = k + 1
			if st.sawSAT() {
				foundThisPass = true
			}
		}
		if err := g.Wait(); err != nil {
			return st.outcome(), err
		}
		if st.minSAT < 0 {
			timeout = time.Duration(float64(timeout) * spec.TimeoutGrowth)
		}
	}

	// Downward sweep: refine from minSAT-1 down to the established floor,
	// stopping at the first UNSAT (or when the caller's context expires).
	for k := st.minSAT - 1; k > st.maxUNSAT; k-- {
		select {
		case <-ctx.Done():
			return st.outcome(), nil
		default:
		}
		if !st.interesting(k) {
			continue
		}
		if err := st.runOne(ctx, spec, k, timeout); err != nil {
			return st.outcome(), err
		}
		if st.maxUNSAT >= k {
			break
		}
	}

	return st.outcome(), nil
}

type runState struct {
	mu       sync.Mutex
	minSAT   int
	maxUNSAT int
	best     json.RawMessage
	cancels  map[int]context.CancelFunc
}

func (s *runState) interesting(k int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.minSAT >= 0 && k >= s.minSAT {
		return false
	}
	if k <= s.maxUNSAT {
		return false
	}
	return true
}

func (s *runState) sawSAT() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.minSAT >= 0
}

func (s *runState) outcome() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.minSAT < 0 {
		return Outcome{K: -1, Sat: false}
	}
	return Outcome{K: s.minSAT, Sat: true, Result: s.best}
}

// runOne spawns one candidate-k worker subprocess, waits for it (bounded
// by timeout), and folds its outcome into the shared state. It kills any
// sibling worker that the new bound makes uninteresting.
func (s *runState) runOne(ctx context.Context, spec Spec, k int, timeout time.Duration) error {
	if !s.interesting(k) {
		return nil
	}
	workerCtx, cancel := context.WithTimeout(ctx, timeout)
	s.mu.Lock()
	s.cancels[k] = cancel
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.cancels, k)
		s.mu.Unlock()
		cancel()
	}()

	sat, result, err := spawnWorker(workerCtx, spec, k)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil // this k's verdict is inconclusive, not a failure
		}
		return fmt.Errorf("%w: k=%d: %v", ErrWorkerFailure, k, err)
	}

	s.mu.Lock()
	if sat {
		if s.minSAT < 0 || k < s.minSAT {
			s.minSAT = k
			s.best = result
		}
	} else {
		if k > s.maxUNSAT {
			s.maxUNSAT = k
		}
	}
	toKill := make([]context.CancelFunc, 0)
	for ck, cf := range s.cancels {
		if ck == k {
			continue
		}
		if (s.minSAT >= 0 && ck >= s.minSAT) || ck <= s.maxUNSAT {
			toKill = append(toKill, cf)
		}
	}
	s.mu.Unlock()
	for _, cf := range toKill {
		cf()
	}
	return nil
}

// spawnWorker re-execs the current binary as a worker process for
// candidate k, and decodes its stdout payload.
func spawnWorker(ctx context.Context, spec Spec, k int) (sat bool, result json.RawMessage, err error) {
	self, err := os.Executable()
	if err != nil {
		self = os.Args[0]
	}
	cmd := exec.CommandContext(ctx, self, workerFlag, spec.WorkerName, fmt.Sprintf("%d", k))
	cmd.Env = append(os.Environ(), paramsEnv+"="+base64.StdEncoding.EncodeToString(spec.Params))

	out, runErr := cmd.Output()
	if ctx.Err() != nil {
		return false, nil, ctx.Err()
	}
	if runErr != nil {
		return false, nil, runErr
	}

	var payload workerPayload
	if err := json.Unmarshal(out, &payload); err != nil {
		return false, nil, fmt.Errorf("optimizer: malformed worker output for k=%d: %w", k, err)
	}
	return payload.Sat, payload.Result, nil
}
