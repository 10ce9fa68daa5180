// Package optimizer finds the minimum stage/transfer count k for which a
// registered objective (in practice, an na/smt.Problem parameterized by
// k) is satisfiable, within a wall-clock timeout (spec.md §4.6). Each
// candidate k is evaluated in its own operating-system process: the
// optimizer re-execs the running binary with a hidden worker flag, since
// the SMT backend is not cleanly cancellable in-thread (spec.md §9
// "Fork-based concurrency in the optimizer").
package optimizer

import (
	"encoding/json"
	"fmt"
	"sync"
)

// WorkerFunc evaluates one candidate k against the parameters encoded in
// params, reporting satisfiability and an opaque result payload.
type WorkerFunc func(k int, params json.RawMessage) (sat bool, result json.RawMessage, err error)

var (
	registryMu sync.RWMutex
	registry   = map[string]WorkerFunc{}
)

// Register associates name with fn, so a worker subprocess launched with
// that name (via the hidden re-exec flag) can look it up. Call from an
// init function or early in main, before Run or RunWorkerIfRequested.
func Register(name string, fn WorkerFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

func lookup(name string) (WorkerFunc, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("optimizer: no worker registered under name %q", name)
	}
	return fn, nil
}
