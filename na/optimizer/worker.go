package optimizer

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

const (
	workerFlag = "--naqc-internal-worker"
	paramsEnv  = "NAQC_OPTIMIZER_PARAMS"
)

// workerPayload is what a worker subprocess writes to stdout on success;
// the parent decodes exactly this shape.
type workerPayload struct {
	Sat    bool            `json:"sat"`
	Result json.RawMessage `json:"result,omitempty"`
}

// RunWorkerIfRequested checks os.Args for the hidden re-exec flag this
// package's Run uses to launch candidate-k subprocesses. If present, it
// runs the requested worker to completion, writes its outcome to stdout,
// and exits the process — it never returns. Call this once, early in
// main, before any other optimizer.Run call in the same binary.
func RunWorkerIfRequested() {
	if len(os.Args) < 4 || os.Args[1] != workerFlag {
		return
	}
	name := os.Args[2]
	k, err := strconv.Atoi(os.Args[3])
	if err != nil {
		fmt.Fprintf(os.Stderr, "optimizer: bad worker k argument %q: %v\n", os.Args[3], err)
		os.Exit(2)
	}

	var params json.RawMessage
	if encoded := os.Getenv(paramsEnv); encoded != "" {
		raw, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			fmt.Fprintf(os.Stderr, "optimizer: bad worker params encoding: %v\n", err)
			os.Exit(2)
		}
		params = raw
	}

	fn, err := lookup(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	sat, result, err := fn(k, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "optimizer: worker k=%d failed: %v\n", k, err)
		os.Exit(1)
	}

	payload := workerPayload{Sat: sat, Result: result}
	enc := json.NewEncoder(os.Stdout)
	if err := enc.Encode(payload); err != nil {
		fmt.Fprintf(os.Stderr, "optimizer: worker k=%d failed to write result: %v\n", k, err)
		os.Exit(1)
	}
	os.Exit(0)
}
