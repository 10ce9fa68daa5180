// Command naqc is the neutral-atom compiler's CLI, the composition root
// that wires internal/config, internal/store, na/archio, na/pipeline,
// na/codegen, na/smt and na/optimizer together, the way kegliz/qplay's
// cmd/cli drove qc/builder+qc/simulator for its own demo circuits.
package main

import "github.com/kegliz/naqc/na/optimizer"

func main() {
	// Must run before cobra parses args: a worker re-exec carries a
	// hidden flag this intercepts and never returns from.
	optimizer.RunWorkerIfRequested()
	Execute()
}
