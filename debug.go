package lexisphere

import (
	"fmt"
	"os"
	"time"
)

// debugReportInterval is how often accumulated frame stats are flushed to
// stderr in debug mode.
const debugReportInterval = 60

// frameStats accumulates draw-pass timings over a reporting window.
// Only populated when Scene.debug is true.
type frameStats struct {
	frames int
	total  time.Duration
	worst  time.Duration
}

func (fs *frameStats) record(d time.Duration) {
	fs.frames++
	fs.total += d
	if d > fs.worst {
		fs.worst = d
	}
}

// maybeReport prints averaged draw timings to stderr once per window and
// resets the accumulator.
func (fs *frameStats) maybeReport() {
	if fs.frames < debugReportInterval {
		return
	}
	avg := fs.total / time.Duration(fs.frames)
	_, _ = fmt.Fprintf(os.Stderr,
		"[lexisphere] draw avg: %v | worst: %v | frames: %d\n",
		avg, fs.worst, fs.frames)
	*fs = frameStats{}
}

// debugCheckDisposed panics with a descriptive message when a disposed
// node is handed back to the scene. Only called on debug paths.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("lexisphere debug: %s on disposed node %q (term was %q)", op, n.ID, n.Term))
	}
}
