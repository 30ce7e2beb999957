package motion

import (
	"fmt"
	"io"
	"os"
	"time"
)

// debugOut receives debug lines. Tests swap it.
var debugOut io.Writer = os.Stderr

// debugSlowFrame is the step duration above which a frame is flagged.
const debugSlowFrame = 4 * time.Millisecond

// debugState prints a state transition. Only called when Config.Debug is set.
func (c *Controller[T]) debugState(from, to ControllerState) {
	_, _ = fmt.Fprintf(debugOut, "[motion] controller %s: %v -> %v\n", c.id, from, to)
}

// debugFrame prints frame timing. Only called when Config.Debug is set.
func (c *Controller[T]) debugFrame(dt, stepTime time.Duration, st Status) {
	_, _ = fmt.Fprintf(debugOut, "[motion] controller %s: dt: %v | step: %v | %v\n",
		c.id, dt, stepTime, st)
	if stepTime > debugSlowFrame {
		_, _ = fmt.Fprintf(debugOut, "[motion] warning: step took %v (threshold %v)\n",
			stepTime, debugSlowFrame)
	}
}
