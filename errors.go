package motion

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

// AnimationError reports an error returned by an animation.
type AnimationError struct {
	// Op is the controller operation that was running (e.g. "controller.tick").
	Op string
	// ControllerID identifies the controller that failed.
	ControllerID string
	// Err is the error returned by the coroutine.
	Err error
	// Timestamp is when the error was observed.
	Timestamp time.Time
}

func (e *AnimationError) Error() string {
	if e.ControllerID != "" {
		return fmt.Sprintf("%s [%s]: %v", e.Op, e.ControllerID, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AnimationError) Unwrap() error {
	return e.Err
}

// PanicError reports a panic recovered while running an animation.
type PanicError struct {
	// Op is the controller operation that panicked.
	Op string
	// ControllerID identifies the controller that panicked.
	ControllerID string
	// Value is the value passed to panic().
	Value any
	// StackTrace is the call stack at the point of recovery.
	StackTrace string
	// Timestamp is when the panic was recovered.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// ErrorHandler receives failures from controllers.
type ErrorHandler interface {
	// HandleError is called when an animation returns an error.
	HandleError(err *AnimationError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}

var (
	// packageHandler receives failures from controllers created without
	// WithErrorHandler. Guarded by handlerMu.
	packageHandler ErrorHandler = &LogHandler{}
	handlerMu      sync.RWMutex
)

// SetHandler replaces the handler used by controllers created without
// WithErrorHandler. The initial handler is a LogHandler writing to stderr;
// pass nil to restore it. Safe for concurrent use.
func SetHandler(h ErrorHandler) {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	if h == nil {
		h = &LogHandler{}
	}
	packageHandler = h
}

func defaultHandler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return packageHandler
}

// CaptureStack returns the caller's stack as a string, one function per
// frame followed by its file and line.
func CaptureStack() string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(3, pcs[:])
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		frame, more := frames.Next()
		sb.WriteString(frame.Function)
		sb.WriteString("\n\t")
		sb.WriteString(frame.File)
		sb.WriteString(":")
		sb.WriteString(strconv.Itoa(frame.Line))
		sb.WriteString("\n")
		if !more {
			break
		}
	}
	return sb.String()
}

// --- LogHandler ---

// LogHandler is an ErrorHandler that prints failures as "[motion ...]" lines.
type LogHandler struct {
	// Verbose adds timestamps and stack traces.
	Verbose bool
	// Out receives the output. Nil means os.Stderr.
	Out io.Writer
}

func (h *LogHandler) out() io.Writer {
	if h.Out == nil {
		return os.Stderr
	}
	return h.Out
}

// HandleError logs an AnimationError.
func (h *LogHandler) HandleError(err *AnimationError) {
	if err == nil {
		return
	}
	w := h.out()
	if h.Verbose {
		_, _ = fmt.Fprintf(w, "[motion error] %s %s controller=%s: %v\n",
			err.Timestamp.Format(time.RFC3339Nano), err.Op, err.ControllerID, err.Err)
		return
	}
	_, _ = fmt.Fprintf(w, "[motion error] %s: %v\n", err.Op, err.Err)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	w := h.out()
	if err.Op != "" {
		_, _ = fmt.Fprintf(w, "[motion panic] %s: %v\n", err.Op, err.Value)
	} else {
		_, _ = fmt.Fprintf(w, "[motion panic] %v\n", err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		_, _ = fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
	}
}
