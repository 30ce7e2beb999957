package motion

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestAnimationErrorUnwrap(t *testing.T) {
	boom := errors.New("boom")
	err := &AnimationError{Op: "controller.tick", ControllerID: "abc", Err: boom}

	if !errors.Is(err, boom) {
		t.Error("errors.Is did not find the wrapped error")
	}
	if got := err.Error(); got != "controller.tick [abc]: boom" {
		t.Errorf("Error() = %q", got)
	}
}

func TestPanicErrorUnwrap(t *testing.T) {
	boom := errors.New("boom")
	if !errors.Is(&PanicError{Value: boom}, boom) {
		t.Error("panic with error value should unwrap to it")
	}
	if (&PanicError{Value: "text"}).Unwrap() != nil {
		t.Error("panic with non-error value should unwrap to nil")
	}
	if got := (&PanicError{Op: "op", Value: 3}).Error(); got != "panic in op: 3" {
		t.Errorf("Error() = %q", got)
	}
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Out: &buf}

	h.HandleError(&AnimationError{Op: "controller.tick", Err: errors.New("boom")})
	h.HandlePanic(&PanicError{Op: "controller.tick", Value: "bad", StackTrace: "trace"})

	out := buf.String()
	if !strings.Contains(out, "[motion error] controller.tick: boom") {
		t.Errorf("missing error line in %q", out)
	}
	if !strings.Contains(out, "[motion panic] controller.tick: bad") {
		t.Errorf("missing panic line in %q", out)
	}
	if strings.Contains(out, "trace") {
		t.Errorf("stack trace printed without Verbose: %q", out)
	}
}

func TestLogHandlerVerbose(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Verbose: true, Out: &buf}

	h.HandleError(&AnimationError{Op: "op", ControllerID: "id-1", Err: errors.New("boom"), Timestamp: time.Unix(0, 0)})
	h.HandlePanic(&PanicError{Value: "bad", StackTrace: "trace"})

	out := buf.String()
	if !strings.Contains(out, "controller=id-1") {
		t.Errorf("missing controller id in %q", out)
	}
	if !strings.Contains(out, "Stack trace:\ntrace") {
		t.Errorf("missing stack trace in %q", out)
	}
}

func TestSetHandler(t *testing.T) {
	custom := &LogHandler{Verbose: true}
	SetHandler(custom)
	defer SetHandler(nil)

	if defaultHandler() != custom {
		t.Error("SetHandler did not install the handler")
	}
	SetHandler(nil)
	if _, ok := defaultHandler().(*LogHandler); !ok {
		t.Error("SetHandler(nil) did not restore a LogHandler")
	}
}

func TestSetHandlerConcurrentWithReads(t *testing.T) {
	defer SetHandler(nil)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				SetHandler(&LogHandler{})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if defaultHandler() == nil {
					t.Error("nil handler")
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if stack == "" {
		t.Fatal("empty stack")
	}
	if !strings.Contains(stack, ".go:") {
		t.Errorf("stack has no file positions: %q", stack)
	}
}
