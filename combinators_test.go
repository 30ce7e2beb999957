package motion

import (
	"errors"
	"testing"
	"time"
)

// recorder is a coroutine that logs every step it receives.
type recorder struct {
	name  string
	steps int
	until int
	log   *[]string
}

func (r *recorder) Step(FrameInfo) (Status, error) {
	r.steps++
	*r.log = append(*r.log, r.name)
	if r.steps >= r.until {
		return Done, nil
	}
	return Pending, nil
}

// --- Parallel ---

func TestParallelCompletesWithSlowestChild(t *testing.T) {
	a := drive(t, Wait(200*time.Millisecond), frame, 100)
	b := drive(t, Wait(400*time.Millisecond), frame, 100)

	got := drive(t, Parallel(Wait(200*time.Millisecond), Wait(400*time.Millisecond)), frame, 100)

	if got < a || got < b {
		t.Errorf("parallel done on step %d, want >= max(%d, %d)", got, a, b)
	}
	if got != 5 {
		t.Errorf("parallel done on step %d, want 5", got)
	}
}

func TestParallelDeclarationOrder(t *testing.T) {
	var log []string
	c := All(
		&recorder{name: "a", until: 1, log: &log},
		&recorder{name: "b", until: 2, log: &log},
		&recorder{name: "c", until: 2, log: &log},
	)

	drive(t, c, frame, 10)

	want := []string{"a", "b", "c", "b", "c"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("log = %v, want %v", log, want)
		}
	}
}

func TestParallelEmpty(t *testing.T) {
	if got := drive(t, Parallel(), frame, 10); got != 1 {
		t.Errorf("empty parallel done on step %d, want 1", got)
	}
}

// --- Any ---

func TestAnyCompletesWithFastestChild(t *testing.T) {
	a := drive(t, Wait(200*time.Millisecond), frame, 100)
	b := drive(t, Wait(400*time.Millisecond), frame, 100)

	got := drive(t, Any(Wait(400*time.Millisecond), Wait(200*time.Millisecond)), frame, 100)

	want := min(a, b)
	if got != want {
		t.Errorf("any done on step %d, want %d", got, want)
	}
}

func TestAnyStopsAtWinner(t *testing.T) {
	var log []string
	c := Any(
		&recorder{name: "a", until: 1, log: &log},
		&recorder{name: "b", until: 5, log: &log},
	)

	drive(t, c, frame, 10)

	if len(log) != 1 || log[0] != "a" {
		t.Errorf("log = %v, want [a]", log)
	}
}

func TestAnyEmpty(t *testing.T) {
	if got := drive(t, Any(), frame, 10); got != 1 {
		t.Errorf("empty any done on step %d, want 1", got)
	}
}

// --- Chain / Sequence / Stagger ---

func TestChainHandsOverWithinFrame(t *testing.T) {
	// 200ms then 300ms: the second wait starts on the step the first ends.
	got := drive(t, Chain(Wait(200*time.Millisecond), Wait(300*time.Millisecond)), frame, 100)
	if got != 6 {
		t.Errorf("chain done on step %d, want 6", got)
	}
}

func TestChainPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	after := false
	c := Chain(
		Do(func() error { return boom }),
		Do(func() error { after = true; return nil }),
	)

	_, err := c.Step(FrameInfo{})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
	if after {
		t.Error("chain continued after error")
	}
}

func TestSequenceTotalDuration(t *testing.T) {
	a, d, b := 200*time.Millisecond, 100*time.Millisecond, 300*time.Millisecond

	steps := drive(t, Sequence(d, Wait(a), Wait(b)), frame, 100)

	// Deltas of every step after the first one add up to the elapsed time.
	elapsed := time.Duration(steps-1) * frame
	if elapsed != a+d+b {
		t.Errorf("sequence took %v, want %v", elapsed, a+d+b)
	}
}

func TestSequenceEmpty(t *testing.T) {
	if got := drive(t, Sequence(time.Second), frame, 10); got != 1 {
		t.Errorf("empty sequence done on step %d, want 1", got)
	}
}

func TestStaggerOffsetsStarts(t *testing.T) {
	var starts []int
	step := 0
	mark := func() Coroutine {
		return Do(func() error {
			starts = append(starts, step)
			return nil
		})
	}
	c := Stagger(100*time.Millisecond, mark(), mark(), mark())

	for {
		step++
		st, err := c.Step(FrameInfo{DeltaTime: frame})
		if err != nil {
			t.Fatal(err)
		}
		if st == Done {
			break
		}
	}

	if len(starts) != 3 || starts[0] != 1 || starts[1] != 2 || starts[2] != 3 {
		t.Errorf("starts = %v, want [1 2 3]", starts)
	}
}

// --- Loop ---

func TestLoopCallsFactoryInOrder(t *testing.T) {
	var calls []int
	c := Loop(3, func(i int) Coroutine {
		calls = append(calls, i)
		return Wait(frame)
	})

	drive(t, c, frame, 100)

	if len(calls) != 3 || calls[0] != 0 || calls[1] != 1 || calls[2] != 2 {
		t.Errorf("calls = %v, want [0 1 2]", calls)
	}
}

func TestLoopZeroIterations(t *testing.T) {
	called := false
	c := Loop(0, func(int) Coroutine {
		called = true
		return nil
	})

	if got := drive(t, c, frame, 10); got != 1 {
		t.Errorf("done on step %d, want 1", got)
	}
	if called {
		t.Error("factory called for zero iterations")
	}
}

func TestForeverKeepsRunning(t *testing.T) {
	count := 0
	c := Forever(func(int) Coroutine {
		count++
		return Wait(frame)
	})

	for i := 0; i < 50; i++ {
		if st, _ := c.Step(FrameInfo{DeltaTime: frame}); st == Done {
			t.Fatal("infinite loop completed")
		}
	}
	if count < 20 {
		t.Errorf("factory called %d times, want many", count)
	}
}

func TestLoopNilFactoryPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Loop(1, nil)
}

// --- Lazy ---

func TestLazyBuiltOnceWhenCombinatorStarts(t *testing.T) {
	builds := 0
	l := Lazy(func() Coroutine {
		builds++
		return Wait(frame)
	})
	c := Chain(Wait(frame), l)

	if builds != 0 {
		t.Fatalf("built %d times before start", builds)
	}
	c.Step(FrameInfo{DeltaTime: frame})
	if builds != 1 {
		t.Fatalf("built %d times after start, want 1", builds)
	}
	drive(t, c, frame, 10)
	if builds != 1 {
		t.Errorf("built %d times, want 1", builds)
	}
}

func TestNilChildIsDone(t *testing.T) {
	if got := drive(t, Parallel(nil, Wait(frame)), frame, 10); got != 2 {
		t.Errorf("done on step %d, want 2", got)
	}
}
