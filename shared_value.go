package motion

import "fmt"

// SharedValue is a mutable cell that notifies listeners when it changes.
//
// A write is only treated as a change when the textual form of the new value
// (as printed by fmt.Sprint) differs from the current one. For numbers,
// strings and booleans this is plain equality. For structs and slices it
// compares field by field through their printed form, and types with a
// String method are compared by that method's output, so two values that
// print identically never notify. Floating-point negative zero prints as
// "0", so writing -0 over 0 is not a change.
type SharedValue[T any] struct {
	value   T
	initial T

	valueEvt  Event[T]
	changeEvt Event[T]
}

// NewSharedValue creates a value holding initial.
func NewSharedValue[T any](initial T) *SharedValue[T] {
	return &SharedValue[T]{value: initial, initial: initial}
}

// Value returns the current value.
func (v *SharedValue[T]) Value() T {
	return v.value
}

// InitialValue returns the value the cell was created with.
func (v *SharedValue[T]) InitialValue() T {
	return v.initial
}

// Set stores x and, if it differs from the current value, fires the value
// listeners followed by the change listeners.
func (v *SharedValue[T]) Set(x T) {
	if sameText(x, v.value) {
		return
	}
	v.value = x
	v.valueEvt.Emit(x)
	v.changeEvt.Emit(x)
}

// Clear resets the value to its initial value, notifying if that is a change.
func (v *SharedValue[T]) Clear() {
	v.Set(v.initial)
}

// OnValue registers fn to receive every new value. Value listeners run
// before change listeners.
func (v *SharedValue[T]) OnValue(fn func(T)) Handle {
	return v.valueEvt.On(fn)
}

// OnChange registers fn to receive every new value after the value listeners
// have run.
func (v *SharedValue[T]) OnChange(fn func(T)) Handle {
	return v.changeEvt.On(fn)
}

// Changed returns a channel that receives the next new value.
func (v *SharedValue[T]) Changed() <-chan T {
	return v.changeEvt.Once()
}

// String implements fmt.Stringer.
func (v *SharedValue[T]) String() string {
	return fmt.Sprint(v.value)
}

func sameText[T any](a, b T) bool {
	return text(a) == text(b)
}

// text is fmt.Sprint with negative zero printed as "0".
func text(v any) string {
	switch x := v.(type) {
	case float64:
		if x == 0 {
			return "0"
		}
	case float32:
		if x == 0 {
			return "0"
		}
	}
	return fmt.Sprint(v)
}
