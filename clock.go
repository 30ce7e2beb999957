package motion

import "time"

// Clock provides frame timestamps to a Controller. The default uses system
// time; tests inject a fake clock with WithClock to control frame deltas.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the Clock used when none is configured.
var SystemClock Clock = systemClock{}
