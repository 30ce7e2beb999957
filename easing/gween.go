package easing

import (
	"sort"

	"github.com/tanema/gween/ease"
)

// FromGween adapts a gween easing function to a normalized Func by
// evaluating it with begin 0, change 1 and duration 1. gween works in
// float32, so results carry float32 precision.
func FromGween(fn ease.TweenFunc) Func {
	return func(t float64) float64 {
		return float64(fn(float32(t), 0, 1, 1))
	}
}

// registry holds every named curve understood by Lookup and Parse.
var registry = map[string]Func{
	"linear":  Linear,
	"ease":    Ease,
	"quad":    Quad,
	"cubic":   Cubic,
	"sin":     Sin,
	"circle":  Circle,
	"exp":     Exp,
	"bounce":  Bounce,
	"elastic": Elastic(1),
	"back":    Back(DefaultBackOvershoot),

	"inQuad":       FromGween(ease.InQuad),
	"outQuad":      FromGween(ease.OutQuad),
	"inOutQuad":    FromGween(ease.InOutQuad),
	"outInQuad":    FromGween(ease.OutInQuad),
	"inCubic":      FromGween(ease.InCubic),
	"outCubic":     FromGween(ease.OutCubic),
	"inOutCubic":   FromGween(ease.InOutCubic),
	"outInCubic":   FromGween(ease.OutInCubic),
	"inQuart":      FromGween(ease.InQuart),
	"outQuart":     FromGween(ease.OutQuart),
	"inOutQuart":   FromGween(ease.InOutQuart),
	"outInQuart":   FromGween(ease.OutInQuart),
	"inQuint":      FromGween(ease.InQuint),
	"outQuint":     FromGween(ease.OutQuint),
	"inOutQuint":   FromGween(ease.InOutQuint),
	"outInQuint":   FromGween(ease.OutInQuint),
	"inSine":       FromGween(ease.InSine),
	"outSine":      FromGween(ease.OutSine),
	"inOutSine":    FromGween(ease.InOutSine),
	"outInSine":    FromGween(ease.OutInSine),
	"inExpo":       FromGween(ease.InExpo),
	"outExpo":      FromGween(ease.OutExpo),
	"inOutExpo":    FromGween(ease.InOutExpo),
	"outInExpo":    FromGween(ease.OutInExpo),
	"inCirc":       FromGween(ease.InCirc),
	"outCirc":      FromGween(ease.OutCirc),
	"inOutCirc":    FromGween(ease.InOutCirc),
	"outInCirc":    FromGween(ease.OutInCirc),
	"inElastic":    FromGween(ease.InElastic),
	"outElastic":   FromGween(ease.OutElastic),
	"inOutElastic": FromGween(ease.InOutElastic),
	"outInElastic": FromGween(ease.OutInElastic),
	"inBack":       FromGween(ease.InBack),
	"outBack":      FromGween(ease.OutBack),
	"inOutBack":    FromGween(ease.InOutBack),
	"outInBack":    FromGween(ease.OutInBack),
	"inBounce":     FromGween(ease.InBounce),
	"outBounce":    FromGween(ease.OutBounce),
	"inOutBounce":  FromGween(ease.InOutBounce),
	"outInBounce":  FromGween(ease.OutInBounce),
}

// Lookup returns the named curve.
func Lookup(name string) (Func, bool) {
	fn, ok := registry[name]
	return fn, ok
}

// Names returns every registered curve name in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
