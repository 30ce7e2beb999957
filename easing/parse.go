package easing

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse builds a curve from an expression such as "outCubic",
// "inOut(sin)", "steps(4, true)" or "cubicBezier(0.4, 0, 0.2, 1)".
//
// Registered names (see [Names]) stand alone. The modifiers in, out and inOut
// take one nested expression. poly, elastic and back take one number; steps
// takes a count and an optional round flag; bezier and cubicBezier take four
// numbers.
func Parse(expr string) (Func, error) {
	fn, rest, err := parseExpr(strings.TrimSpace(expr))
	if err != nil {
		return nil, fmt.Errorf("parse easing %q: %w", expr, err)
	}
	if rest != "" {
		return nil, fmt.Errorf("parse easing %q: unexpected %q", expr, rest)
	}
	return fn, nil
}

func parseExpr(s string) (Func, string, error) {
	name, rest := splitIdent(s)
	if name == "" {
		return nil, s, fmt.Errorf("expected curve name at %q", s)
	}
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, "(") {
		fn, ok := Lookup(name)
		if !ok {
			return nil, rest, fmt.Errorf("unknown curve %q", name)
		}
		return fn, rest, nil
	}
	rest = strings.TrimSpace(rest[1:])

	switch name {
	case "in", "out", "inOut":
		inner, after, err := parseExpr(rest)
		if err != nil {
			return nil, after, err
		}
		after, err = expect(after, ")")
		if err != nil {
			return nil, after, err
		}
		switch name {
		case "in":
			return In(inner), after, nil
		case "out":
			return Out(inner), after, nil
		default:
			return InOut(inner), after, nil
		}
	}

	args, after, err := parseArgs(rest)
	if err != nil {
		return nil, after, err
	}
	switch name {
	case "poly", "elastic", "back":
		nums, err := numbers(name, args, 1)
		if err != nil {
			return nil, after, err
		}
		switch name {
		case "poly":
			return Poly(nums[0]), after, nil
		case "elastic":
			return Elastic(nums[0]), after, nil
		default:
			return Back(nums[0]), after, nil
		}
	case "steps":
		if len(args) < 1 || len(args) > 2 {
			return nil, after, fmt.Errorf("steps takes 1 or 2 arguments, got %d", len(args))
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, after, fmt.Errorf("steps count: %w", err)
		}
		round := false
		if len(args) == 2 {
			round, err = strconv.ParseBool(args[1])
			if err != nil {
				return nil, after, fmt.Errorf("steps round flag: %w", err)
			}
		}
		return Steps(n, round), after, nil
	case "bezier", "cubicBezier":
		nums, err := numbers(name, args, 4)
		if err != nil {
			return nil, after, err
		}
		if name == "bezier" {
			return BezierFunc(nums[0], nums[1], nums[2], nums[3]), after, nil
		}
		return CubicBezier(nums[0], nums[1], nums[2], nums[3]), after, nil
	}
	return nil, after, fmt.Errorf("unknown curve constructor %q", name)
}

func splitIdent(s string) (string, string) {
	i := 0
	for i < len(s) {
		c := s[i]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' && i > 0 {
			i++
			continue
		}
		break
	}
	return s[:i], s[i:]
}

// parseArgs reads a comma separated list of literals up to the closing paren.
func parseArgs(s string) ([]string, string, error) {
	end := strings.IndexByte(s, ')')
	if end < 0 {
		return nil, s, fmt.Errorf("missing ')'")
	}
	body := strings.TrimSpace(s[:end])
	rest := strings.TrimSpace(s[end+1:])
	if body == "" {
		return nil, rest, nil
	}
	parts := strings.Split(body, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, rest, nil
}

func numbers(name string, args []string, want int) ([]float64, error) {
	if len(args) != want {
		return nil, fmt.Errorf("%s takes %d arguments, got %d", name, want, len(args))
	}
	out := make([]float64, want)
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("%s argument %d: %w", name, i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

func expect(s, tok string) (string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, tok) {
		return s, fmt.Errorf("expected %q at %q", tok, s)
	}
	return strings.TrimSpace(s[len(tok):]), nil
}
