package trigger

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/adhocore/gronx"
)

// Window is the single hour:minute, in a fixed UTC offset, at which the
// generation request is sent. The offset is constant; there is no DST.
type Window struct {
	Hour   int
	Minute int
	Offset *time.Location
}

// Request is the decision to fire, stamped with the instant that matched.
type Request struct {
	At time.Time
}

// IST is UTC+05:30, the offset the blog publishes on.
var IST = time.FixedZone("UTC+05:30", 5*60*60+30*60)

// DefaultWindow is 23:00 at UTC+05:30.
func DefaultWindow() Window {
	return Window{Hour: 23, Minute: 0, Offset: IST}
}

// Check reports whether now falls in the trigger minute. It is a pure
// function of now: calling it twice with the same instant gives the same
// answer, and nothing prevents two matches within one minute.
func (w Window) Check(now time.Time) (Request, bool) {
	local := now.In(w.location())
	if local.Hour() == w.Hour && local.Minute() == w.Minute {
		return Request{At: now}, true
	}
	return Request{}, false
}

// Expr returns the window as a five-field cron expression.
func (w Window) Expr() string {
	return fmt.Sprintf("%d %d * * *", w.Minute, w.Hour)
}

// Next returns the start of the first trigger minute strictly after after,
// expressed in the window's offset.
func (w Window) Next(after time.Time) (time.Time, error) {
	next, err := gronx.NextTickAfter(w.Expr(), after.In(w.location()), false)
	if err != nil {
		return time.Time{}, fmt.Errorf("next trigger for %q: %w", w.Expr(), err)
	}
	return next, nil
}

// String renders the window as "23:00 UTC+05:30".
func (w Window) String() string {
	return fmt.Sprintf("%02d:%02d %s", w.Hour, w.Minute, w.location().String())
}

func (w Window) location() *time.Location {
	if w.Offset == nil {
		return time.UTC
	}
	return w.Offset
}

// ParseOffset turns "+05:30", "-0800", "+5" or "Z" into a fixed zone named
// after the offset.
func ParseOffset(value string) (*time.Location, error) {
	v := strings.TrimSpace(value)
	if v == "" || strings.EqualFold(v, "z") || strings.EqualFold(v, "utc") {
		return time.UTC, nil
	}
	v = strings.TrimPrefix(strings.TrimPrefix(v, "UTC"), "utc")
	if v == "" {
		return nil, fmt.Errorf("offset %q is empty", value)
	}

	sign := 1
	switch v[0] {
	case '+':
		v = v[1:]
	case '-':
		sign = -1
		v = v[1:]
	default:
		return nil, fmt.Errorf("offset %q must start with + or -", value)
	}

	var hoursPart, minutesPart string
	switch {
	case strings.Contains(v, ":"):
		hoursPart, minutesPart, _ = strings.Cut(v, ":")
	case len(v) == 4:
		hoursPart, minutesPart = v[:2], v[2:]
	default:
		hoursPart, minutesPart = v, "0"
	}

	hours, err := strconv.Atoi(hoursPart)
	if err != nil || hours < 0 || hours > 14 {
		return nil, fmt.Errorf("offset %q has invalid hours", value)
	}
	minutes, err := strconv.Atoi(minutesPart)
	if err != nil || minutes < 0 || minutes > 59 {
		return nil, fmt.Errorf("offset %q has invalid minutes", value)
	}

	seconds := sign * (hours*60*60 + minutes*60)
	if seconds == 0 {
		return time.UTC, nil
	}
	name := fmt.Sprintf("UTC%s%02d:%02d", signString(sign), hours, minutes)
	return time.FixedZone(name, seconds), nil
}

func signString(sign int) string {
	if sign < 0 {
		return "-"
	}
	return "+"
}
