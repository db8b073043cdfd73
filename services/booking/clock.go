package booking

import "time"

// Clock supplies the current instant. Injected so the temporal rules
// (future-start, cancellation window, upcoming partition) are testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock.
func SystemClock() Clock { return systemClock{} }
