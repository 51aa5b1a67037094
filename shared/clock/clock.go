package clock

import (
	"time"

	"starhotel/shared/timezone"
)

// Clock supplies the current wall-clock time. Services take a Clock instead
// of calling time.Now so the late-checkout and alert rules are deterministic
// under test.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return timezone.Now()
}

// New returns a Clock backed by the application timezone.
func New() Clock {
	return systemClock{}
}

// Fixed returns a Clock frozen at the given instant.
func Fixed(t time.Time) Clock {
	return fixedClock{t: t}
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}
