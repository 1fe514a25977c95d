// Package countdown splits the time left until the wedding into display units.
package countdown

import "time"

type Remaining struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// Until returns the time from now to target in whole units. Once target
// has passed every unit is zero.
func Until(now, target time.Time) Remaining {
	d := target.Sub(now)
	if d <= 0 {
		return Remaining{}
	}
	const day = 24 * time.Hour
	return Remaining{
		Days:    int(d / day),
		Hours:   int(d % day / time.Hour),
		Minutes: int(d % time.Hour / time.Minute),
		Seconds: int(d % time.Minute / time.Second),
	}
}

func (r Remaining) Done() bool {
	return r == Remaining{}
}
