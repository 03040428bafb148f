package farefinder

import "time"

// Clock reports the current calendar date in a fixed location.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

func NewClock(loc *time.Location) *Clock {
	if loc == nil {
		loc = time.Local
	}
	return &Clock{
		loc: loc,
		now: time.Now,
	}
}

func (c *Clock) Today() time.Time {
	return DateOnly(c.now().In(c.loc))
}
