// Package biztime centralises wall-clock access. Everything is stored and
// compared in UTC; the configured location only affects scheduling.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const DefaultTimezone = "UTC"

var (
	location     *time.Location
	locationOnce sync.Once
	initErr      error
)

// Init loads the scheduling timezone once. Empty tz means UTC.
func Init(tz string) error {
	locationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		location, initErr = time.LoadLocation(tz)
	})
	return initErr
}

func Location() *time.Location {
	if location == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("biztime: failed to load default timezone: %v", err))
		}
	}
	return location
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// Clock is injected where tests need to control time.
type Clock func() time.Time

// OrDefault returns c, or NowUTC when c is nil.
func (c Clock) OrDefault() Clock {
	if c == nil {
		return NowUTC
	}
	return c
}
