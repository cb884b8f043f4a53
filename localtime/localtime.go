// Package localtime renders timestamps the way Vietnamese users read them:
// Indochina time, "15:04:05 2/1/2006".
package localtime

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Layout mirrors the vi-VN locale date-time form.
const Layout = "15:04:05 2/1/2006"

// Zone is Asia/Ho_Chi_Minh. Vietnam has no daylight saving, so a fixed UTC+7
// zone stands in when the tz database is unavailable.
var Zone = loadZone()

func loadZone() *time.Location {
	if loc, err := time.LoadLocation("Asia/Ho_Chi_Minh"); err == nil {
		return loc
	}
	return time.FixedZone("ICT", 7*60*60)
}

// Stamper produces localized timestamps from a clock.
type Stamper struct {
	clock clockwork.Clock
}

// NewStamper returns a Stamper reading from clock. A nil clock means real
// time.
func NewStamper(clock clockwork.Clock) *Stamper {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Stamper{clock: clock}
}

// Now returns the current instant in Zone.
func (s *Stamper) Now() time.Time {
	return s.clock.Now().In(Zone)
}

// Stamp returns the current time formatted with Layout.
func (s *Stamper) Stamp() string {
	return Format(s.clock.Now())
}

// ISO returns the current UTC time in RFC 3339 with milliseconds.
func (s *Stamper) ISO() string {
	return s.clock.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// Format renders t in Zone with Layout.
func Format(t time.Time) string {
	return t.In(Zone).Format(Layout)
}
