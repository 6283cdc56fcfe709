package clock

import (
	"fmt"
	"sync"
	"time"
	_ "time/tzdata"

	xutil "SignalLog/pkg/util"
)

// DefaultZone is used when no timezone is configured.
const DefaultZone = "Asia/Kolkata"

// Zone formats the current time in a fixed location.
type Zone struct {
	loc *time.Location
	now func() time.Time
}

// NewZone loads the named timezone. An empty name selects DefaultZone.
func NewZone(name string) (*Zone, error) {
	if name == "" {
		name = DefaultZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return &Zone{loc: loc, now: time.Now}, nil
}

// Now returns the current time as YYYY-MM-DD HH:MM:SS in the zone.
func (z *Zone) Now() string {
	return xutil.FormatTimestamp(z.now(), z.loc)
}

// Location returns the configured location.
func (z *Zone) Location() *time.Location { return z.loc }

// Fixed replays a scripted sequence of timestamps; the last one repeats.
type Fixed struct {
	mu     sync.Mutex
	stamps []string
	next   int
}

// NewFixed returns a clock that yields stamps in order.
func NewFixed(stamps ...string) *Fixed {
	if len(stamps) == 0 {
		stamps = []string{"1970-01-01 00:00:00"}
	}
	return &Fixed{stamps: stamps}
}

func (f *Fixed) Now() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.stamps[f.next]
	if f.next < len(f.stamps)-1 {
		f.next++
	}
	return s
}
