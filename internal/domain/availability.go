package domain

import "time"

// FreeInterval is a maximal sub-range of a query window with no active
// booking. Start and End are calendar days; the campsite can be reserved for
// any stay falling inside the interval.
type FreeInterval struct {
	Start time.Time
	End   time.Time
}
