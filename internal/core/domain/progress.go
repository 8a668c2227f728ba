package domain

import "time"

const (
	// DefaultProgressTTL is how long a progress record stays readable after its last write.
	DefaultProgressTTL = 60 * time.Second

	// ProgressInterval is the number of processed files between progress writes.
	ProgressInterval = 10

	// ProgressComplete is the percentage reported when a scan has processed every file.
	ProgressComplete = 100.0
)

// ProgressRecord is the last reported completion percentage of a scan session.
type ProgressRecord struct {
	Session   SessionID `json:"session"`
	Percent   float64   `json:"percent"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the record is no longer readable at now.
func (r ProgressRecord) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// Percent returns processed/total as a percentage in [0, 100].
// A scan with no files is complete.
func Percent(processed, total int) float64 {
	if total <= 0 {
		return ProgressComplete
	}
	p := float64(processed) * 100 / float64(total)
	switch {
	case p < 0:
		return 0
	case p > ProgressComplete:
		return ProgressComplete
	}
	return p
}
