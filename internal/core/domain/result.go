package domain

import (
	"slices"
	"time"
)

// ScanStats holds counters collected during a scan.
type ScanStats struct {
	// Files is the number of non-excluded regular files enumerated under the root.
	Files int `json:"files"`
	// Clean is the number of files whose digest matched the manifest.
	Clean int `json:"clean"`
	// Unreadable is the number of files that could not be hashed.
	Unreadable int `json:"unreadable"`
	// ManifestEntries is the number of entries in the baseline.
	ManifestEntries int `json:"manifest_entries"`
}

// ScanResult is the classified outcome of one scan.
// Modified, Missing and Unknown are disjoint and sorted ascending.
type ScanResult struct {
	Session    SessionID `json:"session"`
	Source     Source    `json:"source"`
	Version    string    `json:"version,omitempty"`
	Root       string    `json:"root"`
	Algorithm  Algorithm `json:"algorithm"`
	Modified   []string  `json:"modified"`
	Missing    []string  `json:"missing"`
	Unknown    []string  `json:"unknown"`
	Stats      ScanStats `json:"stats"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Normalize sorts the classified sequences and replaces nil sequences with empty ones.
func (r *ScanResult) Normalize() {
	r.Modified = sortedOrEmpty(r.Modified)
	r.Missing = sortedOrEmpty(r.Missing)
	r.Unknown = sortedOrEmpty(r.Unknown)
}

// Clean reports whether the scan found nothing modified, missing or unknown.
func (r *ScanResult) Clean() bool {
	return r.Issues() == 0
}

// Issues returns the total number of classified paths.
func (r *ScanResult) Issues() int {
	return len(r.Modified) + len(r.Missing) + len(r.Unknown)
}

// Duration returns how long the scan took.
func (r *ScanResult) Duration() time.Duration {
	if r.FinishedAt.IsZero() || r.StartedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

func sortedOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	slices.Sort(s)
	return s
}
