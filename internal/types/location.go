//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// LocationBucket classifies a candidate's resolved location relative to the
// desired work location. Every scored candidate belongs to exactly one bucket.
type LocationBucket string

const (
	BucketExact   LocationBucket = "exact"
	BucketNearby  LocationBucket = "nearby"
	BucketRemote  LocationBucket = "remote"
	BucketUnknown LocationBucket = "unknown"
)

// Buckets lists all buckets in display order.
func Buckets() []LocationBucket {
	return []LocationBucket{BucketExact, BucketNearby, BucketRemote, BucketUnknown}
}

// LocationResolution is the outcome of one location lookup for a candidate.
// NotFound entries are real outcomes and are cached like any other; the core
// never persists resolutions itself.
type LocationResolution struct {
	City       string    `json:"city,omitempty"`
	Region     string    `json:"region,omitempty"`
	Country    string    `json:"country,omitempty"`
	Confidence float64   `json:"confidence"`
	Source     string    `json:"source"`
	Query      string    `json:"query,omitempty"`
	ResolvedAt time.Time `json:"resolved_at"`

	NotFound      bool   `json:"not_found,omitempty"`
	FailureReason string `json:"failure_reason,omitempty"`
}

// Resolved reports whether the lookup produced a usable location.
func (r *LocationResolution) Resolved() bool {
	return r != nil && !r.NotFound && r.City != ""
}
