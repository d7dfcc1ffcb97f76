// Package geo classifies resolved candidate locations against a desired work
// location and partitions scored candidates into ordered buckets.
package geo

import (
	"strings"

	"github.com/jonathan/referral-matcher/internal/refdata"
	"github.com/jonathan/referral-matcher/internal/types"
)

// Classify assigns the location bucket for one resolution. Rules apply in
// order, first match wins:
//
//  1. exact: resolved city equals the desired city or one of the acceptable
//     cities.
//  2. nearby: resolved country equals the desired city's country, or the
//     resolved city is a declared neighbor of the desired city.
//  3. remote: a resolution exists but neither rule above applies.
//  4. unknown: no usable resolution.
func Classify(tables *refdata.Tables, desired string, acceptable []string, res *types.LocationResolution) types.LocationBucket {
	if !res.Resolved() {
		return types.BucketUnknown
	}

	city := strings.ToLower(strings.TrimSpace(res.City))
	if city == normalizeCity(desired) {
		return types.BucketExact
	}
	for _, alt := range acceptable {
		if city == normalizeCity(alt) {
			return types.BucketExact
		}
	}

	if sameCountry(tables, desired, res.Country) || tables.Neighbors(desired, res.City) {
		return types.BucketNearby
	}
	return types.BucketRemote
}

// sameCountry reports whether the resolved country matches the desired
// location's country. The desired location is looked up in the gazetteer;
// when it names no known city it is treated as a country name itself.
func sameCountry(tables *refdata.Tables, desired, resolvedCountry string) bool {
	if resolvedCountry == "" {
		return false
	}
	resolved := tables.CanonicalCountry(resolvedCountry)
	if place, ok := tables.FindPlace(desired); ok {
		return strings.EqualFold(place.Country, resolved)
	}
	return strings.EqualFold(tables.CanonicalCountry(desired), resolved)
}

// Group partitions scored candidates into buckets, preserving the incoming
// (score-descending) order within each bucket. Every candidate lands in
// exactly one bucket; the union of the buckets is the full input.
func Group(candidates []types.ScoredCandidate) map[types.LocationBucket][]types.ScoredCandidate {
	buckets := make(map[types.LocationBucket][]types.ScoredCandidate, len(types.Buckets()))
	for _, c := range candidates {
		bucket := c.Bucket
		if bucket == "" {
			bucket = types.BucketUnknown
		}
		buckets[bucket] = append(buckets[bucket], c)
	}
	return buckets
}

func normalizeCity(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
