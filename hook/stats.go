package hook

import (
	"sort"
	"time"
)

const (
	// DefaultLogLimit is how many entries a hook keeps when nothing else is configured
	DefaultLogLimit = 50

	// DefaultRecentLimit and MaxRecentLimit bound the cross-hook feed
	DefaultRecentLimit = 20
	MaxRecentLimit     = 100

	// StatsWindow is the trailing window counted by Stats.HitsLast24h
	StatsWindow = 24 * time.Hour
)

// Stats aggregates counters across every hook in a registry
type Stats struct {
	TotalWebhooks int        `json:"totalWebhooks"`
	TotalHits     int64      `json:"totalHits"`
	LastHitAt     *time.Time `json:"lastHitAt"`
	LastCreatedAt *time.Time `json:"lastCreatedAt"`
	HitsLast24h   int64      `json:"hitsLast24h"`
}

// ClampRecentLimit maps a requested feed size onto [1, MaxRecentLimit]
func ClampRecentLimit(limit int) int {
	if limit <= 0 {
		return DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		return MaxRecentLimit
	}
	return limit
}

// ComputeStats aggregates hooks in memory. The 24h count only sees retained log entries.
func ComputeStats(hooks []Hook, now time.Time) Stats {
	var s Stats
	since := now.Add(-StatsWindow)

	for _, h := range hooks {
		s.TotalWebhooks++
		s.TotalHits += h.Hits

		if h.LastHit != nil && (s.LastHitAt == nil || h.LastHit.After(*s.LastHitAt)) {
			t := *h.LastHit
			s.LastHitAt = &t
		}
		if s.LastCreatedAt == nil || h.CreatedAt.After(*s.LastCreatedAt) {
			t := h.CreatedAt
			s.LastCreatedAt = &t
		}
		for _, e := range h.Logs {
			if !e.Timestamp.Before(since) {
				s.HitsLast24h++
			}
		}
	}

	return s
}

// RecentEntries flattens the logs of hooks, newest first, keeping at most limit entries
func RecentEntries(hooks []Hook, limit int) []RecentEntry {
	limit = ClampRecentLimit(limit)

	var all []RecentEntry
	for _, h := range hooks {
		for _, e := range h.Logs {
			all = append(all, RecentEntry{Slug: h.Slug, Entry: e})
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Timestamp.After(all[j].Timestamp)
	})

	if len(all) > limit {
		all = all[:limit]
	}
	if all == nil {
		all = []RecentEntry{}
	}
	return all
}

// SortSummaries orders listings newest hook first, then by slug
func SortSummaries(s []Summary) {
	sort.Slice(s, func(i, j int) bool {
		if !s[i].CreatedAt.Equal(s[j].CreatedAt) {
			return s[i].CreatedAt.After(s[j].CreatedAt)
		}
		return s[i].Slug < s[j].Slug
	})
}
