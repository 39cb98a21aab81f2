// Package stats implements the commit aggregation core: the trailing-year
// filter, per-repository commit counts and the 52-week density series.
// It performs no I/O and holds no state across calls.
package stats

import (
	"sort"
	"time"

	"commitscope/models"
)

const (
	// WindowDays is the trailing filter window. It is kept at 365 days
	// rather than 52*7: commits in the ~1 day of slack older than the
	// 52-week bucket range stay in the repository counts but do not
	// appear in the density series.
	WindowDays = 365

	// WeekCount is the fixed length of the density series.
	WeekCount = 52
)

// FilterSince returns the commits whose timestamp falls within the
// trailing WindowDays window ending at now. The lower bound is inclusive
// and input order is preserved.
func FilterSince(commits []models.Commit, now time.Time) []models.Commit {
	cutoff := now.AddDate(0, 0, -WindowDays)
	var recent []models.Commit
	for _, c := range commits {
		if !c.Time.Before(cutoff) {
			recent = append(recent, c)
		}
	}
	return recent
}

// CountByRepository groups commits by repository name and counts them.
// The sum of all counts equals len(commits).
func CountByRepository(commits []models.Commit) map[string]int {
	counts := make(map[string]int)
	for _, c := range commits {
		counts[c.Repo]++
	}
	return counts
}

// SortedCounts flattens a count map into a slice ordered by descending
// count, then ascending repository name.
func SortedCounts(counts map[string]int) []models.RepoCommitCount {
	sorted := make([]models.RepoCommitCount, 0, len(counts))
	for repo, count := range counts {
		sorted = append(sorted, models.RepoCommitCount{Repo: repo, Count: count})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].Repo < sorted[j].Repo
	})
	return sorted
}

// weekStart returns the Monday 00:00 UTC opening the 7-day period that
// contains t. Both bucket assignment and canonical week generation go
// through this single function so the two can never disagree.
func weekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

// WeeklyDensity buckets commits into the 52 consecutive week-periods
// ending at now (current partial week included) and converts counts to
// percentages of the in-window total. The result always has exactly
// WeekCount entries in chronological order, zero-filled for weeks with
// no commits.
//
// Callers must branch on emptiness before calling; commits is expected
// to be non-empty. Commits older than the 52-week range contribute
// nothing, and if no commit lands inside it the series is all zeros.
func WeeklyDensity(commits []models.Commit, now time.Time) []models.WeekBucket {
	sorted := make([]models.Commit, len(commits))
	copy(sorted, commits)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})

	perWeek := make(map[time.Time]int)
	for _, c := range sorted {
		perWeek[weekStart(c.Time)]++
	}

	last := weekStart(now)
	weeks := make([]time.Time, WeekCount)
	total := 0
	for i := range weeks {
		w := last.AddDate(0, 0, -7*(WeekCount-1-i))
		weeks[i] = w
		total += perWeek[w]
	}

	series := make([]models.WeekBucket, 0, WeekCount)
	for _, w := range weeks {
		pct := 0.0
		if total > 0 {
			pct = float64(perWeek[w]) / float64(total) * 100
		}
		series = append(series, models.WeekBucket{
			Label:      w.Format("2006-01-02"),
			Percentage: pct,
		})
	}
	return series
}
