// Package models defines the core data structures used throughout the application.
package models

import "time"

// Commit represents a single commit fetched from GitHub. Timestamps are
// normalized to UTC at construction.
type Commit struct {
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
	Repo    string    `json:"repo"`
}

// RepoCommitCount represents the number of commits in one repository.
type RepoCommitCount struct {
	Repo  string `json:"repo"`
	Count int    `json:"count"`
}

// WeekBucket is a single point of the weekly commit-density series.
// Label is the ISO date of the Monday opening the 7-day period.
type WeekBucket struct {
	Label      string  `json:"week"`
	Percentage float64 `json:"percentage"`
}

// WordCount represents how often a term appears across commit messages.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Report is the result of one fetch-and-aggregate cycle for a user.
type Report struct {
	Username     string            `json:"username"`
	TotalCommits int               `json:"total_commits"`
	Counts       []RepoCommitCount `json:"counts"`
	Timeline     []WeekBucket      `json:"timeline"`
	Words        []WordCount       `json:"words"`
	FailedRepos  []string          `json:"failed_repos,omitempty"`
}
