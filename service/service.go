// Package service orchestrates the fetch-filter-aggregate pipeline for
// one user. Each run is stateless: nothing is shared between invocations.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"commitscope/github"
	"commitscope/logger"
	"commitscope/models"
	"commitscope/stats"

	"go.uber.org/zap"
)

// GitHubClientInterface abstracts the GitHub client operations needed by
// the pipeline (for testability)
type GitHubClientInterface interface {
	ListRepositories(ctx context.Context, username string) ([]string, error)
	ListCommits(ctx context.Context, username, repo string) ([]github.CommitResponse, error)
}

// Pipeline errors. Each empty state is distinct so callers can tell
// "nothing there" from "something failed upstream".
var (
	ErrNoRepositories  = errors.New("no repositories found")
	ErrNoCommits       = errors.New("no commits found")
	ErrNoRecentCommits = errors.New("no commit data in the past year")
)

// maxCloudWords caps how many terms feed the word cloud.
const maxCloudWords = 60

// Service runs the commit aggregation pipeline
type Service struct {
	client GitHubClientInterface
	now    func() time.Time
}

// New creates a new service instance
func New(client GitHubClientInterface) *Service {
	return &Service{
		client: client,
		now:    time.Now,
	}
}

// Run fetches the user's repositories and commits, filters to the
// trailing year and aggregates the result into a Report.
//
// A failed commit fetch for one repository does not abort the run: the
// pipeline proceeds with whatever was fetched and records the failed
// repository names in the Report.
func (s *Service) Run(ctx context.Context, username string) (*models.Report, error) {
	logger.Info("Fetching commit messages", zap.String("username", username))

	repos, err := s.client.ListRepositories(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repositories for %s: %w", username, err)
	}
	if len(repos) == 0 {
		return nil, fmt.Errorf("%w: user %s", ErrNoRepositories, username)
	}

	var all []models.Commit
	var failed []string
	for _, repo := range repos {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
		}

		commits, err := s.client.ListCommits(ctx, username, repo)
		if err != nil {
			logger.Warn("Commit fetch failed, continuing with partial data",
				zap.String("username", username),
				zap.String("repo", repo),
				zap.Error(err))
			failed = append(failed, repo)
			continue
		}

		for _, c := range commits {
			all = append(all, models.Commit{
				Message: c.Commit.Message,
				Time:    c.Commit.Author.Date.UTC(),
				Repo:    repo,
			})
		}
	}

	if len(all) == 0 {
		return nil, fmt.Errorf("%w: user %s", ErrNoCommits, username)
	}

	now := s.now()
	recent := stats.FilterSince(all, now)
	if len(recent) == 0 {
		return nil, fmt.Errorf("%w: user %s", ErrNoRecentCommits, username)
	}

	logger.Info("Aggregating commits",
		zap.String("username", username),
		zap.Int("fetched", len(all)),
		zap.Int("in_window", len(recent)),
		zap.Int("failed_repos", len(failed)))

	return &models.Report{
		Username:     username,
		TotalCommits: len(recent),
		Counts:       stats.SortedCounts(stats.CountByRepository(recent)),
		Timeline:     stats.WeeklyDensity(recent, now),
		Words:        stats.WordFrequencies(recent, maxCloudWords),
		FailedRepos:  failed,
	}, nil
}
