package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"commitscope/github"
	"commitscope/models"
	"commitscope/stats"
)

var fixedNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

// MockGitHubClient is a mock implementation of the GitHub client
type MockGitHubClient struct {
	mock.Mock
}

func (m *MockGitHubClient) ListRepositories(ctx context.Context, username string) ([]string, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockGitHubClient) ListCommits(ctx context.Context, username, repo string) ([]github.CommitResponse, error) {
	args := m.Called(ctx, username, repo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]github.CommitResponse), args.Error(1)
}

func commitResponse(msg string, date time.Time) github.CommitResponse {
	var cr github.CommitResponse
	cr.SHA = "abc123"
	cr.Commit.Message = msg
	cr.Commit.Author.Name = "Test Author"
	cr.Commit.Author.Date = date
	return cr
}

func newTestService(client *MockGitHubClient) *Service {
	svc := New(client)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestRun(t *testing.T) {
	testCases := []struct {
		name        string
		setupMocks  func(*MockGitHubClient)
		checkReport func(*testing.T, *models.Report)
		expectedErr error
	}{
		{
			name: "successful run",
			setupMocks: func(m *MockGitHubClient) {
				m.On("ListRepositories", mock.Anything, "test-user").
					Return([]string{"alpha", "beta"}, nil)
				m.On("ListCommits", mock.Anything, "test-user", "alpha").
					Return([]github.CommitResponse{
						commitResponse("Fix parser bug", fixedNow.AddDate(0, 0, -10)),
						commitResponse("Add tokenizer", fixedNow.AddDate(0, 0, -40)),
					}, nil)
				m.On("ListCommits", mock.Anything, "test-user", "beta").
					Return([]github.CommitResponse{
						commitResponse("Initial layout", fixedNow.AddDate(0, 0, -5)),
					}, nil)
			},
			checkReport: func(t *testing.T, report *models.Report) {
				assert.Equal(t, "test-user", report.Username)
				assert.Equal(t, 3, report.TotalCommits)
				assert.Equal(t, []models.RepoCommitCount{
					{Repo: "alpha", Count: 2},
					{Repo: "beta", Count: 1},
				}, report.Counts)
				assert.Len(t, report.Timeline, stats.WeekCount)
				assert.NotEmpty(t, report.Words)
				assert.Empty(t, report.FailedRepos)
			},
		},
		{
			name: "repository listing fails",
			setupMocks: func(m *MockGitHubClient) {
				m.On("ListRepositories", mock.Anything, "test-user").
					Return(nil, assert.AnError)
			},
			expectedErr: assert.AnError,
		},
		{
			name: "no repositories",
			setupMocks: func(m *MockGitHubClient) {
				m.On("ListRepositories", mock.Anything, "test-user").
					Return([]string{}, nil)
			},
			expectedErr: ErrNoRepositories,
		},
		{
			name: "partial fetch failure proceeds with partial data",
			setupMocks: func(m *MockGitHubClient) {
				m.On("ListRepositories", mock.Anything, "test-user").
					Return([]string{"alpha", "beta"}, nil)
				m.On("ListCommits", mock.Anything, "test-user", "alpha").
					Return([]github.CommitResponse{
						commitResponse("Fix parser bug", fixedNow.AddDate(0, 0, -10)),
					}, nil)
				m.On("ListCommits", mock.Anything, "test-user", "beta").
					Return(nil, assert.AnError)
			},
			checkReport: func(t *testing.T, report *models.Report) {
				assert.Equal(t, 1, report.TotalCommits)
				assert.Equal(t, []models.RepoCommitCount{{Repo: "alpha", Count: 1}}, report.Counts)
				assert.Equal(t, []string{"beta"}, report.FailedRepos)
			},
		},
		{
			name: "all fetches fail",
			setupMocks: func(m *MockGitHubClient) {
				m.On("ListRepositories", mock.Anything, "test-user").
					Return([]string{"alpha"}, nil)
				m.On("ListCommits", mock.Anything, "test-user", "alpha").
					Return(nil, assert.AnError)
			},
			expectedErr: ErrNoCommits,
		},
		{
			name: "no commits at all",
			setupMocks: func(m *MockGitHubClient) {
				m.On("ListRepositories", mock.Anything, "test-user").
					Return([]string{"alpha"}, nil)
				m.On("ListCommits", mock.Anything, "test-user", "alpha").
					Return([]github.CommitResponse{}, nil)
			},
			expectedErr: ErrNoCommits,
		},
		{
			name: "no commits in the past year",
			setupMocks: func(m *MockGitHubClient) {
				m.On("ListRepositories", mock.Anything, "test-user").
					Return([]string{"alpha"}, nil)
				m.On("ListCommits", mock.Anything, "test-user", "alpha").
					Return([]github.CommitResponse{
						commitResponse("Ancient history", fixedNow.AddDate(0, 0, -400)),
					}, nil)
			},
			expectedErr: ErrNoRecentCommits,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockClient := &MockGitHubClient{}
			tc.setupMocks(mockClient)

			svc := newTestService(mockClient)

			report, err := svc.Run(context.Background(), "test-user")

			if tc.expectedErr != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Nil(t, report)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, report)
				tc.checkReport(t, report)
			}

			mockClient.AssertExpectations(t)
		})
	}
}

func TestRunIdempotent(t *testing.T) {
	setup := func() *Service {
		mockClient := &MockGitHubClient{}
		mockClient.On("ListRepositories", mock.Anything, "test-user").
			Return([]string{"alpha"}, nil)
		mockClient.On("ListCommits", mock.Anything, "test-user", "alpha").
			Return([]github.CommitResponse{
				commitResponse("Fix parser bug", fixedNow.AddDate(0, 0, -10)),
				commitResponse("Add tokenizer", fixedNow.AddDate(0, 0, -40)),
			}, nil)
		return newTestService(mockClient)
	}

	first, err := setup().Run(context.Background(), "test-user")
	assert.NoError(t, err)
	second, err := setup().Run(context.Background(), "test-user")
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRunCancelledContext(t *testing.T) {
	mockClient := &MockGitHubClient{}
	mockClient.On("ListRepositories", mock.Anything, "test-user").
		Return([]string{"alpha"}, nil)

	svc := newTestService(mockClient)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := svc.Run(ctx, "test-user")
	assert.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, report)
}
