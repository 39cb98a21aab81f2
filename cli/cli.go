// Package cli defines the command surface: a single command taking a
// GitHub username and writing the generated reports next to it.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"commitscope/config"
	"commitscope/github"
	"commitscope/logger"
	"commitscope/render"
	"commitscope/service"

	"github.com/spf13/cobra"
)

var outputDir string

var rootCmd = &cobra.Command{
	Use:   "commitscope <username>",
	Short: "Generate a commit-message word cloud and weekly activity timeline for a GitHub user",
	Long: `commitscope fetches a GitHub user's own (non-fork) repositories,
collects their most recent commits and renders two summaries of the
trailing year of activity:

  - a word cloud of commit-message terms (SVG)
  - a 52-week commit-frequency timeline (SVG)

Per-repository commit counts are printed to stdout.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVarP(&outputDir, "out", "o", "", "output directory for generated SVG files (default from OUTPUT_DIR)")
}

// Execute runs the root command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func run(cmd *cobra.Command, args []string) error {
	username := args[0]

	cfg := config.NewConfig()
	if err := cfg.Load(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}

	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	fmt.Println("Notice: the GitHub API is rate limited; unauthenticated runs may fail after a few uses.")
	fmt.Println("Notice: only the 100 most recent commits per repository are considered.")
	fmt.Println()

	client := github.NewClient(cfg.GitHubToken, cfg.APIBaseURL, cfg.HTTPTimeout)
	svc := service.New(client)

	report, err := svc.Run(cmd.Context(), username)
	if err != nil {
		return err
	}

	fmt.Println("Commit counts per repository:")
	if err := render.WriteCounts(os.Stdout, report.Counts); err != nil {
		return err
	}
	if len(report.FailedRepos) > 0 {
		fmt.Printf("\nWarning: commit fetch failed for: %v\n", report.FailedRepos)
	}

	cloud, err := render.WordCloud(report.Words, fmt.Sprintf("Word Cloud of %s Commit Messages", username))
	if err != nil {
		return err
	}
	cloudPath := filepath.Join(cfg.OutputDir, username+"-wordcloud.svg")
	if err := os.WriteFile(cloudPath, cloud, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", cloudPath, err)
	}

	timeline, err := render.Timeline(report.Timeline, fmt.Sprintf("Weekly commit frequency for %s (%% of last year)", username))
	if err != nil {
		return err
	}
	timelinePath := filepath.Join(cfg.OutputDir, username+"-timeline.svg")
	if err := os.WriteFile(timelinePath, timeline, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", timelinePath, err)
	}

	fmt.Printf("\nWrote %s and %s (%d commits in the past year)\n", cloudPath, timelinePath, report.TotalCommits)
	return nil
}
