package main

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/cyraxred/gitreplay/internal/core"
	"github.com/cyraxred/gitreplay/internal/gitsource"
	"github.com/cyraxred/gitreplay/internal/message"
	"github.com/cyraxred/gitreplay/internal/replay"
	"github.com/cyraxred/gitreplay/internal/report"
	"github.com/cyraxred/gitreplay/internal/stats"
)

// rootCmd replays a repository's full history and prints the aggregated
// report to stdout. It takes exactly one positional argument: the path to
// the repository, with a leading ~ expanded the way a shell would.
var rootCmd = &cobra.Command{
	Use:   "gitreplay <repository>",
	Short: "Replay a Git repository's history and report per-line authorship and conflict statistics.",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return core.NewUsageError(fmt.Sprintf("expected exactly 1 argument (repository path), got %d", len(args)))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args[0], os.Stdout, os.Stderr)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func run(repoPath string, stdout, stderr *os.File) error {
	expanded, err := homedir.Expand(repoPath)
	if err != nil {
		return err
	}

	source, err := gitsource.Open(expanded)
	if err != nil {
		return err
	}
	commits, err := source.Commits()
	if err != nil {
		return err
	}

	agg := stats.New()
	msg := message.New()
	engine := replay.New(agg, msg)
	driver := replay.NewDriver(engine, stderr)

	if err := driver.Run(source, commits); err != nil {
		return err
	}
	return report.Write(stdout, agg, msg)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information and exit.",
	Args:  cobra.MaximumNArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Version: %s\nGit:     %s\n", BinaryVersion, BinaryGitHash)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if _, ok := err.(*core.UsageError); ok {
			fmt.Fprintln(os.Stderr, err)
			fmt.Fprintln(os.Stderr, rootCmd.UsageString())
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
