package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/haldane/wt/internal/engine"
	"github.com/haldane/wt/internal/nav"
	"github.com/haldane/wt/internal/tui"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "wt",
	Short: "Fixed-pool git worktree manager",
	Long: `wt manages a fixed pool of git worktree slots in a container
directory. Checking out a branch assigns it to a slot, evicting the
least-recently-used unpinned slot when the pool is full; uncommitted
work is stashed on eviction and restored when the branch returns.

Run without arguments to pick a slot interactively.

Shell integration (required for automatic cd):
  eval "$(wt shell-init zsh)"    # add to .zshrc
  eval "$(wt shell-init bash)"   # add to .bashrc
  wt shell-init fish | source    # add to config.fish`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wt %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runRoot(cmd *cobra.Command, args []string) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stderr.Fd()) {
		return cmd.Help()
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	eng, err := engine.Open(cwd)
	if err != nil {
		return err
	}

	infos, err := eng.Slots(cwd)
	if err != nil {
		return err
	}
	var occupied []engine.SlotInfo
	for _, info := range infos {
		if info.Branch != "" {
			occupied = append(occupied, info)
		}
	}
	if len(occupied) == 0 {
		return engine.ErrNoSlotsInUse
	}

	selected, err := tui.RunSlotSelector(occupied)
	if err != nil {
		return err
	}
	if selected == nil {
		return fmt.Errorf("cancelled")
	}

	return nav.Write(eng.Paths.SlotPath(selected.Name))
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "wt: %v\n", err)
		os.Exit(1)
	}
}
