package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/haldane/wt/internal/engine"
	"github.com/haldane/wt/internal/git"
)

var initCmd = &cobra.Command{
	Use:   "init [url]",
	Short: "Create a container in the current directory",
	Long: `Initialize the current directory as a wt container: create the
.wt control directory, clone the repository (or initialize an empty one
when no URL is given), and allocate the worktree slots.`,
	Args: cobra.MaximumNArgs(1),
	Example: `  wt init git@github.com:acme/api.git
  wt init --slots 5 git@github.com:acme/api.git`,
	RunE: runInit,
}

var initSlots int

func init() {
	initCmd.Flags().IntVar(&initSlots, "slots", 3, "number of worktree slots")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	url := ""
	if len(args) == 1 {
		url = args[0]
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	eng, err := engine.Init(cwd, url, initSlots, git.NewCLI())
	if err != nil {
		return err
	}

	success := color.New(color.FgGreen, color.Bold)
	success.Printf("  Initialized container\n")
	fmt.Printf("  Slots: %d\n", eng.Config.SlotCount)
	if url != "" {
		fmt.Printf("  Repo:  %s\n", color.CyanString(url))
	}
	fmt.Printf("\n  wt checkout <branch> to get started\n")
	return nil
}
