package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/haldane/wt/internal/engine"
	"github.com/haldane/wt/internal/nav"
)

var checkoutCmd = &cobra.Command{
	Use:     "checkout <branch>",
	Aliases: []string{"co"},
	Short:   "Check a branch out into a slot",
	Long: `Place the branch in a worktree slot. A vacant slot is used when
one exists; otherwise the least-recently-used unpinned slot is evicted,
with its uncommitted work stashed under the outgoing branch. Stashed
work for the requested branch is restored unless --no-restore is given.`,
	Args: cobra.ExactArgs(1),
	Example: `  wt checkout feature/auth
  wt co main
  wt co feature/auth --no-restore`,
	RunE: runCheckout,
}

var checkoutNoRestore bool

func init() {
	checkoutCmd.Flags().BoolVar(&checkoutNoRestore, "no-restore", false, "do not reapply stashed work for the branch")
	rootCmd.AddCommand(checkoutCmd)
}

func runCheckout(cmd *cobra.Command, args []string) error {
	branch := args[0]

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	eng, err := engine.Open(cwd)
	if err != nil {
		return err
	}

	res, err := eng.Checkout(branch, checkoutNoRestore)
	if err != nil {
		return err
	}

	for _, warn := range res.ProvisionWarnings {
		fmt.Fprintf(os.Stderr, "wt: warning: %v\n", warn)
	}
	if res.RestoreWarning != nil {
		fmt.Fprintf(os.Stderr, "wt: warning: %v\n", res.RestoreWarning)
	}

	if res.Reused {
		fmt.Printf("  %s already in slot %s\n", color.CyanString(branch), color.GreenString(res.Slot))
	} else {
		success := color.New(color.FgGreen, color.Bold)
		success.Printf("  Checked out\n")
		fmt.Printf("  Branch: %s\n", color.CyanString(branch))
		fmt.Printf("  Slot:   %s\n", res.Slot)
		if res.Evicted != "" {
			note := fmt.Sprintf("  Evicted %s", res.Evicted)
			if res.Stashed {
				note += " (work stashed)"
			}
			fmt.Println(note)
		}
		if res.Restored {
			fmt.Println("  Restored stashed work")
		}
	}

	return nav.Write(res.Path)
}
