package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/haldane/wt/internal/engine"
	"github.com/haldane/wt/internal/nav"
)

var resumeCmd = &cobra.Command{
	Use:     "resume",
	Aliases: []string{"-"},
	Short:   "Jump to the most recently used slot",
	Args:    cobra.NoArgs,
	RunE:    runResume,
}

func init() {
	rootCmd.AddCommand(resumeCmd)
}

func runResume(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	eng, err := engine.Open(cwd)
	if err != nil {
		return err
	}

	res, err := eng.Resume(cwd)
	if err != nil {
		return err
	}

	if res.Already {
		fmt.Printf("  Already in %s (%s)\n", res.Slot, color.CyanString(res.Branch))
		return nil
	}

	fmt.Printf("  Resuming %s in slot %s\n", color.CyanString(res.Branch), res.Slot)
	return nav.Write(res.Path)
}
