package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/haldane/wt/internal/engine"
)

var pinCmd = &cobra.Command{
	Use:   "pin [slot]",
	Short: "Exclude a slot from eviction",
	Long: `Mark a slot as pinned so checkout never evicts it. Without an
argument the slot containing the current directory is pinned.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetPinned(args, true)
	},
}

var unpinCmd = &cobra.Command{
	Use:   "unpin [slot]",
	Short: "Make a slot evictable again",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetPinned(args, false)
	},
}

func init() {
	rootCmd.AddCommand(pinCmd)
	rootCmd.AddCommand(unpinCmd)
}

func runSetPinned(args []string, pinned bool) error {
	slot := ""
	if len(args) == 1 {
		slot = args[0]
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	eng, err := engine.Open(cwd)
	if err != nil {
		return err
	}

	name, err := eng.SetPinned(slot, cwd, pinned)
	if err != nil {
		return err
	}

	if pinned {
		fmt.Printf("  Pinned %s\n", color.GreenString(name))
	} else {
		fmt.Printf("  Unpinned %s\n", color.GreenString(name))
	}
	return nil
}
