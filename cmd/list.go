package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/haldane/wt/internal/engine"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List slots with their branches",
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
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
	if len(infos) == 0 {
		fmt.Println("No slots. Run wt init first.")
		return nil
	}

	printSlotTable(infos)
	return nil
}

func printSlotTable(infos []engine.SlotInfo) {
	slotW := len("Slot")
	branchW := len("Branch")
	for _, info := range infos {
		if len(info.Name) > slotW {
			slotW = len(info.Name)
		}
		if len(branchLabel(info)) > branchW {
			branchW = len(branchLabel(info))
		}
	}

	header := color.New(color.Bold)
	header.Printf("  %-*s  %-*s  %-10s  %s\n", slotW, "Slot", branchW, "Branch", "Last used", "Flags")
	fmt.Println("  " + strings.Repeat("─", slotW+branchW+26))

	for _, info := range infos {
		slotStr := info.Name
		if info.Current {
			slotStr = color.GreenString("%s", slotStr)
			slotStr += strings.Repeat(" ", slotW-len(info.Name))
		} else {
			slotStr = fmt.Sprintf("%-*s", slotW, slotStr)
		}

		label := branchLabel(info)
		var branchStr string
		if info.Branch == "" {
			branchStr = color.New(color.Faint).Sprintf("%-*s", branchW, label)
		} else {
			branchStr = color.CyanString("%-*s", branchW, label)
		}

		var flags []string
		if info.Pinned {
			flags = append(flags, color.YellowString("pinned"))
		}
		if info.Current {
			flags = append(flags, color.GreenString("current"))
		}

		fmt.Printf("  %s  %s  %-10s  %s\n", slotStr, branchStr, lastUsed(info), strings.Join(flags, " "))
	}
	fmt.Println()
}

func branchLabel(info engine.SlotInfo) string {
	if info.Branch == "" {
		return "(vacant)"
	}
	return info.Branch
}

func lastUsed(info engine.SlotInfo) string {
	if info.Branch == "" || info.LastUsedAt.Unix() <= 0 {
		return "-"
	}
	d := time.Since(info.LastUsedAt)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
