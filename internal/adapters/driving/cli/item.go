package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/walkthrough/internal/core/domain"
)

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Record findings on checklist items",
	Long: `Record findings on checklist items of a saved report.

Sections and items can be named by identifier, by position (1-based, as
printed by 'walkthrough show') or by title/label.`,
}

var itemStatusCmd = &cobra.Command{
	Use:   "status [key] [section] [item] [status]",
	Short: "Set an item's status",
	Long: `Set an item's status. Valid statuses:
  untouched, pass, info, attention, moderate, dangerous`,
	Args: cobra.ExactArgs(4),
	RunE: runItemStatus,
}

var itemOptionCmd = &cobra.Command{
	Use:   "option [key] [section] [item] [option]",
	Short: "Set an item's selected option",
	Args:  cobra.ExactArgs(4),
	RunE:  runItemOption,
}

var itemNotesCmd = &cobra.Command{
	Use:   "notes [key] [section] [item] [text...]",
	Short: "Replace an item's notes",
	Args:  cobra.MinimumNArgs(3),
	RunE:  runItemNotes,
}

var itemHideCmd = &cobra.Command{
	Use:   "hide [key] [section] [item]",
	Short: "Hide an item that does not apply",
	Long:  `Hide an item. It keeps its status, notes and photos but no longer counts towards progress.`,
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runItemVisibility(cmd, args, true)
	},
}

var itemUnhideCmd = &cobra.Command{
	Use:   "unhide [key] [section] [item]",
	Short: "Restore a hidden item",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runItemVisibility(cmd, args, false)
	},
}

func init() {
	itemCmd.AddCommand(itemStatusCmd)
	itemCmd.AddCommand(itemOptionCmd)
	itemCmd.AddCommand(itemNotesCmd)
	itemCmd.AddCommand(itemHideCmd)
	itemCmd.AddCommand(itemUnhideCmd)
	rootCmd.AddCommand(itemCmd)
}

func runItemStatus(cmd *cobra.Command, args []string) error {
	status := domain.ItemStatus(strings.ToLower(args[3]))
	if !status.IsValid() {
		return fmt.Errorf("invalid status %q", args[3])
	}
	return editReport(cmd, args[0], func(p *domain.InspectionProfile) error {
		sectionID, itemID, err := resolveTarget(p, args[1], args[2])
		if err != nil {
			return err
		}
		return inspectionService.SetItemStatus(sectionID, itemID, status)
	})
}

func runItemOption(cmd *cobra.Command, args []string) error {
	return editReport(cmd, args[0], func(p *domain.InspectionProfile) error {
		sectionID, itemID, err := resolveTarget(p, args[1], args[2])
		if err != nil {
			return err
		}
		return inspectionService.SetItemOption(sectionID, itemID, args[3])
	})
}

func runItemNotes(cmd *cobra.Command, args []string) error {
	text := strings.Join(args[3:], " ")
	return editReport(cmd, args[0], func(p *domain.InspectionProfile) error {
		sectionID, itemID, err := resolveTarget(p, args[1], args[2])
		if err != nil {
			return err
		}
		return inspectionService.SetItemNotes(sectionID, itemID, text)
	})
}

func runItemVisibility(cmd *cobra.Command, args []string, hidden bool) error {
	return editReport(cmd, args[0], func(p *domain.InspectionProfile) error {
		sectionID, itemID, err := resolveTarget(p, args[1], args[2])
		if err != nil {
			return err
		}
		return inspectionService.SetItemVisibility(sectionID, itemID, hidden)
	})
}
