package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/walkthrough/internal/core/domain"
)

var photoCmd = &cobra.Command{
	Use:   "photo",
	Short: "Attach photos to checklist items",
	Long:  `Attach or remove photo references (file paths or URLs) on checklist items.`,
}

var photoAddCmd = &cobra.Command{
	Use:   "add [key] [section] [item] [image]",
	Short: "Attach a photo to an item",
	Args:  cobra.ExactArgs(4),
	RunE:  runPhotoAdd,
}

var photoRemoveCmd = &cobra.Command{
	Use:   "remove [key] [section] [item] [position]",
	Short: "Remove an item photo by position",
	Long:  `Remove an item photo by its 1-based position. A position past the end is ignored.`,
	Args:  cobra.ExactArgs(4),
	RunE:  runPhotoRemove,
}

func init() {
	photoCmd.AddCommand(photoAddCmd)
	photoCmd.AddCommand(photoRemoveCmd)
	rootCmd.AddCommand(photoCmd)
}

func runPhotoAdd(cmd *cobra.Command, args []string) error {
	return editReport(cmd, args[0], func(p *domain.InspectionProfile) error {
		sectionID, itemID, err := resolveTarget(p, args[1], args[2])
		if err != nil {
			return err
		}
		return inspectionService.AddPhoto(sectionID, itemID, args[3])
	})
}

func runPhotoRemove(cmd *cobra.Command, args []string) error {
	position, err := strconv.Atoi(args[3])
	if err != nil {
		return fmt.Errorf("invalid position %q", args[3])
	}
	return editReport(cmd, args[0], func(p *domain.InspectionProfile) error {
		sectionID, itemID, err := resolveTarget(p, args[1], args[2])
		if err != nil {
			return err
		}
		return inspectionService.RemovePhoto(sectionID, itemID, position-1)
	})
}
