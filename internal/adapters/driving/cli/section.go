package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/walkthrough/internal/core/domain"
)

var (
	sectionItems       []string
	sectionDescription string
	sectionGenerate    bool
	suggestAdd         bool
)

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Manage checklist sections",
}

var sectionAddCmd = &cobra.Command{
	Use:   "add [key] [title]",
	Short: "Add a section to a report",
	Long: `Add a section to a report. Items are given with --item, or drafted by the
LLM provider with --generate, using the title as the topic.`,
	Args: cobra.ExactArgs(2),
	RunE: runSectionAdd,
}

var sectionCoverCmd = &cobra.Command{
	Use:   "cover [key] [section] [image]",
	Short: "Set a section's cover photo",
	Args:  cobra.ExactArgs(3),
	RunE:  runSectionCover,
}

var sectionShowHiddenCmd = &cobra.Command{
	Use:   "show-hidden [key] [section]",
	Short: "Restore every hidden item in a section",
	Args:  cobra.ExactArgs(2),
	RunE:  runSectionShowHidden,
}

var sectionSuggestCmd = &cobra.Command{
	Use:   "suggest [key] [section]",
	Short: "Suggest further items for a section",
	Long:  `Ask the LLM provider for items the section is missing. With --add they are appended and saved.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runSectionSuggest,
}

func init() {
	sectionAddCmd.Flags().StringArrayVarP(&sectionItems, "item", "i", nil, "item label (repeatable)")
	sectionAddCmd.Flags().StringVarP(&sectionDescription, "description", "d", "", "section description")
	sectionAddCmd.Flags().BoolVarP(&sectionGenerate, "generate", "g", false, "draft the section with the LLM provider")
	sectionSuggestCmd.Flags().BoolVar(&suggestAdd, "add", false, "append the suggestions to the section")

	sectionCmd.AddCommand(sectionAddCmd)
	sectionCmd.AddCommand(sectionCoverCmd)
	sectionCmd.AddCommand(sectionShowHiddenCmd)
	sectionCmd.AddCommand(sectionSuggestCmd)
	rootCmd.AddCommand(sectionCmd)
}

func runSectionAdd(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(args[1])
	if title == "" {
		return errors.New("section title must not be empty")
	}
	return editReport(cmd, args[0], func(p *domain.InspectionProfile) error {
		section := domain.ChecklistSection{Title: title, Description: sectionDescription}
		if sectionGenerate {
			if generationService == nil || !generationService.Available() {
				return domain.ErrLLMUnavailable
			}
			drafted, err := generationService.GenerateSection(cmd.Context(), *p, title)
			if err != nil {
				return err
			}
			if drafted == nil {
				return errors.New("the LLM response could not be used, add items with --item instead")
			}
			section = *drafted
		}
		for _, label := range sectionItems {
			if label = strings.TrimSpace(label); label != "" {
				section.Items = append(section.Items, domain.ChecklistItem{Label: label})
			}
		}

		added, err := inspectionService.AppendSection(section)
		if err != nil {
			return err
		}
		cmd.Printf("Added section %q with %d items.\n", added.Title, len(added.Items))
		return nil
	})
}

func runSectionCover(cmd *cobra.Command, args []string) error {
	return editReport(cmd, args[0], func(p *domain.InspectionProfile) error {
		section, err := resolveSection(p, args[1])
		if err != nil {
			return err
		}
		return inspectionService.AddPhoto(section.ID, "", args[2])
	})
}

func runSectionShowHidden(cmd *cobra.Command, args []string) error {
	return editReport(cmd, args[0], func(p *domain.InspectionProfile) error {
		section, err := resolveSection(p, args[1])
		if err != nil {
			return err
		}
		return inspectionService.ShowAllHidden(section.ID)
	})
}

func runSectionSuggest(cmd *cobra.Command, args []string) error {
	if generationService == nil || !generationService.Available() {
		return domain.ErrLLMUnavailable
	}
	profile, err := loadReport(cmd, args[0])
	if err != nil {
		return err
	}
	section, err := resolveSection(profile, args[1])
	if err != nil {
		return err
	}

	items, err := generationService.SuggestItems(cmd.Context(), *section)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		cmd.Println("No suggestions.")
		return nil
	}
	labels := make([]string, 0, len(items))
	for _, it := range items {
		labels = append(labels, it.Label)
		cmd.Printf("  - %s\n", it.Label)
	}
	if !suggestAdd {
		return nil
	}

	sectionID := section.ID
	return editReport(cmd, args[0], func(*domain.InspectionProfile) error {
		_, err := inspectionService.AddItems(sectionID, labels)
		return err
	})
}
