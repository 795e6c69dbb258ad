package cli

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/walkthrough/internal/core/domain"
	"github.com/custodia-labs/walkthrough/internal/core/ports/driving"
)

var analyzeAttach bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze [key] [section] [item] [photo]",
	Short: "Analyse a photo and append the finding to an item",
	Long: `Send a photo to the LLM provider and append its description to the item's
notes as an "AI Note". The photo is also attached to the item unless
--attach=false is given.`,
	Args: cobra.ExactArgs(4),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeAttach, "attach", true, "attach the photo to the item")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if generationService == nil || !generationService.Available() {
		return domain.ErrLLMUnavailable
	}
	path := args[3]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read photo: %w", err)
	}

	return editReport(cmd, args[0], func(p *domain.InspectionProfile) error {
		section, err := resolveSection(p, args[1])
		if err != nil {
			return err
		}
		item, err := resolveItem(section, args[2])
		if err != nil {
			return err
		}

		cmd.PrintErrln("Analysing photo...")
		note, err := generationService.AnalyzePhoto(cmd.Context(), driving.PhotoAnalysisRequest{
			SectionTitle: section.Title,
			ItemLabel:    item.Label,
			MediaType:    mime.TypeByExtension(filepath.Ext(path)),
			Data:         data,
		})
		if err != nil {
			return err
		}
		cmd.Println(note)

		if err := inspectionService.AppendAnalysis(section.ID, item.ID, note); err != nil {
			return err
		}
		if analyzeAttach {
			return inspectionService.AddPhoto(section.ID, item.ID, path)
		}
		return nil
	})
}
