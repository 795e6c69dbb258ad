// Package cli provides the walkthrough command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/walkthrough/internal/core/ports/driving"
	"github.com/custodia-labs/walkthrough/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

var (
	verbose bool
	quiet   bool
)

// Services wired by main.
var (
	settingsService   driving.SettingsService
	reportService     driving.ReportService
	inspectionService driving.InspectionService
	generationService driving.GenerationService
	authService       driving.AuthService
)

// Services holds the driving ports the commands operate on.
type Services struct {
	Settings   driving.SettingsService
	Report     driving.ReportService
	Inspection driving.InspectionService
	Generation driving.GenerationService
	Auth       driving.AuthService
}

var rootCmd = &cobra.Command{
	Use:   "walkthrough",
	Short: "Walk a property inspection checklist",
	Long: `walkthrough helps a property inspector walk a structured checklist:
sections of items, each marked pass, info or an issue, with notes and photos.

Reports are saved to a local store and, when configured, to a remote store
(SQLite or Firestore). Checklists can be drafted by an LLM provider.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
		logger.SetQuiet(quiet)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress warnings")
}

// SetVersion sets the version reported by 'walkthrough version'.
func SetVersion(v string) {
	version = v
}

// SetServices wires the services used by every command.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	settingsService = s.Settings
	reportService = s.Report
	inspectionService = s.Inspection
	generationService = s.Generation
	authService = s.Auth
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
