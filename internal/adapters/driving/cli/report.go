package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/walkthrough/internal/core/domain"
	"github.com/custodia-labs/walkthrough/internal/logger"
)

var (
	newProfile    domain.InspectionProfile
	newNoGenerate bool
	showAll       bool
	outputJSON    bool
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start and save a new inspection",
	Long: `Start a new inspection for a property and save it.

The checklist is drafted by the configured LLM provider. Without one, or
with --no-generate, the built-in checklist is used.`,
	Args: cobra.NoArgs,
	RunE: runNew,
}

var showCmd = &cobra.Command{
	Use:   "show [key]",
	Short: "Show a saved report",
	Long:  `Show a saved report by primary key or short key. Hidden items are listed only with --all.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var openCmd = &cobra.Command{
	Use:   "open [link]",
	Short: "Open a shared report link",
	Long: `Open a report from a shared link. The report key is read from the
link's query parameter (share.param, "report" by default). A bare key works too.`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

var shareCmd = &cobra.Command{
	Use:   "share [key]",
	Short: "Print a shareable link for a report",
	Args:  cobra.ExactArgs(1),
	RunE:  runShare,
}

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Manage saved reports",
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reports saved on this device",
	Args:  cobra.NoArgs,
	RunE:  runReportsList,
}

func init() {
	f := newCmd.Flags()
	f.StringVar(&newProfile.Address, "address", "", "property address (required)")
	f.StringVar(&newProfile.PropertyType, "type", "", "property type, e.g. single-family")
	f.IntVar(&newProfile.Floors, "floors", 0, "number of floors")
	f.IntVar(&newProfile.Bedrooms, "bedrooms", 0, "number of bedrooms")
	f.IntVar(&newProfile.Baths, "baths", 0, "number of bathrooms")
	f.IntVar(&newProfile.SquareFeet, "sqft", 0, "floor area in square feet")
	f.IntVar(&newProfile.YearBuilt, "year", 0, "year built")
	f.StringVar(&newProfile.Weather, "weather", "", "weather on the day")
	f.StringVar(&newProfile.OutsideTemp, "outside-temp", "", "outside temperature")
	f.StringVar(&newProfile.InsideTemp, "inside-temp", "", "inside temperature")
	f.StringVar(&newProfile.GasType, "gas", "", "gas supply")
	f.StringVar(&newProfile.SewerType, "sewer", "", "sewer type")
	f.StringVar(&newProfile.WaterType, "water", "", "water supply")
	f.StringVar(&newProfile.ElectricPanel, "panel", "", "electric panel")
	f.StringVar(&newProfile.Generator, "generator", "", "generator")
	f.StringVar(&newProfile.InspectorName, "inspector", "", "inspector name (default inspector.name)")
	f.BoolVar(&newNoGenerate, "no-generate", false, "use the built-in checklist")
	_ = newCmd.MarkFlagRequired("address")

	showCmd.Flags().BoolVarP(&showAll, "all", "a", false, "include hidden items")
	showCmd.Flags().BoolVar(&outputJSON, "json", false, "print the report as JSON")
	openCmd.Flags().BoolVarP(&showAll, "all", "a", false, "include hidden items")
	reportsListCmd.Flags().BoolVar(&outputJSON, "json", false, "print the list as JSON")

	reportsCmd.AddCommand(reportsListCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(reportsCmd)
}

func runNew(cmd *cobra.Command, _ []string) error {
	if reportService == nil || inspectionService == nil {
		return errors.New("report service not configured")
	}
	ctx := cmd.Context()

	profile := newProfile.Clone()
	profile.Address = strings.TrimSpace(profile.Address)
	if profile.Address == "" {
		return errors.New("--address must not be empty")
	}
	if profile.InspectorName == "" && settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			profile.InspectorName = settings.InspectorName
		}
	}

	profile.Sections = draftChecklist(cmd, profile)
	started, err := inspectionService.Start(profile)
	if err != nil {
		return fmt.Errorf("start inspection: %w", err)
	}

	result, err := reportService.Save(ctx, *started)
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	printSaveResult(cmd, result)
	cmd.Printf("Sections: %d\n", len(started.Sections))
	return nil
}

// draftChecklist asks the LLM for a checklist and falls back to the built-in one.
func draftChecklist(cmd *cobra.Command, profile domain.InspectionProfile) []domain.ChecklistSection {
	builtin := func() []domain.ChecklistSection {
		// Identifiers are assigned when the inspection starts.
		return domain.DefaultChecklist(func() string { return "" })
	}
	if newNoGenerate || generationService == nil || !generationService.Available() {
		return builtin()
	}

	cmd.PrintErrln("Drafting checklist...")
	sections, err := generationService.GenerateChecklist(cmd.Context(), profile)
	if err != nil {
		logger.Warn("checklist generation failed, using the built-in checklist: %v", err)
		return builtin()
	}
	return sections
}

func runShow(cmd *cobra.Command, args []string) error {
	profile, err := loadReport(cmd, args[0])
	if err != nil {
		return err
	}
	if outputJSON {
		data, err := json.MarshalIndent(profile, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}
	printReport(cmd, profile, showAll)
	return nil
}

func runOpen(cmd *cobra.Command, args []string) error {
	param := domain.DefaultShareParam
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil && settings.Share.Param != "" {
			param = settings.Share.Param
		}
	}
	key, ok := domain.ParseShareURL(args[0], param)
	if !ok {
		return fmt.Errorf("no %q parameter in %s", param, args[0])
	}

	profile, err := loadReport(cmd, key)
	if err != nil {
		return err
	}
	if inspectionService != nil {
		inspectionService.Hydrate(*profile)
	}
	printReport(cmd, profile, showAll)
	return nil
}

func runShare(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	profile, err := loadReport(cmd, args[0])
	if err != nil {
		return err
	}
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	key := profile.ShortID
	if key == "" {
		key = profile.SavedReportID
	}
	link, err := domain.ShareURL(settings.Share.BaseURL, settings.Share.Param, key)
	if err != nil {
		return err
	}
	cmd.Println(link)
	return nil
}

func runReportsList(cmd *cobra.Command, _ []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}
	summaries, err := reportService.List(cmd.Context())
	if err != nil {
		return err
	}

	if outputJSON {
		data, err := json.MarshalIndent(summaries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal reports: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(summaries) == 0 {
		cmd.Println("No saved reports.")
		return nil
	}
	for _, s := range summaries {
		cmd.Printf("  %-9s  %3d%%  %s  %s\n", s.ShortID, s.Progress, s.CreatedAt.Format("2006-01-02"), s.Address)
	}
	return nil
}

// loadReport loads a report by key and reports a miss as an error.
func loadReport(cmd *cobra.Command, key string) (*domain.InspectionProfile, error) {
	if reportService == nil {
		return nil, errors.New("report service not configured")
	}
	profile, found, err := reportService.Load(cmd.Context(), key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("report %q %w", key, domain.ErrNotFound)
	}
	return profile, nil
}

// editReport loads a report into the inspection service, applies edit and
// saves the result.
func editReport(cmd *cobra.Command, key string, edit func(p *domain.InspectionProfile) error) error {
	if inspectionService == nil {
		return errors.New("inspection service not configured")
	}
	profile, err := loadReport(cmd, key)
	if err != nil {
		return err
	}
	inspectionService.Hydrate(*profile)
	if err := edit(profile); err != nil {
		return err
	}

	updated, err := inspectionService.Current()
	if err != nil {
		return err
	}
	result, err := reportService.Save(cmd.Context(), *updated)
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	for _, w := range result.Warnings {
		cmd.PrintErrf("Warning: %s\n", w)
	}
	cmd.Printf("Saved. Progress: %d%%\n", updated.Progress())
	return nil
}

func printSaveResult(cmd *cobra.Command, result *domain.SaveResult) {
	for _, w := range result.Warnings {
		cmd.PrintErrf("Warning: %s\n", w)
	}
	where := "this device"
	if result.Remote {
		where = "remote store"
	}
	cmd.Printf("Saved to %s.\n", where)
	cmd.Printf("Report: %s\n", result.ShortID)
	cmd.Printf("ID:     %s\n", result.ID)
}

func printReport(cmd *cobra.Command, p *domain.InspectionProfile, includeHidden bool) {
	cmd.Printf("%s", p.Address)
	if p.ShortID != "" {
		cmd.Printf("  (%s)", p.ShortID)
	}
	cmd.Println()
	if p.InspectorName != "" {
		cmd.Printf("Inspector: %s\n", p.InspectorName)
	}
	c := p.Summary()
	cmd.Printf("Progress: %d%%  passed %d  issues %d  info %d  remaining %d\n",
		p.Progress(), c.Passed, c.Issues, c.Info, c.Remaining)

	for si := range p.Sections {
		s := &p.Sections[si]
		cmd.Println()
		cmd.Printf("[%d] %s  (%s)", si+1, s.Title, s.Status)
		if hidden := s.HiddenCount(); hidden > 0 && !includeHidden {
			cmd.Printf("  %d hidden", hidden)
		}
		cmd.Println()
		for ii := range s.Items {
			it := &s.Items[ii]
			if it.IsHidden && !includeHidden {
				continue
			}
			marker := ""
			if it.IsHidden {
				marker = " (hidden)"
			}
			cmd.Printf("    %2d. %-11s %s%s\n", ii+1, "["+it.Status.String()+"]", it.Label, marker)
			if it.SelectedOption != "" {
				cmd.Printf("        option: %s\n", it.SelectedOption)
			}
			for _, line := range strings.Split(it.Notes, "\n") {
				if line != "" {
					cmd.Printf("        %s\n", line)
				}
			}
			if len(it.Photos) > 0 {
				cmd.Printf("        photos: %d\n", len(it.Photos))
			}
		}
	}
}

// resolveSection finds a section by ID, 1-based position or title.
func resolveSection(p *domain.InspectionProfile, ref string) (*domain.ChecklistSection, error) {
	if s, ok := p.Section(ref); ok {
		return s, nil
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(p.Sections) {
		return &p.Sections[n-1], nil
	}
	for i := range p.Sections {
		if strings.EqualFold(p.Sections[i].Title, ref) {
			return &p.Sections[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrSectionNotFound, ref)
}

// resolveItem finds an item by ID, 1-based position or label.
func resolveItem(s *domain.ChecklistSection, ref string) (*domain.ChecklistItem, error) {
	for i := range s.Items {
		if s.Items[i].ID == ref {
			return &s.Items[i], nil
		}
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(s.Items) {
		return &s.Items[n-1], nil
	}
	for i := range s.Items {
		if strings.EqualFold(s.Items[i].Label, ref) {
			return &s.Items[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, ref)
}

// resolveTarget resolves section and item references to their identifiers.
func resolveTarget(p *domain.InspectionProfile, sectionRef, itemRef string) (sectionID, itemID string, err error) {
	section, err := resolveSection(p, sectionRef)
	if err != nil {
		return "", "", err
	}
	item, err := resolveItem(section, itemRef)
	if err != nil {
		return "", "", err
	}
	return section.ID, item.ID, nil
}
