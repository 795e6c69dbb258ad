package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/walkthrough/internal/adapters/driven/idgen"
	"github.com/custodia-labs/walkthrough/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/walkthrough/internal/core/domain"
	"github.com/custodia-labs/walkthrough/internal/core/ports/driving"
	"github.com/custodia-labs/walkthrough/internal/core/services"
)

// MockGenerationService implements driving.GenerationService for CLI tests.
type MockGenerationService struct {
	AvailableValue      bool
	GenerateSectionFunc func(ctx context.Context, p domain.InspectionProfile, topic string) (*domain.ChecklistSection, error)
	SuggestItemsFunc    func(ctx context.Context, s domain.ChecklistSection) ([]domain.ChecklistItem, error)
	AnalyzePhotoFunc    func(ctx context.Context, req driving.PhotoAnalysisRequest) (string, error)
}

func (m *MockGenerationService) Available() bool {
	return m.AvailableValue
}

func (m *MockGenerationService) GenerateChecklist(
	_ context.Context, _ domain.InspectionProfile,
) ([]domain.ChecklistSection, error) {
	return []domain.ChecklistSection{{
		Title: "Drafted",
		Items: []domain.ChecklistItem{{Label: "First"}, {Label: "Second"}},
	}}, nil
}

func (m *MockGenerationService) GenerateSection(
	ctx context.Context, p domain.InspectionProfile, topic string,
) (*domain.ChecklistSection, error) {
	if m.GenerateSectionFunc != nil {
		return m.GenerateSectionFunc(ctx, p, topic)
	}
	return nil, nil
}

func (m *MockGenerationService) SuggestItems(
	ctx context.Context, s domain.ChecklistSection,
) ([]domain.ChecklistItem, error) {
	if m.SuggestItemsFunc != nil {
		return m.SuggestItemsFunc(ctx, s)
	}
	return nil, nil
}

func (m *MockGenerationService) AnalyzePhoto(ctx context.Context, req driving.PhotoAnalysisRequest) (string, error) {
	if m.AnalyzePhotoFunc != nil {
		return m.AnalyzePhotoFunc(ctx, req)
	}
	return "", nil
}

// testEnv holds real services over in-memory stores.
type testEnv struct {
	settings   *services.SettingsService
	report     *services.ReportService
	inspection *services.InspectionService
	auth       *services.AuthService
	generation *MockGenerationService
	local      *memory.ReportStore
}

func setupTestServices(t *testing.T) *testEnv {
	t.Helper()
	ids := idgen.New()
	config := memory.NewConfigStore()
	local := memory.NewReportStore("local")

	auth := services.NewAuthService(memory.NewUserStore(), config, ids)
	auth.SetHashCost(4)

	env := &testEnv{
		settings:   services.NewSettingsService(config, nil),
		report:     services.NewReportService(local, ids, auth),
		inspection: services.NewInspectionService(ids),
		auth:       auth,
		generation: &MockGenerationService{},
		local:      local,
	}
	SetServices(&Services{
		Settings:   env.settings,
		Report:     env.report,
		Inspection: env.inspection,
		Generation: env.generation,
		Auth:       env.auth,
	})
	t.Cleanup(func() {
		SetServices(nil)
		newProfile = domain.InspectionProfile{}
		newNoGenerate = false
		showAll = false
		outputJSON = false
		sectionItems = nil
		sectionDescription = ""
		sectionGenerate = false
		suggestAdd = false
		analyzeAttach = true
	})
	return env
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

// seedReport starts and saves an inspection with the built-in checklist.
func (e *testEnv) seedReport(t *testing.T, address string) *domain.SaveResult {
	t.Helper()
	started, err := e.inspection.Start(domain.InspectionProfile{
		Address:  address,
		Sections: domain.DefaultChecklist(func() string { return "" }),
	})
	require.NoError(t, err)
	result, err := e.report.Save(context.Background(), *started)
	require.NoError(t, err)
	return result
}

// load reads a saved report back.
func (e *testEnv) load(t *testing.T, key string) *domain.InspectionProfile {
	t.Helper()
	profile, found, err := e.report.Load(context.Background(), key)
	require.NoError(t, err)
	require.True(t, found)
	return profile
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "walkthrough", rootCmd.Use)
}

func TestRootCmd_SubcommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{
		"new", "show", "open", "share", "reports", "item", "photo",
		"section", "analyze", "settings", "auth", "tui", "mcp", "version",
	} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestSetServices_Nil(t *testing.T) {
	setupTestServices(t)

	SetServices(nil)

	assert.Nil(t, reportService)
	assert.Nil(t, inspectionService)
	assert.Nil(t, settingsService)
}

func TestSetVersion(t *testing.T) {
	original := version
	defer func() { version = original }()

	SetVersion("1.2.3")

	assert.Equal(t, "1.2.3", version)
}

func TestCommands_ServiceNotConfigured(t *testing.T) {
	SetServices(nil)

	_, err := execute(t, "reports", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")

	_, err = execute(t, "auth", "whoami")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
