package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/walkthrough/internal/adapters/driven/idgen"
	"github.com/custodia-labs/walkthrough/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/walkthrough/internal/core/domain"
	"github.com/custodia-labs/walkthrough/internal/core/services"
)

// mockReportService is a mock implementation of driving.ReportService.
type mockReportService struct {
	profile *domain.InspectionProfile
	found   bool
	err     error
	saveErr error
	saved   []domain.InspectionProfile
}

func (m *mockReportService) Save(_ context.Context, p domain.InspectionProfile) (*domain.SaveResult, error) {
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	m.saved = append(m.saved, p)
	return &domain.SaveResult{ID: p.SavedReportID, ShortID: p.ShortID}, nil
}

func (m *mockReportService) Load(_ context.Context, _ string) (*domain.InspectionProfile, bool, error) {
	return m.profile, m.found, m.err
}

func (m *mockReportService) List(_ context.Context) ([]domain.ReportSummary, error) {
	return nil, m.err
}

func (m *mockReportService) HasRemote() bool {
	return false
}

// fixture is a server over real services and in-memory stores.
type fixture struct {
	server     *Server
	report     *services.ReportService
	inspection *services.InspectionService
	local      *memory.ReportStore
	remote     *memory.ReportStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ids := idgen.New()
	local := memory.NewReportStore("local")
	remote := memory.NewReportStore("remote")
	f := &fixture{
		report:     services.NewReportService(local, ids, nil, remote),
		inspection: services.NewInspectionService(ids),
		local:      local,
		remote:     remote,
	}
	server, err := NewServer(&Ports{Report: f.report, Inspection: f.inspection})
	require.NoError(t, err)
	f.server = server
	return f
}

// seed saves a small report and returns its keys.
func (f *fixture) seed(t *testing.T) *domain.SaveResult {
	t.Helper()
	started, err := f.inspection.Start(domain.InspectionProfile{
		Address: "9 Pine Rd",
		Sections: []domain.ChecklistSection{
			{Title: "Roof", Items: []domain.ChecklistItem{
				{Label: "Shingles", Options: []string{"Asphalt", "Metal"}},
				{Label: "Chimney"},
			}},
			{Title: "Kitchen", Items: []domain.ChecklistItem{
				{Label: "Sink"},
				{Label: "Gas range", IsHidden: true},
			}},
		},
	})
	require.NoError(t, err)
	result, err := f.report.Save(context.Background(), *started)
	require.NoError(t, err)
	return result
}

func (f *fixture) load(t *testing.T, key string) *domain.InspectionProfile {
	t.Helper()
	p, found, err := f.report.Load(context.Background(), key)
	require.NoError(t, err)
	require.True(t, found)
	return p
}
