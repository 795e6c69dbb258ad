package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/walkthrough/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for walkthrough resources.
	uriScheme = "walkthrough://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing saved reports.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "reports",
		Name:        "reports",
		Description: "Inspection reports saved on this device",
		MIMEType:    "application/json",
	}, s.handleReportsResource)

	// Template for a single report.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "reports/{key}",
		Name:        "report",
		Description: "A saved inspection report, by primary key or short key",
		MIMEType:    "application/json",
	}, s.handleReportResource)
}

// handleReportsResource returns the saved report listing.
func (s *Server) handleReportsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	summaries, err := s.ports.Report.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}

	type reportInfo struct {
		ID       string `json:"id"`
		ShortID  string `json:"short_id,omitempty"`
		Address  string `json:"address"`
		Progress int    `json:"progress"`
		Created  string `json:"created"`
	}

	infos := make([]reportInfo, len(summaries))
	for i := range summaries {
		infos[i] = reportInfo{
			ID:       summaries[i].ID,
			ShortID:  summaries[i].ShortID,
			Address:  summaries[i].Address,
			Progress: summaries[i].Progress,
			Created:  summaries[i].CreatedAt.Format("2006-01-02"),
		}
	}

	return jsonResult(req.Params.URI, infos, "reports")
}

// handleReportResource returns one report.
func (s *Server) handleReportResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract key from URI: walkthrough://reports/{key}
	key := extractReportKey(req.Params.URI)
	if key == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	profile, err := s.load(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, err
	}

	return jsonResult(req.Params.URI, reportOutput(profile, false), "report")
}

func jsonResult(uri string, v any, what string) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", what, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractReportKey extracts the report key from a URI like walkthrough://reports/{key}.
func extractReportKey(uri string) string {
	const prefix = uriScheme + "reports/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	key := strings.TrimPrefix(uri, prefix)
	if strings.Contains(key, "/") {
		return ""
	}
	return key
}
