package mcp

import (
	"context"
	"fmt"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"replayrec/internal/event"
	"replayrec/internal/store"
)

type RecordChangeInput struct {
	Object   any    `json:"object" jsonschema:"edited object: {className, id, uniqueId, kind} or a raw expression string"`
	Property string `json:"property" jsonschema:"edited property name"`
	Value    any    `json:"value" jsonschema:"new value: number, string, boolean, {x,y[,z[,w]]}, {r,g,b[,a]} or an object reference"`
}

type RecordChangeOutput struct {
	Line  string `json:"line"`
	Lines int    `json:"lines"`
}

type ResetRecorderInput struct{}

type ResetRecorderOutput struct {
	Lines int `json:"lines"`
}

type ListLinesInput struct{}

type ListLinesOutput struct {
	Lines []string `json:"lines"`
}

type ExportCodeInput struct{}

type ExportCodeOutput struct {
	Filename   string `json:"filename"`
	Content    string `json:"content"`
	Statements int    `json:"statements"`
}

type ListExportsInput struct {
	Session string `json:"session,omitempty" jsonschema:"restrict to one session"`
}

type ExportSummaryOutput struct {
	ID         string `json:"id"`
	Session    string `json:"session"`
	Filename   string `json:"filename"`
	Statements int    `json:"statements"`
	CreatedAt  string `json:"created_at"`
}

type ListExportsOutput struct {
	Exports []ExportSummaryOutput `json:"exports"`
}

type GetExportInput struct {
	ID string `json:"id" jsonschema:"export id"`
}

type ExportOutput struct {
	Summary ExportSummaryOutput `json:"summary"`
	Content string              `json:"content"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "record_change",
		Description: "Record a property edit made in the inspector",
	}, s.handleRecordChange)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "reset_recorder",
		Description: "Discard every recorded statement",
	}, s.handleResetRecorder)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_lines",
		Description: "Return the statements recorded so far",
	}, s.handleListLines)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "export_code",
		Description: "Export the recorded statements as pseudo-code",
	}, s.handleExportCode)

	if s.archive != nil {
		sdk.AddTool(s.mcp, &sdk.Tool{
			Name:        "list_exports",
			Description: "List archived exports",
		}, s.handleListExports)

		sdk.AddTool(s.mcp, &sdk.Tool{
			Name:        "get_export",
			Description: "Retrieve an archived export",
		}, s.handleGetExport)
	}
}

func (s *Server) handleRecordChange(ctx context.Context, req *sdk.CallToolRequest, input RecordChangeInput) (*sdk.CallToolResult, RecordChangeOutput, error) {
	e, err := event.Convert(event.Raw{Object: input.Object, Property: input.Property, Value: input.Value})
	if err != nil {
		return nil, RecordChangeOutput{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.recorder.Record(e)
	lines := s.recorder.Lines()
	return nil, RecordChangeOutput{Line: lines[len(lines)-1], Lines: len(lines)}, nil
}

func (s *Server) handleResetRecorder(ctx context.Context, req *sdk.CallToolRequest, input ResetRecorderInput) (*sdk.CallToolResult, ResetRecorderOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recorder.Reset()
	return nil, ResetRecorderOutput{Lines: s.recorder.Len()}, nil
}

func (s *Server) handleListLines(ctx context.Context, req *sdk.CallToolRequest, input ListLinesInput) (*sdk.CallToolResult, ListLinesOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return nil, ListLinesOutput{Lines: s.recorder.Lines()}, nil
}

func (s *Server) handleExportCode(ctx context.Context, req *sdk.CallToolRequest, input ExportCodeInput) (*sdk.CallToolResult, ExportCodeOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := ExportCodeOutput{
		Filename:   s.recorder.Filename(),
		Content:    s.recorder.Content(),
		Statements: s.recorder.Len(),
	}
	if s.sink != nil {
		if err := s.recorder.Export(ctx, s.sink); err != nil {
			return nil, ExportCodeOutput{}, err
		}
	}
	return nil, out, nil
}

func (s *Server) handleListExports(ctx context.Context, req *sdk.CallToolRequest, input ListExportsInput) (*sdk.CallToolResult, ListExportsOutput, error) {
	if s.archive == nil {
		return nil, ListExportsOutput{}, fmt.Errorf("no export archive configured")
	}
	items, err := s.archive.ListExports(ctx, input.Session)
	if err != nil {
		return nil, ListExportsOutput{}, err
	}

	output := make([]ExportSummaryOutput, 0, len(items))
	for _, item := range items {
		output = append(output, summaryOutput(item))
	}
	return nil, ListExportsOutput{Exports: output}, nil
}

func (s *Server) handleGetExport(ctx context.Context, req *sdk.CallToolRequest, input GetExportInput) (*sdk.CallToolResult, ExportOutput, error) {
	if s.archive == nil {
		return nil, ExportOutput{}, fmt.Errorf("no export archive configured")
	}
	if input.ID == "" {
		return nil, ExportOutput{}, fmt.Errorf("id is required")
	}
	e, err := s.archive.GetExport(ctx, input.ID)
	if err != nil {
		return nil, ExportOutput{}, err
	}
	return nil, ExportOutput{
		Summary: summaryOutput(store.ExportSummary{
			ID:         e.ID,
			Session:    e.Session,
			Filename:   e.Filename,
			Statements: e.Statements,
			CreatedAt:  e.CreatedAt,
		}),
		Content: e.Content,
	}, nil
}

func summaryOutput(s store.ExportSummary) ExportSummaryOutput {
	return ExportSummaryOutput{
		ID:         s.ID,
		Session:    s.Session,
		Filename:   s.Filename,
		Statements: s.Statements,
		CreatedAt:  s.CreatedAt.UTC().Format(time.RFC3339),
	}
}
