package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"replayrec/internal/event"
	"replayrec/internal/replay"
	"replayrec/internal/store"
)

type mockSink struct {
	filename string
	content  string
	err      error
}

func (m *mockSink) Save(ctx context.Context, filename string, content []byte) error {
	m.filename = filename
	m.content = string(content)
	return m.err
}

type mockArchive struct {
	listResult []store.ExportSummary
	listErr    error
	getResult  *store.Export
	getErr     error

	lastSession string
	lastID      string
}

func (m *mockArchive) ListExports(ctx context.Context, session string) ([]store.ExportSummary, error) {
	m.lastSession = session
	return m.listResult, m.listErr
}

func (m *mockArchive) GetExport(ctx context.Context, id string) (*store.Export, error) {
	m.lastID = id
	return m.getResult, m.getErr
}

func newTestServer(sink replay.Sink, archive Archive) *Server {
	return NewServer(replay.New(replay.Options{}), Options{Version: "test", Sink: sink, Archive: archive})
}

func meshObject() map[string]any {
	return map[string]any{"className": "Mesh", "id": "m1"}
}

func TestRecordChange(t *testing.T) {
	server := newTestServer(nil, nil)
	ctx := context.Background()

	_, out, err := server.handleRecordChange(ctx, nil, RecordChangeInput{
		Object:   meshObject(),
		Property: "position",
		Value:    map[string]any{"x": 0.0, "y": 0.0, "z": 0.0},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.Lines != 1 {
		t.Fatalf("expected 1 line, got %d", out.Lines)
	}

	_, out, err = server.handleRecordChange(ctx, nil, RecordChangeInput{
		Object:   meshObject(),
		Property: "position",
		Value:    map[string]any{"x": 1.0, "y": 0.0, "z": 0.0},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.Lines != 1 {
		t.Fatalf("expected collapse to 1 line, got %d", out.Lines)
	}
	want := `scene.getMeshByID("m1").position = new BABYLON.Vector3(1, 0, 0);`
	if out.Line != want {
		t.Fatalf("expected %q, got %q", want, out.Line)
	}
}

func TestRecordChange_InvalidEvent(t *testing.T) {
	server := newTestServer(nil, nil)
	_, _, err := server.handleRecordChange(context.Background(), nil, RecordChangeInput{Object: meshObject(), Value: 1.0})
	if !errors.Is(err, event.ErrInvalidEvent) {
		t.Fatalf("expected ErrInvalidEvent, got %v", err)
	}
}

func TestResetAndListLines(t *testing.T) {
	server := newTestServer(nil, nil)
	ctx := context.Background()

	for _, prop := range []string{"position", "rotation"} {
		if _, _, err := server.handleRecordChange(ctx, nil, RecordChangeInput{Object: meshObject(), Property: prop, Value: map[string]any{"x": 1.0, "y": 2.0}}); err != nil {
			t.Fatalf("recording %s: %v", prop, err)
		}
	}

	_, lines, err := server.handleListLines(ctx, nil, ListLinesInput{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(lines.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %#v", lines.Lines)
	}

	_, reset, err := server.handleResetRecorder(ctx, nil, ResetRecorderInput{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if reset.Lines != 0 {
		t.Fatalf("expected empty recorder, got %d", reset.Lines)
	}
}

func TestExportCode(t *testing.T) {
	sink := &mockSink{}
	server := newTestServer(sink, nil)
	ctx := context.Background()

	if _, _, err := server.handleRecordChange(ctx, nil, RecordChangeInput{Object: map[string]any{"className": "Scene"}, Property: "clearColor", Value: map[string]any{"r": 1.0, "g": 1.0, "b": 1.0}}); err != nil {
		t.Fatalf("recording: %v", err)
	}

	_, out, err := server.handleExportCode(ctx, nil, ExportCodeInput{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := replay.Header + "scene.clearColor = new BABYLON.Color3(1, 1, 1);"
	if out.Content != want {
		t.Fatalf("expected %q, got %q", want, out.Content)
	}
	if out.Filename != "pseudo-code.txt" || out.Statements != 1 {
		t.Fatalf("unexpected output %#v", out)
	}
	if sink.content != want || sink.filename != "pseudo-code.txt" {
		t.Fatalf("sink did not receive export: %#v", sink)
	}
}

func TestExportCode_SinkError(t *testing.T) {
	forced := errors.New("no space")
	server := newTestServer(&mockSink{err: forced}, nil)
	_, _, err := server.handleExportCode(context.Background(), nil, ExportCodeInput{})
	if !errors.Is(err, forced) {
		t.Fatalf("expected sink error, got %v", err)
	}
}

func TestExportCode_NoSink(t *testing.T) {
	server := newTestServer(nil, nil)
	_, out, err := server.handleExportCode(context.Background(), nil, ExportCodeInput{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.Content != replay.Header {
		t.Fatalf("expected header only, got %q", out.Content)
	}
}

func TestListExports(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	archive := &mockArchive{
		listResult: []store.ExportSummary{{ID: "e1", Session: "s", Filename: "pseudo-code.txt", Statements: 4, CreatedAt: created}},
	}
	server := newTestServer(nil, archive)

	_, out, err := server.handleListExports(context.Background(), nil, ListExportsInput{Session: "s"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if archive.lastSession != "s" {
		t.Fatalf("expected session filter, got %q", archive.lastSession)
	}
	if len(out.Exports) != 1 || out.Exports[0].CreatedAt != "2026-01-02T03:04:05Z" || out.Exports[0].Statements != 4 {
		t.Fatalf("unexpected output %#v", out.Exports)
	}
}

func TestGetExport(t *testing.T) {
	archive := &mockArchive{getResult: &store.Export{ID: "e1", Content: "scene.a = 1;", Statements: 1}}
	server := newTestServer(nil, archive)

	_, out, err := server.handleGetExport(context.Background(), nil, GetExportInput{ID: "e1"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.Content != "scene.a = 1;" || out.Summary.ID != "e1" {
		t.Fatalf("unexpected output %#v", out)
	}

	if _, _, err := server.handleGetExport(context.Background(), nil, GetExportInput{}); err == nil {
		t.Fatalf("expected error for missing id")
	}

	archive.getErr = store.ErrNotFound
	if _, _, err := server.handleGetExport(context.Background(), nil, GetExportInput{ID: "missing"}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestArchiveToolsWithoutArchive(t *testing.T) {
	server := newTestServer(nil, nil)
	_, _, err := server.handleListExports(context.Background(), nil, ListExportsInput{})
	if err == nil || !strings.Contains(err.Error(), "archive") {
		t.Fatalf("expected archive error, got %v", err)
	}
}
