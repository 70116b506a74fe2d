package sink

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"replayrec/internal/replay"
	"replayrec/internal/store"
)

type mockSaver struct {
	inputs []store.ExportInput
	err    error
}

func (m *mockSaver) SaveExport(ctx context.Context, in store.ExportInput) (*store.Export, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.inputs = append(m.inputs, in)
	return &store.Export{ID: "e1", Session: in.Session, Filename: in.Filename, Content: in.Content}, nil
}

func TestDirSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	if err := Dir(dir).Save(context.Background(), "pseudo-code.txt", []byte("hello")); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "pseudo-code.txt"))
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestDirSinkStripsDirectories(t *testing.T) {
	dir := t.TempDir()
	if err := Dir(dir).Save(context.Background(), "../escape.txt", []byte("x")); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "escape.txt")); err != nil {
		t.Fatalf("expected file inside dir: %v", err)
	}
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	if err := Writer(&buf).Save(context.Background(), "f", []byte("content")); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if buf.String() != "content" {
		t.Fatalf("unexpected content %q", buf.String())
	}
}

func TestArchiveSink(t *testing.T) {
	saver := &mockSaver{}
	s := Archive(saver, "session-a")
	if s.Last() != nil {
		t.Fatalf("expected no export yet")
	}
	if err := s.Save(context.Background(), "pseudo-code.txt", []byte("body")); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(saver.inputs) != 1 || saver.inputs[0].Session != "session-a" || saver.inputs[0].Content != "body" {
		t.Fatalf("unexpected inputs %#v", saver.inputs)
	}
	if s.Last() == nil || s.Last().ID != "e1" {
		t.Fatalf("unexpected last export %#v", s.Last())
	}

	forced := errors.New("db down")
	if err := Archive(&mockSaver{err: forced}, "s").Save(context.Background(), "f", nil); !errors.Is(err, forced) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestMultiSink(t *testing.T) {
	var calls []string
	record := func(name string, err error) replay.Sink {
		return replay.SinkFunc(func(ctx context.Context, filename string, content []byte) error {
			calls = append(calls, name)
			return err
		})
	}

	forced := errors.New("boom")
	err := Multi(record("a", nil), record("b", forced), record("c", nil)).Save(context.Background(), "f", nil)
	if !errors.Is(err, forced) {
		t.Fatalf("expected forced error, got %v", err)
	}
	if len(calls) != 2 || calls[0] != "a" || calls[1] != "b" {
		t.Fatalf("unexpected calls %v", calls)
	}
}

func TestRecorderExportToDir(t *testing.T) {
	dir := t.TempDir()
	r := replay.New(replay.Options{})
	r.Record(replay.Event{
		Object:   replay.ObjectRef{Kind: replay.KindMesh, ClassName: "Mesh", ID: "m1"},
		Property: "position",
		Value:    replay.Vector3(1, 0, 0),
	})
	if err := r.Export(context.Background(), Dir(dir)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, replay.DefaultFilename))
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	want := replay.Header + `scene.getMeshByID("m1").position = new BABYLON.Vector3(1, 0, 0);`
	if string(data) != want {
		t.Fatalf("expected %q, got %q", want, data)
	}
}
