// Package sink provides destinations for recorder exports.
package sink

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"replayrec/internal/replay"
	"replayrec/internal/store"
)

var (
	_ replay.Sink = (*DirSink)(nil)
	_ replay.Sink = (*WriterSink)(nil)
	_ replay.Sink = (*ArchiveSink)(nil)
	_ replay.Sink = MultiSink(nil)
)

// DirSink writes each export into a directory under its own filename.
type DirSink struct {
	dir string
}

func Dir(dir string) *DirSink {
	return &DirSink{dir: dir}
}

func (s *DirSink) Save(ctx context.Context, filename string, content []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", s.dir, err)
	}
	path := filepath.Join(s.dir, filepath.Base(filename))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

type WriterSink struct {
	w io.Writer
}

func Writer(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Save(ctx context.Context, filename string, content []byte) error {
	if _, err := s.w.Write(content); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return nil
}

type ExportSaver interface {
	SaveExport(ctx context.Context, in store.ExportInput) (*store.Export, error)
}

// ArchiveSink keeps every export in the archive store under a session name.
type ArchiveSink struct {
	saver   ExportSaver
	session string
	last    *store.Export
}

func Archive(saver ExportSaver, session string) *ArchiveSink {
	return &ArchiveSink{saver: saver, session: session}
}

func (s *ArchiveSink) Save(ctx context.Context, filename string, content []byte) error {
	saved, err := s.saver.SaveExport(ctx, store.ExportInput{
		Session:  s.session,
		Filename: filename,
		Content:  string(content),
	})
	if err != nil {
		return fmt.Errorf("archiving %s: %w", filename, err)
	}
	s.last = saved
	return nil
}

// Last returns the most recently archived export, nil before the first save.
func (s *ArchiveSink) Last() *store.Export {
	return s.last
}

// MultiSink saves to every sink in order and stops at the first failure.
type MultiSink []replay.Sink

func Multi(sinks ...replay.Sink) MultiSink {
	return MultiSink(sinks)
}

func (m MultiSink) Save(ctx context.Context, filename string, content []byte) error {
	for _, s := range m {
		if err := s.Save(ctx, filename, content); err != nil {
			return err
		}
	}
	return nil
}
