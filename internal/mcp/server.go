package mcp

import (
	"context"
	"sync"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"replayrec/internal/replay"
	"replayrec/internal/store"
)

// Archive lists previously exported scripts. It is optional.
type Archive interface {
	ListExports(ctx context.Context, session string) ([]store.ExportSummary, error)
	GetExport(ctx context.Context, id string) (*store.Export, error)
}

type Options struct {
	Version string
	Sink    replay.Sink
	Archive Archive
	Logger  zerolog.Logger
}

// Server exposes one recorder over MCP. Tool calls may arrive concurrently,
// so access to the recorder is serialised.
type Server struct {
	mu       sync.Mutex
	recorder *replay.Recorder
	sink     replay.Sink
	archive  Archive
	log      zerolog.Logger
	mcp      *sdk.Server
}

func NewServer(recorder *replay.Recorder, opts Options) *Server {
	s := &Server{
		recorder: recorder,
		sink:     opts.Sink,
		archive:  opts.Archive,
		log:      opts.Logger,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "replayrec",
			Version: opts.Version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	s.log.Info().Msg("mcp server starting")
	return s.mcp.Run(ctx, transport)
}
