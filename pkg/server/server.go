package server

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/bastiangx/suggestscope/internal/logger"
	"github.com/bastiangx/suggestscope/internal/utils"
	"github.com/bastiangx/suggestscope/pkg/export"
	"github.com/bastiangx/suggestscope/pkg/pipeline"
	"github.com/bastiangx/suggestscope/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for pipeline runs
type Server struct {
	runner       pipeline.Runner
	decoder      *msgpack.Decoder
	encoder      *msgpack.Encoder
	logger       *log.Logger
	requestCount int
}

// NewServer creates a server reading requests from r and writing responses to w.
func NewServer(runner pipeline.Runner, r io.Reader, w io.Writer) *Server {
	return &Server{
		runner:  runner,
		decoder: msgpack.NewDecoder(r),
		encoder: msgpack.NewEncoder(w),
		logger:  logger.New("ipc"),
	}
}

// Start signals readiness and serves requests until the input ends or ctx is done.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Debug("Starting server")
	if err := s.send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		var req RunRequest
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debug("Input closed", "requests", s.requestCount)
				return nil
			}
			s.logger.Errorf("Decoding request: %v", err)
			// the stream position is unknown after a bad message
			_ = s.sendError("", "invalid msgpack request", CodeBadRequest)
			return err
		}

		s.requestCount++
		if err := s.handleRequest(ctx, req); err != nil {
			return err
		}
	}
}

// handleRequest dispatches on Action. Only write failures are returned.
func (s *Server) handleRequest(ctx context.Context, req RunRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	switch req.Action {
	case "", "run":
		return s.handleRun(ctx, req)
	case "health":
		return s.send(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		return s.sendError(req.ID, "unknown action: "+req.Action, CodeBadRequest)
	}
}

func (s *Server) handleRun(ctx context.Context, req RunRequest) error {
	s.logger.Debug("Run request", "id", req.ID, "query", utils.Truncate(req.Query, 60))

	start := time.Now()
	out, err := s.runner.Run(ctx, req.Query)
	if err != nil {
		code := errorCode(err)
		s.logger.Warn("Run failed", "id", req.ID, "code", code, "err", err)
		return s.sendError(req.ID, err.Error(), code)
	}

	names := out.Result.Categories()
	categories := make([]CategoryResult, len(names))
	for i, name := range names {
		categories[i] = CategoryResult{Name: name, Suggestions: out.Result.Get(name)}
	}

	return s.send(RunResponse{
		ID:         req.ID,
		Categories: categories,
		Location:   out.Location,
		TimeTaken:  time.Since(start).Milliseconds(),
	})
}

func errorCode(err error) int {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return CodeCanceled
	case errors.Is(err, export.ErrExport):
		return CodeExportError
	case errors.Is(err, suggest.ErrFetch):
		return CodeFetchError
	default:
		return CodeExportError
	}
}

func (s *Server) send(v any) error {
	if err := s.encoder.Encode(v); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return err
	}
	return nil
}

func (s *Server) sendError(id, message string, code int) error {
	return s.send(RunError{ID: id, Error: message, Code: code})
}
