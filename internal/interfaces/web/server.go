package web

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"coinmarker/internal/application/port"
	"coinmarker/internal/application/service"
	"coinmarker/internal/application/usecase/editor"
	"coinmarker/internal/domain/model"
)

// Backend 服务端依赖的应用层能力（svc.ServiceContext 实现）
type Backend interface {
	NewSession(sink port.ViewSink) *editor.Controller
	RenderService() *service.RenderService
	JournalService() *service.JournalService
}

type Options struct {
	Addr              string
	ReadHeaderTimeout time.Duration
}

type Server struct {
	backend  Backend
	opts     Options
	upgrader websocket.Upgrader
	handler  http.Handler

	mu       sync.Mutex
	sessions map[*wsSession]struct{}
}

func NewServer(backend Backend, opts Options) *Server {
	if opts.ReadHeaderTimeout <= 0 {
		opts.ReadHeaderTimeout = 5 * time.Second
	}
	s := &Server{
		backend: backend,
		opts:    opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
		sessions: make(map[*wsSession]struct{}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("POST /api/render", s.handleRender)
	mux.HandleFunc("GET /api/lookups", s.handleLookups)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	s.handler = logRequests(mux)
	return s
}

func (s *Server) Handler() http.Handler { return s.handler }

// Run 监听直到 ctx 结束，然后关闭所有会话
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: s.opts.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.opts.Addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	// hijacked websocket connections are not closed by Shutdown
	s.CloseSessions()
	log.Info().Msg("http server stopped")
	return err
}

// Sessions 当前活跃的 websocket 会话数
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) CloseSessions() {
	s.mu.Lock()
	all := make([]*wsSession, 0, len(s.sessions))
	for ws := range s.sessions {
		all = append(all, ws)
	}
	s.mu.Unlock()

	for _, ws := range all {
		ws.close()
	}
}

func (s *Server) track(ws *wsSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[ws] = struct{}{}
}

func (s *Server) untrack(ws *wsSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, ws)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

type renderRequest struct {
	Text string `json:"text"`
}

type renderResponse struct {
	SessionID string `json:"session_id"`
	Output    string `json:"output"`
	Error     string `json:"error"`
}

const maxRenderBody = 1 << 20

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := decodeJSON(w, r, maxRenderBody, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res := s.backend.RenderService().Render(r.Context(), req.Text)
	writeJSON(w, http.StatusOK, renderResponse{
		SessionID: res.SessionID,
		Output:    res.Output,
		Error:     res.Error,
	})
}

func (s *Server) handleLookups(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := queryInt(q.Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	lookups, err := s.backend.JournalService().Recent(r.Context(), q.Get("symbol"), limit)
	if err != nil {
		log.Error().Err(err).Msg("list lookups failed")
		writeError(w, http.StatusInternalServerError, errors.New("journal unavailable"))
		return
	}
	if lookups == nil {
		lookups = []*model.Lookup{}
	}
	writeJSON(w, http.StatusOK, lookups)
}
