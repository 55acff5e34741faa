// Package tui provides the Bubble Tea front ends of the shooter: live play,
// replay viewing, the scoreboard and an SSH server built on Wish.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"golang.org/x/time/rate"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/metrics"
	"github.com/vovakirdan/tui-shooter/internal/registry"
	"github.com/vovakirdan/tui-shooter/internal/save"
	"github.com/vovakirdan/tui-shooter/internal/storage"
)

// SSHServerOptions configure the SSH server.
type SSHServerOptions struct {
	Server   config.ServerConfig
	TickRate int
	Archive  *Archive
	Metrics  *metrics.Metrics // may be nil
	Logger   *log.Logger
}

// SSHServer wraps a Wish SSH server. Each session gets its own menu and
// runs; finished runs go to the shared archive.
type SSHServer struct {
	opts    SSHServerOptions
	server  *ssh.Server
	limiter *rate.Limiter
	active  atomic.Int32
	logger  *log.Logger
}

// NewSSHServer creates a new SSH server with the given options.
func NewSSHServer(opts SSHServerOptions) (*SSHServer, error) {
	cfg := opts.Server
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "shooter-ssh",
		})
	}

	// A non-positive rate disables the limit.
	limit := rate.Inf
	if cfg.SessionRate > 0 {
		limit = rate.Limit(cfg.SessionRate)
	}
	srv := &SSHServer{
		opts:    opts,
		limiter: rate.NewLimiter(limit, max(1, cfg.SessionBurst)),
		logger:  logger,
	}

	hostKeyPath := config.ExpandPath(cfg.HostKeyPath)
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".shooter", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	// Middleware runs last to first: admission, then logging, then the program.
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
			srv.admissionMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		if s.opts.Metrics != nil {
			s.opts.Metrics.RecordRejected(metrics.ReasonNoPTY)
		}
		return nil, nil
	}

	model := NewSessionModel(s.opts.Archive, PlayOptions{
		Players:  1,
		TickRate: s.opts.TickRate,
		Width:    pty.Window.Width,
		Height:   pty.Window.Height,
		Player:   sess.User(),
		Archive:  s.opts.Archive,
		Metrics:  s.opts.Metrics,
	})
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// admissionMiddleware refuses sessions over the rate limit or capacity.
func (s *SSHServer) admissionMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		reason := ""
		switch {
		case !s.limiter.Allow():
			reason = metrics.ReasonRateLimit
		case s.opts.Server.MaxSessions > 0 && int(s.active.Load()) >= s.opts.Server.MaxSessions:
			reason = metrics.ReasonCapacity
		}
		if reason != "" {
			s.logger.Warn("session refused", "user", sess.User(), "remote", sess.RemoteAddr().String(), "reason", reason)
			if s.opts.Metrics != nil {
				s.opts.Metrics.RecordRejected(reason)
			}
			wish.Fatalln(sess, "server busy, try again later")
			return
		}

		s.active.Add(1)
		defer s.active.Add(-1)
		if s.opts.Metrics != nil {
			s.opts.Metrics.SessionStarted()
			defer s.opts.Metrics.SessionEnded()
		}
		next(sess)
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.opts.Server.Address)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.opts.Server.Address
}

// Active returns the number of admitted sessions.
func (s *SSHServer) Active() int {
	return int(s.active.Load())
}

// SessionModel manages the full session flow: menu -> game or scoreboard -> menu.
// It is the top-level model for SSH sessions and the local "play" menu.
type SessionModel struct {
	archive    *Archive
	opts       PlayOptions
	menu       MenuModel
	scoreboard *ScoreboardModel
	game       *Model
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(archive *Archive, opts PlayOptions) SessionModel {
	m := SessionModel{archive: archive, opts: opts}
	m.menu = NewMenuModel(m.loadSave(), opts.Players, opts.Width, opts.Height)
	return m
}

// loadSave reads the shared save file, falling back to a fresh one.
func (m SessionModel) loadSave() *save.SaveGame {
	if m.archive == nil || m.archive.SavePath == "" {
		return nil
	}
	sg, err := save.LoadFile(config.ExpandPath(m.archive.SavePath))
	if err != nil {
		if m.archive.Logger != nil {
			m.archive.Logger.Warn("could not read save file", "error", err)
		}
		return nil
	}
	return sg
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Width = wsm.Width
		m.opts.Height = wsm.Height
	}

	switch {
	case m.game != nil:
		return m.updateGame(msg)
	case m.scoreboard != nil:
		return m.updateScoreboard(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		var store *storage.Store
		if m.archive != nil {
			store = m.archive.Store
		}
		sb := NewScoreboardModel(m.loadSave(), store, m.opts.Width, m.opts.Height)
		m.scoreboard = &sb
		return m, sb.Init()

	case m.menu.Selected() != nil:
		game, err := registry.Create(m.menu.Selected().ModeID)
		if err != nil {
			// Unreachable: the menu lists registered modes only.
			return m, nil
		}
		opts := m.opts
		opts.Players = m.menu.Players()
		gm := NewModel(game, opts)
		m.game = &gm
		return m, gm.Init()
	}

	return m, cmd
}

// updateScoreboard handles updates while the scoreboard is shown.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		return m.backToMenu()
	}
	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	players := m.menu.Players()
	m.game = nil
	m.scoreboard = nil
	m.menu = NewMenuModel(m.loadSave(), players, m.opts.Width, m.opts.Height)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.game != nil:
		return m.game.View()
	case m.scoreboard != nil:
		return m.scoreboard.View()
	}
	return m.menu.View()
}

// RunSession runs the menu-driven session in the local terminal.
func RunSession(archive *Archive, opts PlayOptions) error {
	p := tea.NewProgram(NewSessionModel(archive, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
