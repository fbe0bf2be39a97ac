package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/hextrap/internal/core"
	"github.com/vovakirdan/hextrap/internal/registry"
	"github.com/vovakirdan/hextrap/internal/stats"
	"github.com/vovakirdan/hextrap/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.hextrap/host_key.
	HostKeyPath string

	// StatsDir holds one stats file per SSH user under StatsDir/ssh.
	StatsDir string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate of every session.
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		StatsDir:    "./configs",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// SSHServer serves hextrap sessions over SSH with Wish.
type SSHServer struct {
	config SSHServerConfig
	env    registry.Env
	server *ssh.Server
	logger *log.Logger

	mu    sync.Mutex
	stats map[string]*stats.Store // per user, shared by their sessions
}

// NewSSHServer creates a new SSH server. env supplies the configuration,
// the shared history and the logger; its Stats field is replaced per user.
func NewSSHServer(cfg SSHServerConfig, env registry.Env) (*SSHServer, error) {
	logger := env.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "hextrap-ssh",
		})
		env.Logger = logger
	}

	srv := &SSHServer{
		config: cfg,
		env:    env,
		logger: logger,
		stats:  make(map[string]*stats.Store),
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".hextrap", "host_key")
	}

	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// statsPath returns the stats file of an SSH user.
func (s *SSHServer) statsPath(user string) string {
	return filepath.Join(s.config.StatsDir, "ssh", sanitizeUser(user)+".json")
}

// sanitizeUser turns an SSH user name into a safe file name.
func sanitizeUser(user string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		}
		return '_'
	}, user)
	clean = strings.Trim(clean, ".")
	if clean == "" {
		return "anonymous"
	}
	return clean
}

// userStats opens or reuses the stats store of user. Stores are keyed by
// file name, so names that sanitize alike share one store.
func (s *SSHServer) userStats(user string) (*stats.Store, error) {
	name := sanitizeUser(user)

	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.stats[name]; ok {
		return st, nil
	}
	st, err := stats.Open(s.statsPath(name))
	if err != nil {
		return nil, err
	}
	s.stats[name] = st
	return st, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	user := sshSession.User()
	st, err := s.userStats(user)
	if err != nil {
		s.logger.Error("cannot open stats", "user", user, "err", err)
		wish.Fatalln(sshSession, "hextrap: cannot open your stats file")
		return nil, nil
	}

	env := s.env
	env.Stats = st
	env.Logger = s.logger.With("user", user)

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
		Player:   user,
	}

	var history *storage.Store
	if h, ok := env.History.(*storage.Store); ok {
		history = h
	}

	model := NewSessionModel(env, history, st, cfg)
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-done:
	case err := <-errc:
		return fmt.Errorf("ssh server: %w", err)
	}
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server and flushes every user's stats.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	for user, st := range s.stats {
		if flushErr := st.Flush(); flushErr != nil {
			s.logger.Error("cannot flush stats", "user", user, "err", flushErr)
			err = errors.Join(err, flushErr)
		}
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// Screens of a SessionModel.
const (
	screenMenu = iota
	screenGame
	screenStats
)

// SessionModel manages one player's session: menu -> game or stats -> menu.
// It is the top-level model of SSH sessions.
type SessionModel struct {
	env      registry.Env
	history  *storage.Store
	record   *stats.Store
	config   core.RuntimeConfig
	variant  string
	screen   int
	menu     MenuModel
	game     Model
	stats    StatsModel
	err      error
	quitting bool
}

// NewSessionModel creates a session model. record backs the menu and stats
// screens; env.Stats must write to the same record.
func NewSessionModel(env registry.Env, history *storage.Store, record *stats.Store, cfg core.RuntimeConfig) SessionModel {
	variant := env.Config.Board.DefaultVariant
	return SessionModel{
		env:     env,
		history: history,
		record:  record,
		config:  cfg,
		variant: variant,
		menu:    NewMenuModel(cfg, record.Current(), variant),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenStats:
		return m.updateStats(msg)
	}
	return m.updateMenu(msg)
}

// toMenu rebuilds the menu with the latest record.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.config, m.record.Current(), m.variant)
	return m, m.menu.Init()
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

	case m.menu.WantsStats():
		m.screen = screenStats
		m.stats = NewStatsModel(m.record.Current(), m.history, m.config.Player, m.config.ScreenW, m.config.ScreenH).
			WithClipboard(nil)
		return m, m.stats.Init()

	case m.menu.Selected() != "":
		m.variant = m.menu.Selected()
		game, err := registry.Create(m.variant, m.env)
		if err != nil {
			// The menu only lists registered variants.
			return m.toMenu()
		}
		m.config.Seed = time.Now().UnixNano()
		m.game = NewModel(game, m.config)
		m.screen = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = gameModel
	}

	if err := m.game.Err(); err != nil {
		m.err = err
		m.env.Logger.Error("game stopped", "err", err)
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		return m.toMenu()
	}

	return m, cmd
}

// updateStats handles updates when the stats screen is open.
func (m SessionModel) updateStats(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.stats.Update(msg)
	if statsModel, ok := newModel.(StatsModel); ok {
		m.stats = statsModel
	}

	if m.stats.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.stats.IsGoingBack() {
		return m.toMenu()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenStats:
		return m.stats.View()
	}
	return m.menu.View()
}

// Err returns the failure that ended the session, if any.
func (m SessionModel) Err() error {
	return m.err
}
