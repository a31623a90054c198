package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"casetracker/internal/config"
	"casetracker/internal/engine"
	"casetracker/internal/events"
	"casetracker/internal/repo"
	"casetracker/internal/store"
)

// Options configure a workspace session.
type Options struct {
	Workspace string
	// DataFile overrides the case file; empty means the workspace default.
	DataFile string
	// Autosave persists after every mutating command.
	Autosave bool
	Logger   *slog.Logger
	Now      func() time.Time
}

// Session owns the settings, repository and engine of one workspace between
// load and close.
type Session struct {
	Settings *config.Settings
	Repo     *repo.Repo
	Engine   *engine.Engine

	opts         Options
	file         store.File
	settingsPath string
	journal      *os.File
	logger       *slog.Logger
}

// Open loads the workspace. Unreadable case lines and a broken settings
// file are logged, never fatal.
func Open(opts Options) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	if _, err := store.EnsureWorkspace(opts.Workspace); err != nil {
		return nil, fmt.Errorf("prepare workspace: %w", err)
	}

	settingsPath := config.Path(opts.Workspace)
	cfg, err := config.LoadOptional(settingsPath)
	if err != nil {
		logger.Warn("settings unreadable, using defaults", "path", settingsPath, "err", err)
		cfg = config.Default()
	}
	settings, err := config.NewSettings(cfg)
	if err != nil {
		return nil, err
	}

	path := opts.DataFile
	if path == "" {
		path = store.Path(opts.Workspace)
	}
	file := store.File{Path: path}
	entries, bad, err := file.Load()
	if err != nil {
		return nil, fmt.Errorf("load cases: %w", err)
	}
	for _, le := range bad {
		logger.Warn("keeping unreadable case line", "file", path, "line", le.Line, "err", le.Err)
	}

	r := repo.New()
	r.Now = now
	for _, err := range r.Load(entries) {
		logger.Warn("keeping case with duplicate id as raw line", "err", err)
	}

	journal, err := events.OpenFile(events.Path(opts.Workspace))
	if err != nil {
		return nil, fmt.Errorf("open event journal: %w", err)
	}

	eng := engine.New(r, settings)
	eng.Events = events.Writer{W: journal, Now: now}
	eng.Logger = logger

	logger.Info("session opened", "file", path, "cases", r.Len(), "unreadable", len(bad))
	return &Session{
		Settings:     settings,
		Repo:         r,
		Engine:       eng,
		opts:         opts,
		file:         file,
		settingsPath: settingsPath,
		journal:      journal,
		logger:       logger,
	}, nil
}

// Path returns the case file in use.
func (s *Session) Path() string { return s.file.Path }

// Execute runs one input line, saving afterwards when it changed state and
// autosave is on. A failed save is reported in the result lines.
func (s *Session) Execute(line string) engine.Result {
	res := s.Engine.Run(line)
	if res.Mutated && s.opts.Autosave {
		if err := s.Save(); err != nil {
			s.logger.Error("autosave failed", "err", err)
			res.Lines = append(res.Lines, "Warning: changes could not be saved: "+err.Error())
		}
	}
	return res
}

// Save writes the cases and the settings.
func (s *Session) Save() error {
	if err := s.file.Save(s.Repo.Entries()); err != nil {
		return fmt.Errorf("save cases: %w", err)
	}
	if err := s.Settings.Config().Save(s.settingsPath); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Close saves and releases the session.
func (s *Session) Close() error {
	err := s.Save()
	if cerr := s.journal.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	s.logger.Info("session closed", "cases", s.Repo.Len(), "err", err)
	return err
}
