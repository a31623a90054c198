package config

import (
	"time"

	"casetracker/internal/domain"
)

// Settings holds the active date patterns and their compiled layouts. A
// failed change never replaces the current pattern.
type Settings struct {
	cfg       Config
	input     string
	output    string
	timestamp string
}

// NewSettings compiles cfg.
func NewSettings(cfg *Config) (*Settings, error) {
	if cfg == nil {
		cfg = Default()
	}
	s := &Settings{cfg: *cfg}
	var err error
	if s.input, err = CompileDate(cfg.Dates.Input); err != nil {
		return nil, err
	}
	if s.output, err = CompileDate(cfg.Dates.Output); err != nil {
		return nil, err
	}
	if s.timestamp, err = CompileTimestamp(cfg.Dates.Timestamp); err != nil {
		return nil, err
	}
	return s, nil
}

// DefaultSettings returns the built-in patterns.
func DefaultSettings() *Settings {
	s, err := NewSettings(Default())
	if err != nil {
		panic(err)
	}
	return s
}

// Config returns a copy of the active patterns.
func (s *Settings) Config() *Config {
	c := s.cfg
	return &c
}

// ParseDate reads a user-typed date with the input pattern.
func (s *Settings) ParseDate(v string) (time.Time, error) {
	return time.Parse(s.input, v)
}

func (s *Settings) DateInputPattern() string       { return s.cfg.Dates.Input }
func (s *Settings) DateOutputPattern() string      { return s.cfg.Dates.Output }
func (s *Settings) TimestampOutputPattern() string { return s.cfg.Dates.Timestamp }

// Layouts returns the output layouts for rendering cases.
func (s *Settings) Layouts() domain.Layouts {
	return domain.Layouts{Date: s.output, Timestamp: s.timestamp}
}

// SetDateInput replaces the input pattern if it compiles.
func (s *Settings) SetDateInput(pattern string) error {
	layout, err := CompileDate(pattern)
	if err != nil {
		return err
	}
	s.input, s.cfg.Dates.Input = layout, pattern
	return nil
}

// SetDateOutput replaces the date output pattern if it compiles.
func (s *Settings) SetDateOutput(pattern string) error {
	layout, err := CompileDate(pattern)
	if err != nil {
		return err
	}
	s.output, s.cfg.Dates.Output = layout, pattern
	return nil
}

// SetTimestampOutput replaces the timestamp output pattern if it compiles.
func (s *Settings) SetTimestampOutput(pattern string) error {
	layout, err := CompileTimestamp(pattern)
	if err != nil {
		return err
	}
	s.timestamp, s.cfg.Dates.Timestamp = layout, pattern
	return nil
}
