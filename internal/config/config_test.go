package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casetracker/internal/domain"
)

func TestCompilePatterns(t *testing.T) {
	for _, p := range []string{DefaultDateInput, DefaultDateOutput, "%d-%m-%Y", "%Y/%m/%d", "%d %b %Y"} {
		_, err := CompileDate(p)
		assert.NoError(t, err, p)
	}
	for _, p := range []string{"", "notapattern", "%d/%m", "%H:%M", "%Y|%m|%d"} {
		_, err := CompileDate(p)
		assert.ErrorIs(t, err, ErrInvalidPattern, p)
	}

	for _, p := range []string{DefaultTimestampOutput, "%Y-%m-%d %H:%M", "%Y-%m-%d %H:%M:%S"} {
		_, err := CompileTimestamp(p)
		assert.NoError(t, err, p)
	}
	for _, p := range []string{"%d/%m/%Y", "%H:%M"} {
		_, err := CompileTimestamp(p)
		assert.ErrorIs(t, err, ErrInvalidPattern, p)
	}
}

func TestSettingsDefaults(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, domain.DefaultLayouts, s.Layouts())
	assert.Equal(t, DefaultDateInput, s.DateInputPattern())

	got, err := s.ParseDate("2025-10-14")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC), got)

	_, err = s.ParseDate("14/10/2025")
	assert.Error(t, err)
}

func TestSettingsChange(t *testing.T) {
	s := DefaultSettings()

	require.NoError(t, s.SetDateInput("%d-%m-%Y"))
	got, err := s.ParseDate("14-10-2025")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, "%d-%m-%Y", s.Config().Dates.Input)

	require.NoError(t, s.SetDateOutput("%Y/%m/%d"))
	assert.Equal(t, "2006/01/02", s.Layouts().Date)

	require.NoError(t, s.SetTimestampOutput("%Y-%m-%d %H:%M"))
	assert.Equal(t, "2006-01-02 15:04", s.Layouts().Timestamp)
}

func TestSettingsRejectKeepsPrevious(t *testing.T) {
	s := DefaultSettings()

	assert.ErrorIs(t, s.SetDateInput("notapattern"), ErrInvalidPattern)
	assert.ErrorIs(t, s.SetDateOutput("%H"), ErrInvalidPattern)
	assert.ErrorIs(t, s.SetTimestampOutput("%d/%m/%Y"), ErrInvalidPattern)

	assert.Equal(t, *Default(), *s.Config())
	assert.Equal(t, domain.DefaultLayouts, s.Layouts())
	_, err := s.ParseDate("2025-10-14")
	assert.NoError(t, err)
}

func TestLoadOptionalMissing(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "settings.yml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveAndLoad(t *testing.T) {
	ws := t.TempDir()
	path := Path(ws)
	assert.Equal(t, filepath.Join(ws, ".casetracker", "settings.yml"), path)

	cfg := Default()
	cfg.Dates.Input = "%d-%m-%Y"
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadOptional(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	loaded, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	_, err = Load(filepath.Join(ws, "missing.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFromYAML(t *testing.T) {
	cfg, err := FromYAML([]byte("dates:\n  output: \"%Y/%m/%d\"\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultDateInput, cfg.Dates.Input)
	assert.Equal(t, "%Y/%m/%d", cfg.Dates.Output)

	_, err = FromYAML([]byte("dates:\n  input: nope\n"))
	assert.ErrorIs(t, err, ErrInvalidPattern)

	_, err = FromYAML([]byte("dates: [1, 2"))
	assert.Error(t, err)
}

func TestLoadOptionalUnreadable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "settings.yml"), 0o755))
	_, err := LoadOptional(filepath.Join(dir, "settings.yml"))
	assert.Error(t, err)
}
