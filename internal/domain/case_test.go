package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casetracker/internal/domain"
)

var (
	t0 = time.Date(2025, 10, 14, 9, 30, 0, 0, time.Local)
	t1 = t0.Add(time.Hour)
)

func newTheft() *domain.Case {
	return domain.New("A1B2C3", domain.Theft, domain.Details{
		Title:   "Shop Theft",
		Date:    time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC),
		Info:    "Stolen electronics",
		Victim:  "John Tan",
		Officer: "Sgt. Lim",
	}, t0)
}

func TestParseCategory(t *testing.T) {
	for _, name := range []string{"theft", "THEFT", " Theft "} {
		c, ok := domain.ParseCategory(name)
		assert.True(t, ok, name)
		assert.Equal(t, domain.Theft, c)
	}
	_, ok := domain.ParseCategory("jaywalking")
	assert.False(t, ok)
	assert.Len(t, domain.Categories(), 13)
}

func TestLookupFieldKindsAreConsistent(t *testing.T) {
	for _, c := range domain.Categories() {
		for _, f := range domain.Schema(c) {
			got, ok := domain.LookupField(f.Name)
			require.True(t, ok, f.Name)
			assert.Equal(t, f.Kind, got.Kind, f.Name)
		}
	}
	_, ok := domain.LookupField("unknownflag")
	assert.False(t, ok)
}

func TestValidEditFlags(t *testing.T) {
	m := domain.New("000001", domain.Murder, domain.Details{Title: "x"}, t0)
	assert.Equal(t, []string{"title", "date", "info", "victim", "officer", "weapon", "number-of-victims"}, m.ValidEditFlags())

	s := domain.New("000002", domain.Speeding, domain.Details{Title: "x"}, t0)
	assert.Equal(t, []string{
		"title", "date", "info", "victim", "officer",
		"vehicle-type", "vehicle-plate", "road-name", "speed-limit", "exceeded-speed",
	}, s.ValidEditFlags())
}

func TestNewCaseIsOpen(t *testing.T) {
	c := newTheft()
	assert.True(t, c.IsOpen())
	assert.False(t, c.IsDeleted())
	assert.Equal(t, t0, c.CreatedAt())
	assert.Equal(t, t0, c.UpdatedAt())
	assert.True(t, c.Field("stolen-object").IsNull())
}

func TestUpdateAppliesAndTouches(t *testing.T) {
	c := newTheft()
	c.Update(domain.Changes{
		"title":        domain.TextValue("New"),
		"stolen-value": domain.CountValue(250),
	}, t1)
	assert.Equal(t, "New", c.Title())
	assert.Equal(t, 250, c.Field("stolen-value").Count())
	assert.Equal(t, "Stolen electronics", c.Info())
	assert.Equal(t, t1, c.UpdatedAt())
	assert.Equal(t, t0, c.CreatedAt())
}

func TestUpdateIgnoresNull(t *testing.T) {
	c := domain.New("000001", domain.Murder, domain.Details{Title: "Case"}, t0)
	c.Update(domain.Changes{"weapon": domain.TextValue("Knife")}, t0)
	c.Update(domain.Changes{"weapon": domain.Null}, t1)
	assert.Equal(t, "Knife", c.Field("weapon").Text())
	assert.Equal(t, t0, c.UpdatedAt())
}

func TestCheckChangesReportsEveryInvalidFlag(t *testing.T) {
	c := newTheft()
	err := c.CheckChanges(domain.Changes{
		"title":       domain.TextValue("New"),
		"weapon":      domain.TextValue("Knife"),
		"unknownflag": domain.TextValue("x"),
	})
	var inv *domain.InvalidFlagsError
	require.True(t, errors.As(err, &inv))
	assert.Equal(t, []string{"unknownflag", "weapon"}, inv.Flags)
	assert.Equal(t, c.ValidEditFlags(), inv.Valid)
	assert.Contains(t, err.Error(), "--unknownflag")
}

func TestCheckChangesRejectsWrongKind(t *testing.T) {
	c := newTheft()
	err := c.CheckChanges(domain.Changes{"stolen-value": domain.TextValue("lots")})
	var kind *domain.ValueKindError
	require.True(t, errors.As(err, &kind))
	assert.Equal(t, "stolen-value", kind.Flag)
	assert.NoError(t, c.CheckChanges(domain.Changes{"stolen-value": domain.CountValue(3)}))
}

func TestCloseReopen(t *testing.T) {
	c := newTheft()
	require.NoError(t, c.Close(t1))
	assert.False(t, c.IsOpen())
	assert.ErrorIs(t, c.Close(t1), domain.ErrAlreadyClosed)

	t2 := t1.Add(time.Minute)
	require.NoError(t, c.Reopen(t2))
	assert.True(t, c.IsOpen())
	assert.Equal(t, t2, c.UpdatedAt())
	assert.ErrorIs(t, c.Reopen(t2), domain.ErrAlreadyOpen)
}

func TestMatches(t *testing.T) {
	c := newTheft()
	assert.True(t, c.Matches("shop"))
	assert.True(t, c.Matches("ELECTRONICS"))
	assert.True(t, c.Matches("tan"))
	assert.True(t, c.Matches("lim"))
	assert.False(t, c.Matches("Theft of"))
	assert.False(t, c.Matches("A1B2C3"))
}
