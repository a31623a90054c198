package repo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"casetracker/internal/command"
	"casetracker/internal/domain"
	"casetracker/internal/validate"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateID  = errors.New("duplicate case id")
	ErrIDsExhausted = errors.New("no free case id")
)

const maxIDAttempts = 1000

// Entry is one position in the collection: a case, or a persisted line that
// could not be read and is kept verbatim.
type Entry struct {
	Case *domain.Case
	Raw  string
}

// Repo is the ordered in-memory case collection. Deleted cases stay in place
// and keep their ids reserved.
type Repo struct {
	Now   func() time.Time
	NewID func() string

	entries []Entry
	index   map[string]int
}

// New returns an empty repository using the wall clock and random ids.
func New() *Repo {
	return &Repo{Now: time.Now, NewID: RandomID, index: map[string]int{}}
}

// RandomID returns six upper-case hex digits drawn from a random UUID.
func RandomID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:validate.CaseIDLength])
}

func (r *Repo) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func key(id string) string { return strings.ToUpper(id) }

func (r *Repo) reserved(id string) bool {
	_, ok := r.index[key(id)]
	return ok
}

// Add appends c. Ids are compared case-insensitively against every entry,
// deleted ones included.
func (r *Repo) Add(c *domain.Case) error {
	if r.index == nil {
		r.index = map[string]int{}
	}
	if r.reserved(c.ID()) {
		return fmt.Errorf("%w: %s", ErrDuplicateID, c.ID())
	}
	r.index[key(c.ID())] = len(r.entries)
	r.entries = append(r.entries, Entry{Case: c})
	return nil
}

// GenerateID returns an id no entry uses.
func (r *Repo) GenerateID() (string, error) {
	newID := r.NewID
	if newID == nil {
		newID = RandomID
	}
	for i := 0; i < maxIDAttempts; i++ {
		id := key(newID())
		if validate.IsValidCaseID(id) && !r.reserved(id) {
			return id, nil
		}
	}
	return "", ErrIDsExhausted
}

// Create builds an open case with a fresh id and adds it. extra holds
// variant fields and must fit the category's schema.
func (r *Repo) Create(category string, d domain.Details, extra domain.Changes) (*domain.Case, error) {
	cat, ok := domain.ParseCategory(category)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidCategory, category)
	}
	id, err := r.GenerateID()
	if err != nil {
		return nil, err
	}
	now := r.now()
	c := domain.New(id, cat, d, now)
	if err := c.CheckChanges(extra); err != nil {
		return nil, err
	}
	c.Update(extra, now)
	if err := r.Add(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns the live case with id.
func (r *Repo) Get(id string) (*domain.Case, error) {
	i, ok := r.index[key(id)]
	if !ok {
		return nil, fmt.Errorf("case %s: %w", key(id), ErrNotFound)
	}
	c := r.entries[i].Case
	if c == nil || c.IsDeleted() {
		return nil, fmt.Errorf("case %s: %w", key(id), ErrNotFound)
	}
	return c, nil
}

// Find returns live cases whose text fields contain keyword.
func (r *Repo) Find(keyword string) []*domain.Case {
	var out []*domain.Case
	for _, c := range r.live() {
		if c.Matches(keyword) {
			out = append(out, c)
		}
	}
	return out
}

// List returns live cases with the given status, in insertion order.
func (r *Repo) List(status command.ListStatus) []*domain.Case {
	var out []*domain.Case
	for _, c := range r.live() {
		switch {
		case status == command.ListOpen && !c.IsOpen():
		case status == command.ListClosed && c.IsOpen():
		default:
			out = append(out, c)
		}
	}
	return out
}

func (r *Repo) live() []*domain.Case {
	out := make([]*domain.Case, 0, len(r.entries))
	for _, e := range r.entries {
		if e.Case != nil && !e.Case.IsDeleted() {
			out = append(out, e.Case)
		}
	}
	return out
}

// Close marks the case closed.
func (r *Repo) Close(id string) (*domain.Case, error) {
	c, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return c, c.Close(r.now())
}

// Reopen marks the case open.
func (r *Repo) Reopen(id string) (*domain.Case, error) {
	c, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return c, c.Reopen(r.now())
}

// Delete tombstones the case. It stays in the collection.
func (r *Repo) Delete(id string) (*domain.Case, error) {
	c, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	c.MarkDeleted(r.now())
	return c, nil
}

// Edit applies changes all-or-nothing: if any flag is outside the case's
// edit surface nothing is written.
func (r *Repo) Edit(id string, changes domain.Changes) (*domain.Case, error) {
	c, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	if err := c.CheckChanges(changes); err != nil {
		return c, err
	}
	c.Update(changes, r.now())
	return c, nil
}

// Len counts live cases.
func (r *Repo) Len() int { return len(r.live()) }

// Entries returns the collection in order, for persistence.
func (r *Repo) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Load replaces the collection. A case whose id is already taken is kept as
// a raw line and reported.
func (r *Repo) Load(entries []Entry) []error {
	r.entries = nil
	r.index = map[string]int{}
	var errs []error
	for _, e := range entries {
		if e.Case != nil {
			if err := r.Add(e.Case); err != nil {
				errs = append(errs, err)
				r.entries = append(r.entries, Entry{Raw: e.Case.SaveString()})
			}
			continue
		}
		if id, ok := rawID(e.Raw); ok && !r.reserved(id) {
			r.index[key(id)] = len(r.entries)
		}
		r.entries = append(r.entries, Entry{Raw: e.Raw})
	}
	return errs
}

// rawID extracts a well-formed id from an unreadable line so it is not
// handed out again.
func rawID(line string) (string, bool) {
	first, _, _ := strings.Cut(line, "|")
	k, v, ok := strings.Cut(first, ":")
	if !ok || k != "id" || !validate.IsValidCaseID(v) {
		return "", false
	}
	return v, true
}
