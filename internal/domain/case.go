package domain

import (
	"strings"
	"time"
)

// Details holds the common fields supplied when a case is created.
type Details struct {
	Title   string
	Date    time.Time
	Info    string
	Victim  string
	Officer string
}

// Case is one incident record. Its id and category never change after
// construction; every mutation goes through a method that refreshes UpdatedAt.
type Case struct {
	id        string
	category  Category
	title     string
	date      time.Time
	info      string
	victim    string
	officer   string
	open      bool
	deleted   bool
	createdAt time.Time
	updatedAt time.Time
	fields    map[string]Value
}

// New returns an open case created at now.
func New(id string, category Category, d Details, now time.Time) *Case {
	return &Case{
		id:        id,
		category:  category,
		title:     d.Title,
		date:      dateOnly(d.Date),
		info:      d.Info,
		victim:    d.Victim,
		officer:   d.Officer,
		open:      true,
		createdAt: now,
		updatedAt: now,
		fields:    map[string]Value{},
	}
}

func (c *Case) ID() string           { return c.id }
func (c *Case) Category() Category   { return c.category }
func (c *Case) Title() string        { return c.title }
func (c *Case) Date() time.Time      { return c.date }
func (c *Case) Info() string         { return c.info }
func (c *Case) Victim() string       { return c.victim }
func (c *Case) Officer() string      { return c.officer }
func (c *Case) IsOpen() bool         { return c.open }
func (c *Case) IsDeleted() bool      { return c.deleted }
func (c *Case) CreatedAt() time.Time { return c.createdAt }
func (c *Case) UpdatedAt() time.Time { return c.updatedAt }

// Field returns a variant field value, null when unset or not in the schema.
func (c *Case) Field(name string) Value {
	return c.fields[name]
}

// Schema returns the variant fields of the case's category.
func (c *Case) Schema() []FieldSpec {
	return Schema(c.category)
}

// ValidEditFlags lists the common flags followed by the category's variant flags.
func (c *Case) ValidEditFlags() []string {
	out := make([]string, 0, len(commonFields)+len(schemas[c.category]))
	for _, f := range commonFields {
		out = append(out, f.Name)
	}
	for _, f := range schemas[c.category] {
		out = append(out, f.Name)
	}
	return out
}

func (c *Case) spec(name string) (FieldSpec, bool) {
	for _, f := range commonFields {
		if f.Name == name {
			return f, true
		}
	}
	for _, f := range schemas[c.category] {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// CheckChanges validates every change against the case's edit surface
// without applying anything. Unknown flags are all reported together.
func (c *Case) CheckChanges(changes Changes) error {
	var invalid []string
	for _, name := range changes.Names() {
		if _, ok := c.spec(name); !ok {
			invalid = append(invalid, name)
		}
	}
	if len(invalid) > 0 {
		return &InvalidFlagsError{Flags: invalid, Valid: c.ValidEditFlags()}
	}
	for _, name := range changes.Names() {
		v := changes[name]
		if v.IsNull() {
			continue
		}
		spec, _ := c.spec(name)
		if v.Kind() != spec.Kind {
			return &ValueKindError{Flag: name, Want: spec.Kind, Got: v.Kind()}
		}
	}
	return nil
}

// Update applies every non-null change. Null values and flags outside the
// edit surface leave the case untouched.
func (c *Case) Update(changes Changes, now time.Time) {
	touched := false
	for _, name := range changes.Names() {
		v := changes[name]
		if v.IsNull() {
			continue
		}
		if c.set(name, v) {
			touched = true
		}
	}
	if touched {
		c.updatedAt = now
	}
}

func (c *Case) set(name string, v Value) bool {
	spec, ok := c.spec(name)
	if !ok || spec.Kind != v.Kind() {
		return false
	}
	switch name {
	case FieldTitle:
		c.title = v.Text()
	case FieldDate:
		c.date = v.Time()
	case FieldInfo:
		c.info = v.Text()
	case FieldVictim:
		c.victim = v.Text()
	case FieldOfficer:
		c.officer = v.Text()
	default:
		c.fields[name] = v
	}
	return true
}

// Close marks an open case closed.
func (c *Case) Close(now time.Time) error {
	if !c.open {
		return ErrAlreadyClosed
	}
	c.open = false
	c.updatedAt = now
	return nil
}

// Reopen marks a closed case open.
func (c *Case) Reopen(now time.Time) error {
	if c.open {
		return ErrAlreadyOpen
	}
	c.open = true
	c.updatedAt = now
	return nil
}

// MarkDeleted sets the tombstone.
func (c *Case) MarkDeleted(now time.Time) {
	c.deleted = true
	c.updatedAt = now
}

// Matches reports whether keyword occurs in the title, info, victim or
// officer, ignoring case.
func (c *Case) Matches(keyword string) bool {
	kw := strings.ToLower(keyword)
	for _, s := range []string{c.title, c.info, c.victim, c.officer} {
		if strings.Contains(strings.ToLower(s), kw) {
			return true
		}
	}
	return false
}

// StatusLabel is "Open" or "Closed".
func (c *Case) StatusLabel() string {
	if c.open {
		return "Open"
	}
	return "Closed"
}
