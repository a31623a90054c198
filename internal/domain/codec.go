package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"casetracker/internal/validate"
)

// Storage layouts. They are fixed so a save file reads back the same way
// whatever display patterns are configured.
const (
	SaveDateLayout      = "2006-01-02"
	SaveTimestampLayout = "2006-01-02T15:04:05"
)

// Save-string keys for the common fields, in file order.
const (
	keyID        = "id"
	keyCategory  = "category"
	keyTitle     = "title"
	keyDate      = "date"
	keyInfo      = "info"
	keyVictim    = "victim"
	keyOfficer   = "officer"
	keyIsDeleted = "is-deleted"
	keyIsOpen    = "is-open"
	keyCreatedAt = "created-at"
	keyUpdatedAt = "updated-at"
)

var commonKeys = []string{
	keyID, keyCategory, keyTitle, keyDate, keyInfo, keyVictim, keyOfficer,
	keyIsDeleted, keyIsOpen, keyCreatedAt, keyUpdatedAt,
}

var mandatoryKeys = []string{
	keyID, keyCategory, keyTitle, keyDate, keyInfo,
	keyIsDeleted, keyIsOpen, keyCreatedAt, keyUpdatedAt,
}

// SaveString encodes the case as a single pipe-delimited line of key:value
// pairs. Every key is present; unset values are empty.
func (c *Case) SaveString() string {
	pairs := []string{
		pair(keyID, c.id),
		pair(keyCategory, string(c.category)),
		pair(keyTitle, c.title),
		pair(keyDate, c.date.Format(SaveDateLayout)),
		pair(keyInfo, c.info),
		pair(keyVictim, c.victim),
		pair(keyOfficer, c.officer),
		pair(keyIsDeleted, strconv.FormatBool(c.deleted)),
		pair(keyIsOpen, strconv.FormatBool(c.open)),
		pair(keyCreatedAt, c.createdAt.Format(SaveTimestampLayout)),
		pair(keyUpdatedAt, c.updatedAt.Format(SaveTimestampLayout)),
	}
	for _, f := range schemas[c.category] {
		pairs = append(pairs, pair(f.Name, c.fields[f.Name].String()))
	}
	return strings.Join(pairs, "|")
}

func pair(k, v string) string {
	return k + ":" + v
}

// ParseSaveString decodes a line written by SaveString.
func ParseSaveString(line string) (*Case, error) {
	kv := map[string]string{}
	for _, part := range strings.Split(line, "|") {
		k, v, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("%w: pair %q has no key", ErrMalformedRecord, part)
		}
		if _, dup := kv[k]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrMalformedRecord, k)
		}
		kv[k] = v
	}
	for _, k := range mandatoryKeys {
		if _, ok := kv[k]; !ok {
			return nil, fmt.Errorf("%w: missing key %q", ErrMalformedRecord, k)
		}
	}
	id := kv[keyID]
	if !validate.IsValidCaseID(id) {
		return nil, fmt.Errorf("%w: invalid id %q", ErrMalformedRecord, id)
	}
	category, ok := ParseCategory(kv[keyCategory])
	if !ok {
		return nil, fmt.Errorf("%w: unknown category %q", ErrMalformedRecord, kv[keyCategory])
	}
	allowed := map[string]bool{}
	for _, k := range commonKeys {
		allowed[k] = true
	}
	for _, f := range schemas[category] {
		allowed[f.Name] = true
	}
	for k := range kv {
		if !allowed[k] {
			return nil, fmt.Errorf("%w: unexpected key %q for %s", ErrMalformedRecord, k, category)
		}
	}

	c := &Case{
		id:       id,
		category: category,
		title:    kv[keyTitle],
		info:     kv[keyInfo],
		victim:   kv[keyVictim],
		officer:  kv[keyOfficer],
		fields:   map[string]Value{},
	}
	var err error
	if c.date, err = time.Parse(SaveDateLayout, kv[keyDate]); err != nil {
		return nil, fmt.Errorf("%w: date: %v", ErrMalformedRecord, err)
	}
	if c.deleted, err = strconv.ParseBool(kv[keyIsDeleted]); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedRecord, keyIsDeleted, err)
	}
	if c.open, err = strconv.ParseBool(kv[keyIsOpen]); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedRecord, keyIsOpen, err)
	}
	if c.createdAt, err = time.ParseInLocation(SaveTimestampLayout, kv[keyCreatedAt], time.Local); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedRecord, keyCreatedAt, err)
	}
	if c.updatedAt, err = time.ParseInLocation(SaveTimestampLayout, kv[keyUpdatedAt], time.Local); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedRecord, keyUpdatedAt, err)
	}
	for _, f := range schemas[category] {
		raw := kv[f.Name]
		if raw == "" {
			continue
		}
		switch f.Kind {
		case KindCount:
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%w: %s: %q is not a %s", ErrMalformedRecord, f.Name, raw, f.Kind)
			}
			c.fields[f.Name] = CountValue(n)
		default:
			c.fields[f.Name] = TextValue(raw)
		}
	}
	return c, nil
}
