package app

import (
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"casetracker/internal/domain"
	"casetracker/internal/repo"
)

var weapons = []string{"knife", "bat", "handgun", "crowbar", "bottle", "rope"}
var devices = []string{"phone camera", "hidden camera", "drone", "binoculars"}
var media = []string{"phone call", "email", "text message", "social media", "website"}

// Seed adds count realistic cases across every category. The same seed
// yields the same case content; ids still come from the repository.
func Seed(r *repo.Repo, count int, seed int64) ([]*domain.Case, error) {
	f := gofakeit.New(seed)
	cats := domain.Categories()
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	out := make([]*domain.Case, 0, count)
	for i := 0; i < count; i++ {
		cat := cats[f.Number(0, len(cats)-1)]
		d := domain.Details{
			Title: clean(strings.TrimSuffix(f.Sentence(f.Number(2, 6)), ".")),
			Date:  f.DateRange(start, end),
			Info:  clean(f.Paragraph(1, f.Number(1, 3), 10, " ")),
		}
		if f.Bool() {
			d.Victim = clean(f.Name())
		}
		if f.Bool() {
			d.Officer = clean("Sgt. " + f.LastName())
		}
		extra := domain.Changes{}
		for _, spec := range domain.Schema(cat) {
			extra[spec.Name] = fakeValue(f, spec)
		}
		c, err := r.Create(string(cat), d, extra)
		if err != nil {
			return out, err
		}
		if f.Number(0, 3) == 0 {
			if _, err := r.Close(c.ID()); err != nil {
				return out, err
			}
		}
		out = append(out, c)
	}
	return out, nil
}

func fakeValue(f *gofakeit.Faker, spec domain.FieldSpec) domain.Value {
	if spec.Kind == domain.KindCount {
		return domain.CountValue(f.Number(0, 5000))
	}
	var s string
	switch spec.Name {
	case "location", "road-name":
		s = f.Street()
	case "vehicle-type":
		s = f.CarType()
	case "vehicle-plate":
		s = strings.ToUpper(f.LetterN(3)) + f.DigitN(4)
	case "weapon":
		s = f.RandomString(weapons)
	case "device-used":
		s = f.RandomString(devices)
	case "scam-medium":
		s = f.RandomString(media)
	case "suspect":
		s = f.Name()
	default:
		s = f.Noun()
	}
	return domain.TextValue(clean(s))
}

// clean keeps printable ASCII other than the record delimiter.
func clean(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e || r == '|' {
			return -1
		}
		return r
	}, s)
}
