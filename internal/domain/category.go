package domain

import "strings"

// Category classifies a case and fixes its variant field set.
type Category string

const (
	Theft     Category = "Theft"
	Burglary  Category = "Burglary"
	Scam      Category = "Scam"
	Arson     Category = "Arson"
	Vandalism Category = "Vandalism"
	Rape      Category = "Rape"
	Voyeurism Category = "Voyeurism"
	Accident  Category = "Accident"
	Speeding  Category = "Speeding"
	Assault   Category = "Assault"
	Murder    Category = "Murder"
	Robbery   Category = "Robbery"
	Others    Category = "Others"
)

var categories = []Category{
	Theft, Burglary, Scam, Arson, Vandalism, Rape, Voyeurism,
	Accident, Speeding, Assault, Murder, Robbery, Others,
}

// Categories returns every category in display order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// ParseCategory resolves a category name case-insensitively.
func ParseCategory(name string) (Category, bool) {
	name = strings.TrimSpace(name)
	for _, c := range categories {
		if strings.EqualFold(string(c), name) {
			return c, true
		}
	}
	return "", false
}

// Kind is the type of a field value.
type Kind int

const (
	KindNull Kind = iota
	KindText
	KindCount
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindCount:
		return "non-negative whole number"
	case KindDate:
		return "date"
	default:
		return "null"
	}
}

// FieldSpec describes one editable field.
type FieldSpec struct {
	Name  string
	Label string
	Kind  Kind
}

// Common flag names shared by every category.
const (
	FieldTitle   = "title"
	FieldDate    = "date"
	FieldInfo    = "info"
	FieldVictim  = "victim"
	FieldOfficer = "officer"
)

var commonFields = []FieldSpec{
	{Name: FieldTitle, Label: "Title", Kind: KindText},
	{Name: FieldDate, Label: "Date", Kind: KindDate},
	{Name: FieldInfo, Label: "Info", Kind: KindText},
	{Name: FieldVictim, Label: "Victim", Kind: KindText},
	{Name: FieldOfficer, Label: "Officer", Kind: KindText},
}

var (
	stolenObject    = FieldSpec{Name: "stolen-object", Label: "Stolen object", Kind: KindText}
	stolenValue     = FieldSpec{Name: "stolen-value", Label: "Stolen value", Kind: KindCount}
	location        = FieldSpec{Name: "location", Label: "Location", Kind: KindText}
	estimatedDamage = FieldSpec{Name: "estimated-damage", Label: "Estimated damage", Kind: KindCount}
	weapon          = FieldSpec{Name: "weapon", Label: "Weapon", Kind: KindText}
	vehicleType     = FieldSpec{Name: "vehicle-type", Label: "Vehicle type", Kind: KindText}
	vehiclePlate    = FieldSpec{Name: "vehicle-plate", Label: "Vehicle plate", Kind: KindText}
	roadName        = FieldSpec{Name: "road-name", Label: "Road name", Kind: KindText}
)

var schemas = map[Category][]FieldSpec{
	Theft:    {stolenObject, stolenValue},
	Burglary: {location, stolenObject, stolenValue},
	Scam: {
		{Name: "scam-medium", Label: "Scam medium", Kind: KindText},
		{Name: "amount-lost", Label: "Amount lost", Kind: KindCount},
	},
	Arson: {
		location,
		{Name: "property-type", Label: "Property type", Kind: KindText},
		estimatedDamage,
	},
	Vandalism: {
		location,
		{Name: "damaged-object", Label: "Damaged object", Kind: KindText},
		estimatedDamage,
	},
	Rape: {
		location,
		{Name: "suspect", Label: "Suspect", Kind: KindText},
	},
	Voyeurism: {
		location,
		{Name: "device-used", Label: "Device used", Kind: KindText},
	},
	Accident: {
		vehicleType, vehiclePlate, roadName,
		{Name: "number-of-casualties", Label: "Number of casualties", Kind: KindCount},
	},
	Speeding: {
		vehicleType, vehiclePlate, roadName,
		{Name: "speed-limit", Label: "Speed limit", Kind: KindCount},
		{Name: "exceeded-speed", Label: "Exceeded speed", Kind: KindCount},
	},
	Assault: {
		location, weapon,
		{Name: "number-of-attackers", Label: "Number of attackers", Kind: KindCount},
	},
	Murder: {
		weapon,
		{Name: "number-of-victims", Label: "Number of victims", Kind: KindCount},
	},
	Robbery: {location, weapon, stolenValue},
	Others: {
		{Name: "custom-category", Label: "Custom category", Kind: KindText},
	},
}

// Schema returns the variant fields of a category in their fixed order.
func Schema(c Category) []FieldSpec {
	return append([]FieldSpec(nil), schemas[c]...)
}

// CommonFields returns the fields shared by every category.
func CommonFields() []FieldSpec {
	return append([]FieldSpec(nil), commonFields...)
}

// LookupField finds a field by flag name across the common fields and
// every category schema. A name has the same kind wherever it appears.
func LookupField(name string) (FieldSpec, bool) {
	for _, f := range commonFields {
		if f.Name == name {
			return f, true
		}
	}
	for _, c := range categories {
		for _, f := range schemas[c] {
			if f.Name == name {
				return f, true
			}
		}
	}
	return FieldSpec{}, false
}

// VariantFieldNames lists every variant flag name once, in category order.
func VariantFieldNames() []string {
	seen := map[string]bool{}
	var out []string
	for _, c := range categories {
		for _, f := range schemas[c] {
			if !seen[f.Name] {
				seen[f.Name] = true
				out = append(out, f.Name)
			}
		}
	}
	return out
}
