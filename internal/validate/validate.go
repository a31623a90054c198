// Package validate holds the stateless input predicates consulted by the parser.
package validate

// CaseIDLength is the number of hex characters in a case id.
const CaseIDLength = 6

// IsValidCaseID reports whether s is exactly six hexadecimal characters.
func IsValidCaseID(s string) bool {
	if len(s) != CaseIDLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isHex(s[i]) {
			return false
		}
	}
	return true
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// HasOnlyAllowedFlags reports whether every name in flags is in allowed.
func HasOnlyAllowedFlags(flags, allowed []string) bool {
	return len(DisallowedFlags(flags, allowed)) == 0
}

// HasAllRequiredFlags reports whether every name in required appears in flags.
func HasAllRequiredFlags(flags, required []string) bool {
	return len(MissingFlags(flags, required)) == 0
}

// DisallowedFlags returns the names in flags that are not in allowed, in input order.
func DisallowedFlags(flags, allowed []string) []string {
	set := toSet(allowed)
	var out []string
	for _, f := range flags {
		if _, ok := set[f]; !ok {
			out = append(out, f)
		}
	}
	return out
}

// MissingFlags returns the names in required that are absent from flags, in required order.
func MissingFlags(flags, required []string) []string {
	set := toSet(flags)
	var out []string
	for _, r := range required {
		if _, ok := set[r]; !ok {
			out = append(out, r)
		}
	}
	return out
}

// IsASCIIPrintable reports whether s only holds printable ASCII characters.
// The pipe is rejected because it delimits fields in the save file.
func IsASCIIPrintable(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x20 || c > 0x7e || c == '|' {
			return false
		}
	}
	return true
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}
