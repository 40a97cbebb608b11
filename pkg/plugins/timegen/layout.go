package timegen

import "strings"

// layoutTokens maps date pattern letters to Go reference layout fragments.
// Longer tokens are tried first so that yyyy wins over yy.
var layoutTokens = []struct {
	pattern string
	layout  string
}{
	{"yyyy", "2006"},
	{"yy", "06"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"MM", "01"},
	{"dd", "02"},
	{"EEEE", "Monday"},
	{"EEE", "Mon"},
	{"HH", "15"},
	{"hh", "03"},
	{"mm", "04"},
	{"ss", "05"},
	{"SSS", "000"},
	{"a", "PM"},
	{"XXX", "Z07:00"},
	{"Z", "-0700"},
}

// ToGoLayout converts a day/month/year-letter pattern like "dd.MM.yyyy
// HH:mm:ss" into a Go time layout. Characters outside the known tokens pass
// through as literals.
func ToGoLayout(pattern string) string {
	var sb strings.Builder
	for i := 0; i < len(pattern); {
		matched := false
		for _, tok := range layoutTokens {
			if strings.HasPrefix(pattern[i:], tok.pattern) {
				sb.WriteString(tok.layout)
				i += len(tok.pattern)
				matched = true
				break
			}
		}
		if !matched {
			sb.WriteByte(pattern[i])
			i++
		}
	}
	return sb.String()
}
