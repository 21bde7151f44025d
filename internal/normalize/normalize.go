// Package normalize unifies free-text club, team and league names coming from
// external scrapes so they can be matched against canonical records.
package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

// blacklistedPhrases are applied in order before any tokenization. They strip
// punctuation and legal-entity suffixes that carry no identity.
var blacklistedPhrases = [][2]string{
	{"/", " "},
	{`"`, ""},
	{"SP. Z O.O.", ""},
	{"S.A.", ""},
	{"SPÓŁKA Z OGRANICZONĄ ODPOWIEDZIALNOŚCIĄ", ""},
	{"SPÓŁKA Z O. O.", ""},
	{"SP. Z.O.O", ""},
	{".", ""},
}

// federationPrefixes are regional-federation abbreviations that clubs carry in
// front of their actual name.
var federationPrefixes = map[string]struct{}{
	"GLKS": {}, "CWKS": {}, "MLKS": {}, "MUKS": {}, "APIS": {},
	"MOSP": {}, "KTS-K": {}, "CWZS": {}, "ULKS": {}, "GMKS": {},
	"WRKS": {}, "MGKS": {}, "BPAP": {}, "MŁKS": {}, "BBTS": {},
	"SSIR": {}, "GSKS": {}, "LMKS": {}, "ZZPD": {}, "LPFA": {},
	"ELPA": {}, "GZPN": {}, "(RW)": {}, "(RJ)": {},
}

// The Greek capital iota shows up in scraped data where a Latin I is meant.
var romanWordRegex = regexp.MustCompile(`\b(?:[IΙ]X|[IΙ]V|V[IΙ]{0,3}|[IΙ]{1,3})\b\.?`)
var romanTokenRegex = regexp.MustCompile(`^(?:[IΙ]X|[IΙ]V|V[IΙ]{0,3}|[IΙ]{1,3})\.?$`)

var digitRegex = regexp.MustCompile(`[0-9]`)
var spaceRegex = regexp.MustCompile(` +`)

// Unify strips redundant phrases from a raw club or team name. Club names have
// roman numerals removed outright; team names keep them, and a leading roman
// numeral is relocated behind the name ("II Sample" becomes "Sample II").
// When everything is filtered away the empty string is returned and the caller
// must fall back to the raw input for display.
func Unify(raw string, club bool) string {
	for _, pair := range blacklistedPhrases {
		raw = strings.ReplaceAll(raw, pair[0], pair[1])
	}
	if club {
		raw = romanWordRegex.ReplaceAllString(raw, "")
	}

	raw = digitRegex.ReplaceAllString(raw, "")
	raw = strings.TrimSpace(spaceRegex.ReplaceAllString(raw, " "))

	kept := make([]string, 0, 8)
	for _, token := range strings.Fields(raw) {
		if !club && IsRoman(token) {
			kept = append(kept, token)
			continue
		}
		if _, cut := federationPrefixes[token]; cut {
			continue
		}
		if len([]rune(token)) <= 3 {
			continue
		}
		kept = append(kept, token)
	}

	if !club && len(kept) > 1 && IsRoman(kept[0]) {
		head := kept[0]
		kept = append(kept[1:], head)
	}

	for i, token := range kept {
		if len([]rune(token)) > 3 {
			kept[i] = capitalize(token)
		}
	}

	return strings.Join(kept, " ")
}

// IsRoman reports whether the token is a whole-word roman numeral, optionally
// followed by a period.
func IsRoman(token string) bool {
	return token != "" && romanTokenRegex.MatchString(token)
}

// romanArabic covers the group qualifiers one through nine.
var romanArabic = map[string]string{
	"I": "1", "II": "2", "III": "3", "IV": "4", "V": "5",
	"VI": "6", "VII": "7", "VIII": "8", "IX": "9",
}

// RomanToArabic rewrites roman group qualifiers ("Grupa III") to arabic
// digits. Only whole tokens are rewritten; values without a free-standing
// roman numeral pass through unchanged.
func RomanToArabic(val string) string {
	fields := strings.Fields(val)
	changed := false
	for i, token := range fields {
		if arabic, ok := romanArabic[token]; ok {
			fields[i] = arabic
			changed = true
		}
	}
	if !changed {
		return val
	}
	return strings.Join(fields, " ")
}

// VoivodeshipKey folds a voivodeship display name to its lookup form.
func VoivodeshipKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "-", "")
}

// Capitalized returns the name with the first rune upper-cased and the rest
// lower-cased, matching how region reference data is stored.
func Capitalized(name string) string {
	return capitalize(name)
}

func capitalize(token string) string {
	runes := []rune(token)
	if len(runes) == 0 {
		return token
	}
	out := make([]rune, len(runes))
	out[0] = unicode.ToUpper(runes[0])
	for i := 1; i < len(runes); i++ {
		out[i] = unicode.ToLower(runes[i])
	}
	return string(out)
}
