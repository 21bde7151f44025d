package normalize

import "testing"

func TestUnify_Club(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"legal suffix and short prefix", "FC Example S.A.", "Example"},
		{"limited company suffix", "Klub Sportowy SP. Z O.O.", "Klub Sportowy"},
		{"federation prefix", "MUKS Przykład", "Przykład"},
		{"roman numeral stripped", "Przykład II", "Przykład"},
		{"digits stripped", "Przykład 2005", "Przykład"},
		{"quotes and slashes", `"Orzeł"/Przykład`, "Orzeł Przykład"},
		{"everything filtered", "KS II 05", ""},
		{"casing normalized", "PRZYKŁADOWO wielkie", "Przykładowo Wielkie"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Unify(tc.raw, true); got != tc.want {
				t.Fatalf("Unify(%q, club) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestUnify_Team(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"leading roman relocated", "II Sample Team", "Sample Team II"},
		{"trailing roman kept", "Sample Team II", "Sample Team II"},
		{"roman survives blacklist", "GLKS Przykład III", "Przykład III"},
		{"roman with period", "II. Przykład", "Przykład II."},
		{"single roman only", "II", "II"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Unify(tc.raw, false); got != tc.want {
				t.Fatalf("Unify(%q, team) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestUnify_FixedPoint(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"FC Example S.A.",
		"II Sample Team",
		"MUKS Przykład 2005",
		`"Orzeł" Przykład/Okręg`,
		"Sample Team II",
		"",
	}

	for _, raw := range inputs {
		for _, club := range []bool{true, false} {
			once := Unify(raw, club)
			twice := Unify(once, club)
			if once != twice {
				t.Fatalf("Unify not stable for %q (club=%v): %q != %q", raw, club, once, twice)
			}
		}
	}
}

func TestIsRoman(t *testing.T) {
	t.Parallel()

	for _, token := range []string{"I", "II", "III", "IV", "V", "VI", "IX", "II."} {
		if !IsRoman(token) {
			t.Fatalf("expected %q to be roman", token)
		}
	}
	for _, token := range []string{"", "X", "ABC", "I I", "2"} {
		if IsRoman(token) {
			t.Fatalf("expected %q not to be roman", token)
		}
	}
}

func TestRomanToArabic(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Grupa III":         "Grupa 3",
		"Grupa I":           "Grupa 1",
		"klasa A":           "klasa A",
		"Grupa V":           "Grupa 5",
		"Grupa VI":          "Grupa 6",
		"Grupa VIII":        "Grupa 8",
		"okręgowa IV gr":    "okręgowa 4 gr",
		"Violetta Warszawa": "Violetta Warszawa",
	}
	for in, want := range cases {
		if got := RomanToArabic(in); got != want {
			t.Fatalf("RomanToArabic(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestVoivodeshipKey(t *testing.T) {
	t.Parallel()

	if got := VoivodeshipKey("Kujawsko-Pomorskie"); got != "kujawskopomorskie" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestCapitalized(t *testing.T) {
	t.Parallel()

	if got := Capitalized("śląskie"); got != "Śląskie" {
		t.Fatalf("unexpected capitalization %q", got)
	}
}
