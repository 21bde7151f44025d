package usecase

// Classification carries the league-name tables and qualifier rules the
// hierarchy builder works from. It is plain data passed in at construction so
// tests can swap it without touching global state.
type Classification struct {
	// TopDivisions maps upstream league display names to canonical top
	// division names. Names absent from the table are rejected.
	TopDivisions map[string]string

	// JuniorLeagues lists upstream league names whose teams are juniors.
	JuniorLeagues map[string]struct{}

	// StableDivisions are top divisions whose upstream identifiers do not
	// churn; no qualifier sub-tree is built under them and their league
	// cross-reference follows edition repoints.
	StableDivisions map[string]struct{}

	// RegionalSubGroupPMIDMin/Max bound the upstream division ids that carry
	// roman sub-group qualifiers ("klasa okręgowa II"). Max is exclusive.
	RegionalSubGroupPMIDMin int
	RegionalSubGroupPMIDMax int
}

func (c Classification) IsStable(topDivision string) bool {
	_, ok := c.StableDivisions[topDivision]
	return ok
}

func (c Classification) IsJunior(leagueName string) bool {
	_, ok := c.JuniorLeagues[leagueName]
	return ok
}

func (c Classification) hasRegionalSubGroups(pmID int) bool {
	return pmID >= c.RegionalSubGroupPMIDMin && pmID < c.RegionalSubGroupPMIDMax
}

// DefaultClassification returns the production tables: the historically known
// Polish league names per seniority, gender and futsal variant.
func DefaultClassification() Classification {
	topDivisions := map[string]string{}
	for _, table := range []map[string]string{
		seniorMaleLeagues, futsalMaleLeagues, juniorMaleLeagues,
		seniorFemaleLeagues, cljLeagues, futsalFemaleLeagues,
	} {
		for raw, canonical := range table {
			topDivisions[raw] = canonical
		}
	}

	junior := make(map[string]struct{}, len(juniorUpstreamLeagues))
	for _, name := range juniorUpstreamLeagues {
		junior[name] = struct{}{}
	}

	return Classification{
		TopDivisions: topDivisions,
		JuniorLeagues: junior,
		StableDivisions: map[string]struct{}{
			"Ekstraklasa":  {},
			"Ekstraliga K": {},
			"1 Liga":       {},
			"2 liga":       {},
		},
		RegionalSubGroupPMIDMin: 14,
		RegionalSubGroupPMIDMax: 28,
	}
}

var seniorMaleLeagues = map[string]string{
	"Ekstraklasa":    "Ekstraklasa",
	"Pierwsza liga":  "1 Liga",
	"Druga liga":     "2 liga",
	"Trzecia liga":   "3 Liga",
	"Czwarta liga":   "4 Liga",
	"Piąta liga":     "5 Liga",
	"Klasa okręgowa": "Klasa Okręgowa",
	"Klasa A":        "A Klasa",
	"Klasa B":        "B Klasa",
	"Klasa C":        "C Klasa",
}

var futsalMaleLeagues = map[string]string{
	"Futsal Ekstraklasa": "Futsal Ekstraklasa",
	"I Liga PLF":         "I Liga PLF",
	"II Liga PLF":        "II Liga PLF",
	"III Liga PLF":       "III Liga PLF",
}

var futsalFemaleLeagues = map[string]string{
	"Ekstraliga PLF":    "Ekstraliga PLF K",
	"I Liga PLF kobiet": "I Liga PLF K",
	"II Liga PLF kobiet": "II Liga PLF K",
}

var juniorMaleLeagues = map[string]string{
	"A1": "Junior A1",
	"A2": "Junior A2",
	"B1": "Junior Młodszy B1",
	"B2": "Junior Młodszy B2",
	"C1": "Trampkarz C1",
	"C2": "Trampkarz C2",
}

var seniorFemaleLeagues = map[string]string{
	"Ekstraliga kobiet":    "Ekstraliga K",
	"Pierwsza liga kobiet": "1 Liga K",
	"Druga liga kobiet":    "2 Liga K",
	"Trzecia liga kobiet":  "3 Liga K",
	"Czwarta liga kobiet":  "4 Liga K",
}

var cljLeagues = map[string]string{
	"CLJ U-19":                      "Clj U-19",
	"Liga Makroregionalna U-19":     "Liga Makroregionalna U-19",
	"CLJ U-18":                      "Clj U-18",
	"CLJ U-17":                      "Clj U-17",
	"CLJ U-15":                      "Clj U-15",
	"Centralna Liga Juniorek U-17":  "Clj U-17 K",
	"Centralna Liga Juniorek U-15":  "Clj U-15 K",
}

var juniorUpstreamLeagues = []string{
	"A1", "A2", "B1", "B2", "C1", "C2", "D1", "D2",
	"E1", "E2", "F1", "F2", "G1", "G2",
	"CLJ U-19", "CLJ U-18", "CLJ U-17", "CLJ U-15",
}
