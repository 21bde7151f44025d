package lnp

import "github.com/pitchmap/lnp-importer/internal/usecase"

// DefaultLinkTables returns the static laczynaspilka.pl site structure deep
// links are composed from: competition menu groups, division uuids and the
// per-voivodeship federation uuids. The site publishes no API for these, so
// they are pinned here and updated by hand when the site changes.
func DefaultLinkTables() usecase.LinkTables {
	return usecase.LinkTables{
		ClubURLFormat: "https://www.laczynaspilka.pl/rozgrywki/klub/%s",
		TeamURLFormat: "https://www.laczynaspilka.pl/rozgrywki/druzyna/%s",
		LeagueBaseURL: "https://www.laczynaspilka.pl/rozgrywki?",

		MaleDivisionIDs: map[string]string{
			"Ekstraklasa":   "20505afb-3cb6-4e59-9bb1-ed56e8201bb8",
			"Pierwsza liga": "59f21eb0-6b05-4af0-94c4-e665852cdf85",
			"Druga liga":    "cfcab412-50f1-441b-892d-ce8d8d9a13cc",
		},
		FemaleDivisionIDs: map[string]string{
			"Ekstraliga":    "642d5615-721e-4586-b475-f83cb61afc30",
			"Pierwsza liga": "b0a6782f-5075-4a32-8b9f-c02b257ecdb8",
			"Druga liga":    "de0b9551-ad34-48e3-840c-34a31fed1376",
		},
		MaleFallbackDivisionID:   "5aeaceaa-680d-4164-b0b6-f5f2be4add94",
		FemaleFallbackDivisionID: "bfe5cd96-101a-4133-a751-1bd3c428d50c",

		MaleGroups:   maleLeagueGroups,
		FemaleGroups: femaleLeagueGroups,

		RegionZPNs: map[string]string{
			"Dolnośląskie":        "eaa01464-22b2-422a-835f-7835bb50990a",
			"Kujawsko-pomorskie":  "f8bd567f-72de-4328-8326-187ad4da031e",
			"Łódzkie":             "15b4a3b3-b787-440e-9282-ee5549a97d76",
			"Lubelskie":           "76fb0431-52a4-4106-9a5c-cf5af80c11a9",
			"Lubuskie":            "48722694-be4b-44d6-b5af-320308f84f50",
			"Małopolskie":         "e0ca38b1-1dab-47c1-a077-f9d41970e0c5",
			"Mazowieckie":         "e652d9c8-57f8-442b-8573-7f450a90c0d2",
			"Opolskie":            "39757eb2-3c41-47fa-b80b-8deea71e5a3e",
			"Podkarpackie":        "cd81a30b-c8a3-44e0-abd6-8b5772d3137c",
			"Podlaskie":           "aa1901d7-18b6-453e-92c5-17304cbdd8c4",
			"Pomorskie":           "9752d270-dfa5-4035-a438-9641a0bfdb0f",
			"Śląskie":             "52600a9d-dc9e-4002-9798-52d1ad8c0181",
			"Świętokrzyskie":      "8e6b2e2a-2c6f-46a5-8ab6-642c3a4661d0",
			"Warmińsko-mazurskie": "e838d72f-747e-4904-942b-8dafb5bb41b5",
			"Wielkopolskie":       "f3211030-22aa-4549-ab47-c99376281ac8",
			"Zachodniopomorskie":  "a2d6b609-b11a-46c8-bced-fe2ebe51e9db",
		},
	}
}

var maleLeagueGroups = []usecase.LeagueGroup{
	{
		ExternalID: "48f9a6d6-d38d-46cc-982b-084fede4ba0a",
		Name:       "Ekstraklasa",
		Dropdowns:  usecase.DropdownsNone,
		Leagues: []usecase.GroupLeague{
			{ExternalID: "20505afb-3cb6-4e59-9bb1-ed56e8201bb8", Name: "Ekstraklasa"},
		},
	},
	{
		ExternalID: "b4194f67-6702-4559-9d04-33240e0f8daf",
		Name:       "Pierwsza liga",
		Dropdowns:  usecase.DropdownsNone,
		Leagues: []usecase.GroupLeague{
			{ExternalID: "59f21eb0-6b05-4af0-94c4-e665852cdf85", Name: "Pierwsza liga"},
		},
	},
	{
		ExternalID: "df590e54-b86b-4163-afff-d7463585ea49",
		Name:       "Druga liga",
		Dropdowns:  usecase.DropdownsNone,
		Leagues: []usecase.GroupLeague{
			{ExternalID: "cfcab412-50f1-441b-892d-ce8d8d9a13cc", Name: "Druga liga"},
		},
	},
	{
		ExternalID: "6fbef42c-2da2-46fb-adbc-3d9e4bf28f9d",
		Name:       "Trzecia liga",
		Dropdowns:  usecase.DropdownsPlay,
		Leagues: []usecase.GroupLeague{
			{ExternalID: "5aeaceaa-680d-4164-b0b6-f5f2be4add94", Name: "Trzecia liga"},
		},
	},
	{
		ExternalID: "63e0b91e-f2cc-4149-813b-ea9a77919385",
		Name:       "Niższe ligi",
		SubTitle:   "Klasa rozgrywkowa",
		Dropdowns:  usecase.DropdownsZpnAndLeagueAndPlay,
		Leagues: []usecase.GroupLeague{
			{ExternalID: "1bbf167f-ec17-4d1f-91f2-6ef0e4b8fc18", Name: "Czwarta liga"},
			{ExternalID: "79a6cf82-0e5d-46fe-ae5f-924b4f0c6ab3", Name: "Piąta liga"},
			{ExternalID: "50917394-d0c3-4299-b00f-7d55f3ca65f5", Name: "Klasa okręgowa"},
			{ExternalID: "733f5b9c-9ade-4011-84c4-b08d35d170b3", Name: "Klasa A"},
			{ExternalID: "8cf29fa7-fef5-45f9-9c6c-6375dbe243af", Name: "Klasa B"},
			{ExternalID: "fc4411b7-ba96-4c7f-b2b5-f1c997ee36a4", Name: "Klasa C"},
		},
	},
	{
		ExternalID: "5f741727-fa5b-47f3-bc32-397e9ad7d9a5",
		Name:       "Centralna Liga Juniorów",
		SubTitle:   "Grupa wiekowa",
		Dropdowns:  usecase.DropdownsLeagueAndPlay,
		Leagues: []usecase.GroupLeague{
			{ExternalID: "b0b6ac58-0d13-4a01-94e9-4cd1acf205bf", Name: "CLJ U-19"},
			{ExternalID: "815c0477-eefc-46d7-abda-0d693788e118", Name: "CLJ U-17"},
			{ExternalID: "21d1d997-2953-48fa-969c-1f131652c366", Name: "CLJ U-15"},
			{ExternalID: "ab883a84-3f05-4201-b23b-8b40c6f9e505", Name: "Baraże CLJ U-15 runda jesienna"},
		},
	},
	{
		ExternalID: "e91d244a-2694-4373-8263-cee24a82eaa8",
		Name:       "Juniorzy",
		SubTitle:   "Grupa wiekowa",
		Dropdowns:  usecase.DropdownsZpnAndLeagueAndPlay,
		Leagues: []usecase.GroupLeague{
			{ExternalID: "ce0917de-adaa-45c7-9ec9-e46f698d1869", Name: "A1"},
			{ExternalID: "24296506-394a-433b-b744-981713d8bd8e", Name: "A2"},
			{ExternalID: "e9a56030-8035-407e-9689-57d1381a40eb", Name: "B1"},
			{ExternalID: "b6e2eca5-ee01-4c45-8a27-02be750f6d1b", Name: "B2"},
			{ExternalID: "31db1b98-2077-4668-9d05-ae37760a574f", Name: "C1"},
			{ExternalID: "0a7a1f55-9a79-4c7d-bb3b-4ea605c0123b", Name: "C2"},
		},
	},
	{
		ExternalID: "629faf42-0f1a-427e-832d-f477a1fdfb92",
		Name:       "Futsal",
		SubTitle:   "Klasa rozgrywkowa",
		Dropdowns:  usecase.DropdownsLeagueAndPlay,
		Leagues: []usecase.GroupLeague{
			{ExternalID: "6c7a60d7-4763-4344-9e0d-d0058becb99f", Name: "Futsal Ekstraklasa"},
			{ExternalID: "be62b6bb-aca7-4620-a9ba-e0b609dfdd4a", Name: "I Liga PLF"},
			{ExternalID: "44b113f8-9db4-4d1d-b837-461fff482f7f", Name: "II Liga PLF"},
			{ExternalID: "cdeaa11b-55f6-4f2b-97aa-504071658bb5", Name: "III Liga PLF"},
		},
	},
}

var femaleLeagueGroups = []usecase.LeagueGroup{
	{
		ExternalID: "723b1176-c9c3-4ce1-af0b-a5c3e0dda946",
		Name:       "Ekstraliga",
		Dropdowns:  usecase.DropdownsNone,
		Leagues: []usecase.GroupLeague{
			{ExternalID: "642d5615-721e-4586-b475-f83cb61afc30", Name: "Ekstraliga kobiet"},
		},
	},
	{
		ExternalID: "e868ba6f-305e-4a12-8663-ad57e096fd56",
		Name:       "Pierwsza liga",
		Dropdowns:  usecase.DropdownsPlay,
		Leagues: []usecase.GroupLeague{
			{ExternalID: "b0a6782f-5075-4a32-8b9f-c02b257ecdb8", Name: "Pierwsza liga kobiet"},
		},
	},
	{
		ExternalID: "87fe559f-bee0-408f-b9d6-4f165b0d4148",
		Name:       "Druga liga",
		Dropdowns:  usecase.DropdownsPlay,
		Leagues: []usecase.GroupLeague{
			{ExternalID: "de0b9551-ad34-48e3-840c-34a31fed1376", Name: "Druga liga kobiet"},
		},
	},
	{
		ExternalID: "6fbef42c-2da2-46fb-adbc-3d9e4bf28f9d",
		Name:       "Trzecia liga",
		Dropdowns:  usecase.DropdownsPlay,
		Leagues: []usecase.GroupLeague{
			{ExternalID: "bfe5cd96-101a-4133-a751-1bd3c428d50c", Name: "Trzecia liga kobiet"},
		},
	},
	{
		ExternalID: "63e0b91e-f2cc-4149-813b-ea9a77919385",
		Name:       "Niższe ligi",
		SubTitle:   "Klasa rozgrywkowa",
		Dropdowns:  usecase.DropdownsZpnAndLeagueAndPlay,
		Leagues: []usecase.GroupLeague{
			{ExternalID: "b1967e39-4ca6-4db7-b10d-083570c07428", Name: "Czwarta liga kobiet"},
		},
	},
	{
		ExternalID: "5f741727-fa5b-47f3-bc32-397e9ad7d9a5",
		Name:       "Centralna Liga Juniorów",
		SubTitle:   "Grupa wiekowa",
		Dropdowns:  usecase.DropdownsLeagueAndPlay,
		Leagues: []usecase.GroupLeague{
			{ExternalID: "c4b1f03a-2b98-4161-b266-51d162f44697", Name: "Centralna Liga Juniorek U-17"},
			{ExternalID: "a01867b4-92c7-4c85-be99-e6e5f7cebae8", Name: "Centralna Liga Juniorek U-15"},
		},
	},
	{
		ExternalID: "629faf42-0f1a-427e-832d-f477a1fdfb92",
		Name:       "Futsal",
		SubTitle:   "Klasa rozgrywkowa",
		Dropdowns:  usecase.DropdownsLeagueAndPlay,
		Leagues: []usecase.GroupLeague{
			{ExternalID: "505bdccf-fe17-446a-9fda-c81341ed2929", Name: "Ekstraliga PLF"},
			{ExternalID: "7bd775e5-5f49-47fa-a61c-4972dfcd2257", Name: "I Liga PLF kobiet"},
			{ExternalID: "f66f206d-9edb-4e1f-a08a-d4415682b2c9", Name: "II Liga PLF kobiet"},
		},
	},
}
