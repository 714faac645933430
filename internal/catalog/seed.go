// Package catalog holds the built-in song library and the directory
// scanner that imports local audio files into it.
package catalog

import "github.com/harmonikfm/stagehand/internal/domain"

// SongsVersion is the schema version of the seed catalog. Stored state
// saved under a different version is discarded and reseeded.
const SongsVersion = "4"

// SeedSongs returns a fresh copy of the built-in 3rd Harmonik library.
// Callers get their own slice; mutating it never touches the seed.
func SeedSongs() []domain.Song {
	songs := make([]domain.Song, len(seed))
	copy(songs, seed)
	for i := range songs {
		songs[i].Lyrics = append([]string(nil), seed[i].Lyrics...)
		songs[i].FunFacts = append([]string(nil), seed[i].FunFacts...)
	}
	return songs
}

var seed = []domain.Song{
	{
		ID:          "huling-sandali",
		Title:       "Huling Sandali",
		Artist:      "3rd Harmonik",
		Album:       "Mga Unang Kwento",
		CoverURL:    "/covers/huling-sandali.jpg",
		AudioURL:    "/audio/huling-sandali.mp3",
		Duration:    "4:12",
		AccentColor: "#7c3aed",
		Lyrics: []string{
			"Sa huling sandali, ikaw pa rin",
			"Kahit saan man ako dalhin",
			"Babalik at babalik sa iyo",
		},
		FunFacts: []string{
			"Written in one night after the band's first sold-out gig.",
			"The bridge was improvised live and kept in the studio cut.",
		},
	},
	{
		ID:          "bulong",
		Title:       "Bulong",
		Artist:      "3rd Harmonik",
		Album:       "Mga Unang Kwento",
		CoverURL:    "/covers/bulong.jpg",
		AudioURL:    "/audio/bulong.mp3",
		Duration:    "3:48",
		AccentColor: "#0ea5e9",
		Lyrics: []string{
			"Isang bulong lang ang kailangan",
			"Para marinig ang kabilang dulo ng mundo",
		},
		FunFacts: []string{
			"The whisper in the intro is the drummer's grandmother.",
		},
	},
	{
		ID:          "jopay",
		Title:       "Jopay",
		Artist:      "3rd Harmonik",
		Album:       "Harana sa Lungsod",
		CoverURL:    "/covers/jopay.jpg",
		AudioURL:    "/audio/jopay.mp3",
		Duration:    "4:35",
		AccentColor: "#f59e0b",
		Lyrics: []string{
			"Jopay, kamusta ka na",
			"Matagal na rin tayong hindi nagkita",
		},
		FunFacts: []string{
			"Named after a regular at the band's first venue.",
			"Still the most requested song at live shows.",
		},
	},
	{
		ID:          "sa-ngalan-ng-pagibig",
		Title:       "Sa Ngalan ng Pag-ibig",
		Artist:      "3rd Harmonik",
		Album:       "Harana sa Lungsod",
		CoverURL:    "/covers/sa-ngalan-ng-pagibig.jpg",
		AudioURL:    "/audio/sa-ngalan-ng-pagibig.mp3",
		Duration:    "5:02",
		AccentColor: "#ef4444",
		Lyrics: []string{
			"Sa ngalan ng pag-ibig, susugod ako",
			"Kahit na ang mundo'y tumutol sa atin",
		},
		FunFacts: []string{
			"Recorded with a 12-piece string section.",
		},
	},
	{
		ID:          "sirena",
		Title:       "Sirena",
		Artist:      "3rd Harmonik",
		Album:       "Harana sa Lungsod",
		CoverURL:    "/covers/sirena.jpg",
		AudioURL:    "/audio/sirena.mp3",
		Duration:    "3:21",
		AccentColor: "#14b8a6",
		Lyrics: []string{
			"Sirena sa gitna ng lungsod",
			"Umaawit kahit walang dagat",
		},
		FunFacts: []string{
			"The demo was recorded on a phone in a parking garage.",
		},
	},
	{
		ID:          "binibini",
		Title:       "Binibini",
		Artist:      "3rd Harmonik",
		Album:       "Gabi ng Lunes",
		CoverURL:    "/covers/binibini.jpg",
		AudioURL:    "/audio/binibini.mp3",
		Duration:    "3:56",
		AccentColor: "#ec4899",
		Lyrics: []string{
			"Binibini, saan ka patungo",
			"Sabay tayo kahit hindi mo pa alam",
		},
		FunFacts: []string{
			"Features the bassist's first and only lead vocal.",
		},
	},
	{
		ID:          "hari-ng-sablay",
		Title:       "Hari ng Sablay",
		Artist:      "3rd Harmonik",
		Album:       "Gabi ng Lunes",
		CoverURL:    "/covers/hari-ng-sablay.jpg",
		AudioURL:    "/audio/hari-ng-sablay.mp3",
		Duration:    "3:10",
		AccentColor: "#84cc16",
		Lyrics: []string{
			"Ako ang hari ng sablay",
			"Pero sa iyo hindi ako papalya",
		},
		FunFacts: []string{
			"Written as a joke during soundcheck; the crowd made it a single.",
		},
	},
	{
		ID:          "antukin",
		Title:       "Antukin",
		Artist:      "3rd Harmonik",
		Album:       "Gabi ng Lunes",
		CoverURL:    "/covers/antukin.jpg",
		AudioURL:    "/audio/antukin.mp3",
		Duration:    "4:44",
		AccentColor: "#6366f1",
		Lyrics: []string{
			"Antukin na ang buong mundo",
			"Tayong dalawa lang ang gising",
		},
		FunFacts: []string{
			"Closes every 3rd Harmonik setlist since 2019.",
		},
	},
}
