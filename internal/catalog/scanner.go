package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dhowden/tag"

	"github.com/harmonikfm/stagehand/internal/domain"
)

// supported audio file extensions, lowercase
var audioExtensions = map[string]bool{
	".mp3":  true,
	".m4a":  true,
	".flac": true,
	".ogg":  true,
	".wav":  true,
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// ScanDirectory walks root and returns a Song for every supported audio
// file found. Metadata comes from the file's tags; files without usable
// tags fall back to the file name. Unreadable files are skipped, not
// fatal. The walk order (and therefore catalog order) is lexical.
func ScanDirectory(root string) ([]domain.Song, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, domain.ErrInvalidSourcePath
	}

	var songs []domain.Song
	seen := make(map[string]int)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !audioExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		song := songFromFile(path)

		// Keep IDs unique when two files slug to the same name
		if n := seen[song.ID]; n > 0 {
			seen[song.ID] = n + 1
			song.ID = fmt.Sprintf("%s-%d", song.ID, n+1)
		} else {
			seen[song.ID] = 1
		}

		songs = append(songs, song)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, walkErr)
	}

	return songs, nil
}

// songFromFile builds a Song from one audio file, preferring embedded
// tags over the file name.
func songFromFile(path string) domain.Song {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	song := domain.Song{
		ID:       Slug(name),
		Title:    name,
		Artist:   "Unknown Artist",
		AudioURL: path,
	}

	file, err := os.Open(path)
	if err != nil {
		return song
	}
	defer func() { _ = file.Close() }()

	meta, err := tag.ReadFrom(file)
	if err != nil || meta == nil {
		return song
	}

	if title := strings.TrimSpace(meta.Title()); title != "" {
		song.Title = title
		song.ID = Slug(title)
	}
	if artist := strings.TrimSpace(meta.Artist()); artist != "" {
		song.Artist = artist
	}
	if album := strings.TrimSpace(meta.Album()); album != "" {
		song.Album = album
	}

	return song
}

// Slug normalizes a title into a lowercase hyphenated identifier.
func Slug(s string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(s), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "untitled"
	}
	return slug
}
