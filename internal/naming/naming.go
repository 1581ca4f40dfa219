// Package naming builds yt-dlp output templates and cleans user supplied
// filenames.
package naming

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Output template fragments understood by the extraction engine
const (
	DefaultFilenameTemplate  = "%(title)s.%(ext)s"
	PlaylistFilenameTemplate = "%(playlist_index)s - %(title)s.%(ext)s"
	PlaylistDirTemplate      = "%(playlist)s"
	ExtensionPlaceholder     = ".%(ext)s"
)

// Filename limits
const (
	MaxFilenameLength  = 100
	MaxSuggestedLength = 50
)

const invalidFilenameChars = `<>:"/\|?*`

// Options describe where and under which name output is saved
type Options struct {
	Dir string
	// CustomName is used for single downloads only; its extension is dropped
	CustomName string
	Playlist   bool
	// FilenameTemplate overrides DefaultFilenameTemplate for single downloads
	FilenameTemplate string
}

// Template returns the output template for the given options. Literal
// directory and name text is escaped so the engine does not expand it.
func Template(opts Options) string {
	dir := Escape(opts.Dir)
	if dir == "" {
		dir = "."
	}

	if opts.Playlist {
		return filepath.Join(dir, PlaylistDirTemplate, PlaylistFilenameTemplate)
	}

	if name := Stem(opts.CustomName); name != "" {
		return filepath.Join(dir, Escape(name)+ExtensionPlaceholder)
	}

	tmpl := strings.TrimSpace(opts.FilenameTemplate)
	if tmpl == "" {
		tmpl = DefaultFilenameTemplate
	}
	return filepath.Join(dir, tmpl)
}

// Escape doubles every % so text is taken literally in an output template
func Escape(text string) string {
	return strings.ReplaceAll(text, "%", "%%")
}

// Stem strips any directory and the final extension from a custom filename
// and removes characters that are invalid in filenames
func Stem(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if ext := filepath.Ext(name); ext != "" && ext != name {
		name = strings.TrimSuffix(name, ext)
	}
	return CleanFilename(name, MaxFilenameLength)
}

// CleanFilename removes characters that are invalid on common filesystems,
// trims surrounding whitespace and truncates to max runes (0 means no limit)
func CleanFilename(name string, max int) string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(invalidFilenameChars, r) || r < 0x20 {
			return -1
		}
		return r
	}, name)
	cleaned = strings.TrimSpace(cleaned)
	if max > 0 && utf8.RuneCountInString(cleaned) > max {
		cleaned = strings.TrimSpace(string([]rune(cleaned)[:max]))
	}
	return cleaned
}

// SuggestFilename derives a short filename from a media title
func SuggestFilename(title string) string {
	return CleanFilename(title, MaxSuggestedLength)
}
