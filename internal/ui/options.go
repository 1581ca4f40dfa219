package ui

import (
	"sort"

	"github.com/AliEhsanian/YouTube-Downloader/internal/policy"
)

func qualityLabels() []string {
	labels := make([]string, 0, len(policy.Qualities))
	for _, q := range policy.Qualities {
		labels = append(labels, q.Label())
	}
	return labels
}

func qualityFromLabel(label string) policy.Quality {
	for _, q := range policy.Qualities {
		if q.Label() == label {
			return q
		}
	}
	return policy.QualityBest
}

func formatLabels() []string {
	labels := make([]string, 0, len(policy.Formats))
	for _, f := range policy.Formats {
		labels = append(labels, f.Label())
	}
	return labels
}

func formatFromLabel(label string) policy.Format {
	for _, f := range policy.Formats {
		if f.Label() == label {
			return f
		}
	}
	return policy.FormatMP4
}

// languageChoices returns display names sorted by code with a reverse lookup
func languageChoices(options map[string]string) ([]string, map[string]string) {
	codes := make([]string, 0, len(options))
	for code := range options {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	names := make([]string, 0, len(codes))
	byName := make(map[string]string, len(codes))
	for _, code := range codes {
		names = append(names, options[code])
		byName[options[code]] = code
	}
	return names, byName
}
