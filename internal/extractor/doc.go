// Package extractor queries media metadata, probes URL support and lists
// playlists without downloading media.
package extractor
