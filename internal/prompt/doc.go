// Package prompt implements the interactive terminal questions of the
// command line downloader.
package prompt
