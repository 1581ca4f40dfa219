// Package model defines domain data structures shared by the CLI and the GUI:
// download and conversion tasks, media metadata, playlist entries and status
// enums. Structures are plain values so the UI can bind to them directly.
package model
