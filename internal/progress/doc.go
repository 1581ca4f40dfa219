// Package progress defines download lifecycle events and the sinks that render
// them: a console bar, structured logs, and fan-out/adapter helpers. The GUI
// sink lives in package ui.
package progress
