// Package ui contains the Fyne-based desktop user interface. It wires the URL
// form, metadata preview and task list to the download and conversion
// services. All UI strings are localized via Localization.
package ui
