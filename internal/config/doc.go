// Package config holds user configuration: the YAML file shared by the CLI
// and GUI, and the GUI's persisted fyne preferences.
package config
