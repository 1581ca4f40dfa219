// Package classify decides whether user input is a usable media URL.
package classify
