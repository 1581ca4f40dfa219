// Package policy maps a requested quality tier and container preference onto
// a yt-dlp format selector and the post-processing steps to run afterwards.
package policy
