package platform

// Package platform contains OS integration and external tool glue:
// filesystem helpers, locating yt-dlp and ffmpeg, and OS open/reveal.
