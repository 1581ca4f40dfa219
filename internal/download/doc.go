package download

// Package download composes format policy, output naming and progress
// reporting into a single yt-dlp invocation (via github.com/lrstanley/go-ytdlp),
// and manages a queue of download tasks with concurrency limits and progress
// propagation to the UI.
