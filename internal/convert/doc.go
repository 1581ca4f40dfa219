package convert

// Package convert transcodes finished downloads with ffmpeg: container
// conversion to mp4/webm/mkv/avi and mp3 audio extraction, with progress
// parsed from ffmpeg's -progress output.
