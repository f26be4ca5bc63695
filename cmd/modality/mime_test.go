package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuessMime(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"data.json", "application/json"},
		{"notes.txt", "text/plain"},
		{"README.md", "text/markdown"},
		{"photo.png", "image/png"},
		{"photo.jpg", "image/jpeg"},
		{"photo.JPEG", "image/jpeg"},
		{"song.mp3", "audio/mpeg"},
		{"clip.wav", "audio/wav"},
		{"movie.mp4", "video/mp4"},
		{"archive.tar.gz", "application/octet-stream"},
		{"noext", "application/octet-stream"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, guessMime(tt.path))
		})
	}
}
