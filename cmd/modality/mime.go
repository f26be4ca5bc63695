package main

import (
	"path/filepath"
	"strings"
)

const mimeOctetStream = "application/octet-stream"

var mimeByExt = map[string]string{
	".json": "application/json",
	".txt":  "text/plain",
	".md":   "text/markdown",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".mp4":  "video/mp4",
}

// guessMime maps a file extension to a MIME type. Unknown extensions are
// reported as application/octet-stream.
func guessMime(path string) string {
	if mime, ok := mimeByExt[strings.ToLower(filepath.Ext(path))]; ok {
		return mime
	}
	return mimeOctetStream
}
