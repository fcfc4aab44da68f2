package transcribe

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MediaFormat is the container format declared on job submission. Values
// match the transcription service's identifiers.
type MediaFormat string

const (
	FormatMP3  MediaFormat = "mp3"
	FormatMP4  MediaFormat = "mp4"
	FormatM4A  MediaFormat = "m4a"
	FormatWav  MediaFormat = "wav"
	FormatFlac MediaFormat = "flac"
	FormatOgg  MediaFormat = "ogg"
	FormatAmr  MediaFormat = "amr"
	FormatWebm MediaFormat = "webm"
)

var extensionFormats = map[string]MediaFormat{
	".mp3":  FormatMP3,
	".mp4":  FormatMP4,
	".m4a":  FormatM4A,
	".wav":  FormatWav,
	".flac": FormatFlac,
	".ogg":  FormatOgg,
	".opus": FormatOgg,
	".amr":  FormatAmr,
	".webm": FormatWebm,
}

// FormatFromPath infers the media format from the file extension.
func FormatFromPath(path string) (MediaFormat, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensionFormats[ext]; ok {
		return f, nil
	}
	if ext == "" {
		return "", fmt.Errorf("cannot determine media format: %s has no extension", path)
	}
	return "", fmt.Errorf("unsupported media format %s", ext)
}

// SupportedExtensions lists the audio extensions the pipeline accepts,
// used by the directory watcher.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(extensionFormats))
	for ext := range extensionFormats {
		exts = append(exts, ext)
	}
	return exts
}
