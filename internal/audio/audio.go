package audio

import (
	"context"
	"io"
	"path/filepath"
	"regexp"
	"strings"
)

// MaxUploadSize is the default ceiling for one audio file.
const MaxUploadSize int64 = 50 << 20

var (
	allowedExtensions = map[string]bool{".mp3": true, ".m4a": true, ".wav": true}
	audioMediaType    = regexp.MustCompile(`audio|mpeg|mp3|wav|m4a`)
	whitespace        = regexp.MustCompile(`\s+`)
	unsafeChars       = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)
)

//go:generate mockgen -source=audio.go -destination=mocks/mock_audio.go -package=mock_audio

// Store keeps uploaded audio files and serves them by URL.
type Store interface {
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
}

// IsAudio accepts a file by extension. Only names without an extension fall
// back to the declared media type, so "x.pdf" is rejected whatever it claims.
func IsAudio(filename, mediaType string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != "" {
		return allowedExtensions[ext]
	}
	return audioMediaType.MatchString(strings.ToLower(mediaType))
}

// SanitizeName turns whitespace runs into "_" and drops anything outside
// [A-Za-z0-9_.-].
func SanitizeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	name = whitespace.ReplaceAllString(name, "_")
	name = unsafeChars.ReplaceAllString(name, "")
	if name == "" || name == "." || name == ".." {
		return "audio"
	}
	return name
}
