package util

import (
	"errors"
	"path/filepath"
	"strings"
	"unicode"
)

// MaxFileNameLen bounds stored upload names. Longer names are truncated
// with the extension kept so resumes stay recognizable as PDFs.
const MaxFileNameLen = 100

var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName makes an uploaded file name safe to use as a storage
// key: traversal is rejected, separators become underscores, control
// characters are dropped, and overly long names are shortened.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	s := strings.TrimSpace(name)
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\':
			return '_'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
	if s == "" {
		return "", ErrInvalidFileName
	}

	runes := []rune(s)
	if len(runes) > MaxFileNameLen {
		ext := []rune(filepath.Ext(s))
		keep := MaxFileNameLen - len(ext)
		if keep < 1 {
			keep = MaxFileNameLen
			ext = nil
		}
		base := runes[:len(runes)-len(ext)]
		if len(base) > keep {
			base = base[:keep]
		}
		s = string(base) + string(ext)
	}
	return s, nil
}
