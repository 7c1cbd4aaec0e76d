package storage

import (
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"medrecords/internal/domain/blob"
	"medrecords/internal/shared/id"
)

const (
	maxStemRunes = 100
	fallbackStem = "file"
)

// BuildObjectName turns a client supplied file name into a safe, unique
// object name: NFC-normalized stem with invalid characters removed and
// whitespace collapsed to "_", a random base62 suffix, and the lowercase
// original extension.
func BuildObjectName(suggested string) (string, error) {
	suffix, err := id.Generate(id.DefaultLength)
	if err != nil {
		return "", err
	}

	stem, ext := splitName(suggested)
	return stem + "_" + suffix + ext, nil
}

func splitName(suggested string) (stem, ext string) {
	name := norm.NFC.String(suggested)
	// clients on Windows send full paths with backslashes
	name = strings.ReplaceAll(name, `\`, "/")
	name = path.Base(name)
	if name == "." || name == "/" {
		name = ""
	}

	stem = name
	ext = strings.ToLower(path.Ext(name))
	if isCleanExt(ext) {
		stem = strings.TrimSuffix(name, path.Ext(name))
	} else {
		ext = ""
	}
	stem = sanitizeStem(stem)
	if stem == "" {
		stem = fallbackStem
	}
	return stem, ext
}

func sanitizeStem(s string) string {
	var b strings.Builder
	pendingSpace := false
	count := 0
	for _, r := range s {
		if count >= maxStemRunes {
			break
		}
		switch {
		case unicode.IsSpace(r):
			pendingSpace = true
			continue
		case isInvalidRune(r):
			continue
		}
		if pendingSpace && b.Len() > 0 {
			b.WriteByte('_')
			count++
		}
		pendingSpace = false
		b.WriteRune(r)
		count++
	}
	return strings.Trim(b.String(), "._")
}

func isInvalidRune(r rune) bool {
	if unicode.IsControl(r) || r == unicode.ReplacementChar {
		return true
	}
	return strings.ContainsRune(`<>:"/\|?*`, r)
}

func isCleanExt(ext string) bool {
	if len(ext) < 2 || len(ext) > 10 {
		return false
	}
	for _, r := range ext[1:] {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

// ValidatePath checks that p is a relative path below a known subfolder and
// contains no traversal segments.
func ValidatePath(p string) error {
	if p == "" || strings.HasPrefix(p, "/") || strings.Contains(p, `\`) {
		return blob.ErrInvalidPath
	}
	segments := strings.Split(p, "/")
	if len(segments) < 2 || !blob.IsKnownSubfolder(segments[0]) {
		return blob.ErrInvalidPath
	}
	for _, seg := range segments {
		if seg == "" || seg == "." || seg == ".." {
			return blob.ErrInvalidPath
		}
	}
	return nil
}
