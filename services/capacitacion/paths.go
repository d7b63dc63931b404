package capacitacion

import (
	"math/rand/v2"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	VideoFolder    = "videos"
	DocumentFolder = "documentos"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// ExtractPath returns the bucket-relative object path embedded in a public
// storage URL, or false when the URL does not point into bucket.
func ExtractPath(rawURL, bucket string) (string, bool) {
	_, rest, found := strings.Cut(rawURL, "/"+bucket+"/")
	if !found {
		return "", false
	}
	rest, _, _ = strings.Cut(rest, "?")
	rest, _, _ = strings.Cut(rest, "#")

	path, err := url.PathUnescape(rest)
	if err != nil || path == "" {
		return "", false
	}
	return path, true
}

// ExtractPaths maps urls to object paths, silently dropping unparsable ones
// and repeats.
func ExtractPaths(urls []string, bucket string) []string {
	paths := make([]string, 0, len(urls))
	seen := make(map[string]bool, len(urls))
	for _, u := range urls {
		if p, ok := ExtractPath(u, bucket); ok && !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}
	return paths
}

// FileExtension is whatever follows the last dot of the filename, or "" when
// the name has no dot.
func FileExtension(filename string) string {
	i := strings.LastIndexByte(filename, '.')
	if i < 0 {
		return ""
	}
	return filename[i+1:]
}

// DisplayName strips the extension from filename. Names that would become
// empty (".env") are kept as they are.
func DisplayName(filename string) string {
	i := strings.LastIndexByte(filename, '.')
	if i <= 0 {
		return filename
	}
	return filename[:i]
}

// ObjectPath builds "{folder}/{epoch-ms}_{random}.{ext}" for a new upload.
func ObjectPath(folder, filename string, now time.Time) string {
	var b strings.Builder
	b.WriteString(folder)
	b.WriteByte('/')
	b.WriteString(strconv.FormatInt(now.UnixMilli(), 10))
	b.WriteByte('_')
	b.WriteString(randomSuffix(6))
	if ext := FileExtension(filename); ext != "" {
		b.WriteByte('.')
		b.WriteString(ext)
	}
	return b.String()
}

func randomSuffix(n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = base36[rand.IntN(len(base36))]
	}
	return string(buf)
}
