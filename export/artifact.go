// SPDX-License-Identifier: EPL-2.0

package export

import (
	"path/filepath"
	"strings"
)

const (
	ContentTypeMP3  = "audio/mpeg"
	ContentTypeWAV  = "audio/wav"
	ContentTypeOGG  = "audio/ogg"
	ContentTypeAIFF = "audio/aiff"
	contentTypeBin  = "application/octet-stream"
)

// Artifact is a downloadable export result.
type Artifact struct {
	// ID and URL are assigned by the Store on Publish.
	ID  string
	URL string

	Name        string
	ContentType string
	// Format is the file extension without the dot: mp3 or wav, or the
	// original upload's extension for a degraded artifact.
	Format string
	Data   []byte
	// Degraded is set when the artifact is the untrimmed original offered
	// after both encoding tiers failed.
	Degraded bool
}

func (a Artifact) Size() int { return len(a.Data) }

// BaseName strips the directory and the last extension from name.
func BaseName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" {
		return ""
	}
	if ext := filepath.Ext(name); ext != "" && ext != name {
		name = strings.TrimSuffix(name, ext)
	}
	return strings.TrimSpace(name)
}

// FileName derives "<tag>_<base of original>.<ext>". fallback replaces the
// base when original has none.
func FileName(tag, original, fallback, ext string) string {
	base := BaseName(original)
	if base == "" {
		base = fallback
	}
	return tag + "_" + base + "." + strings.TrimPrefix(ext, ".")
}

// ContentTypeFor maps a file name's extension to a MIME type.
func ContentTypeFor(name string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(name), ".")) {
	case "mp3":
		return ContentTypeMP3
	case "wav":
		return ContentTypeWAV
	case "ogg":
		return ContentTypeOGG
	case "aif", "aiff":
		return ContentTypeAIFF
	default:
		return contentTypeBin
	}
}
