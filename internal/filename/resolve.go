package filename

import (
	"net/url"
	"regexp"
	"strings"
)

// URL filename inference.
//
// This file consolidates the heuristics used to derive a (name, extension)
// pair from an arbitrary image URL when the user never supplied a filename.
// Inference is kept deliberately layered: each step only fires when the
// previous one produced nothing usable, so the common CDN layouts
// (".../photos/12345/sunset.jpg", ".../image?format=png") and the degenerate
// ones ("https://cdn.example.com/img/", "data:image/png;base64,...") all
// land on a stable, reproducible name.
var (
	// dataURLRe captures the media subtype of an inline data URL.
	dataURLRe = regexp.MustCompile(`^data:image/([a-zA-Z0-9.+-]+)`)

	// extSuffixRe splits a path segment at its last dot when a word-character
	// suffix follows, e.g. "photo.large.webp" -> ("photo.large", "webp").
	extSuffixRe = regexp.MustCompile(`^(.+)\.(\w+)$`)

	// extTokenRe validates a query-parameter extension hint like "png".
	extTokenRe = regexp.MustCompile(`^[A-Za-z0-9]+$`)

	// numericSegmentRe matches path segments that are purely numeric IDs.
	numericSegmentRe = regexp.MustCompile(`^[0-9]+$`)
)

// genericSegments are path segments too common on image hosts to serve as a
// filename on their own; when the last segment is one of these we walk up
// the path looking for something more descriptive.
var genericSegments = map[string]struct{}{
	"image":  {},
	"photo":  {},
	"images": {},
	"photos": {},
	"media":  {},
	"assets": {},
	"static": {},
	"cdn":    {},
}

// hostSkipTokens are hostname labels skipped when falling back to a
// host-derived name ("cdn.example.com" should yield "example", not "cdn").
var hostSkipTokens = map[string]struct{}{
	"www":    {},
	"cdn":    {},
	"static": {},
	"images": {},
	"img":    {},
	"media":  {},
}

// extHintKeys are query parameters consulted, in order, when the URL path
// carries no extension.
var extHintKeys = []string{"format", "f", "type"}

// Resolve derives a base name and a dot-prefixed extension from rawURL.
// It is pure: the same URL always yields the same pair, and it never fails —
// malformed input degrades through naive string splitting down to the final
// fallback ("image", ".jpg").
func Resolve(rawURL string) (name, ext string) {
	if m := dataURLRe.FindStringSubmatch(rawURL); m != nil {
		return "image", normalizeExt(m[1])
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		name, ext = naiveSplit(rawURL)
		return finalize(name, ext, "")
	}

	segments := pathSegments(u.Path)
	if len(segments) > 0 {
		last := segments[len(segments)-1]
		if m := extSuffixRe.FindStringSubmatch(last); m != nil {
			name, ext = m[1], "."+m[2]
		} else {
			name = last
		}
	}

	if ext == "" {
		q := u.Query()
		for _, key := range extHintKeys {
			if v := q.Get(key); v != "" && extTokenRe.MatchString(v) {
				ext = "." + v
				break
			}
		}
	}

	if isGeneric(name) {
		// Walk upward: the nearest ancestor segment that is neither a bare
		// numeric ID nor a generic term (in any casing) names the image
		// better than "photo" or "12345" would.
		for i := len(segments) - 2; i >= 0; i-- {
			s := segments[i]
			if numericSegmentRe.MatchString(s) {
				continue
			}
			if _, ok := genericSegments[strings.ToLower(s)]; ok {
				continue
			}
			name = s
			break
		}
	}

	return finalize(name, ext, u.Hostname())
}

// finalize applies the host-derived and literal fallbacks shared by the
// parsed and naive paths.
func finalize(name, ext, host string) (string, string) {
	if name == "" && host != "" {
		for _, token := range strings.Split(host, ".") {
			if _, skip := hostSkipTokens[strings.ToLower(token)]; skip {
				continue
			}
			if len(token) > 2 {
				name = token + "_image"
				break
			}
		}
	}
	if name == "" {
		name = "image"
	}
	if ext == "" {
		ext = ".jpg"
	}
	return name, ext
}

// naiveSplit handles URLs that net/url refuses to parse: take everything
// after the last slash, then split at the last dot.
func naiveSplit(rawURL string) (name, ext string) {
	name = rawURL
	if i := strings.LastIndex(name, "/"); i != -1 {
		name = name[i+1:]
	}
	if m := extSuffixRe.FindStringSubmatch(name); m != nil {
		return m[1], "." + m[2]
	}
	return name, ""
}

// normalizeExt lowercases a data-URL media subtype, trims suffixes like
// "svg+xml", maps "jpeg" to "jpg", and prefixes the dot.
func normalizeExt(fmt string) string {
	fmt = strings.ToLower(fmt)
	if i := strings.IndexAny(fmt, "+;"); i != -1 {
		fmt = fmt[:i]
	}
	if fmt == "jpeg" {
		fmt = "jpg"
	}
	if fmt == "" {
		return ""
	}
	return "." + fmt
}

// isGeneric reports whether name is empty or exactly one of the generic
// terms. The match is case-sensitive: an uppercase segment like "PHOTO" is a
// deliberate name, not CDN path filler.
func isGeneric(name string) bool {
	if name == "" {
		return true
	}
	_, ok := genericSegments[name]
	return ok
}

// pathSegments splits a URL path into its non-empty segments.
func pathSegments(path string) []string {
	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}
