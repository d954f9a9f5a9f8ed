package filename

import (
	"fmt"
	"regexp"
	"strings"
)

// imageExtRe recognizes the image extensions that count as a real extension
// boundary when splitting a filename. Restricting the set matters: a literal
// dot inside a name ("Screenshot 2024.11.16 at 2.30 PM.png") must only split
// at a recognized suffix, never at an interior dot.
var imageExtRe = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp|svg|bmp|ico|avif|tiff|tif)$`)

// Split divides a filename into base and extension at a recognized image
// extension suffix. Filenames without a recognized suffix return the whole
// input as base and an empty extension.
func Split(name string) (base, ext string) {
	if loc := imageExtRe.FindStringIndex(name); loc != nil {
		return name[:loc[0]], name[loc[0]:]
	}
	return name, ""
}

// ClaimSet tracks the filenames already claimed inside one target directory.
// Keys are lowercased so uniqueness is case-insensitive, matching the
// filesystems most exports land on.
type ClaimSet map[string]struct{}

// Claimed reports whether name (case-insensitively) is already taken.
func (c ClaimSet) Claimed(name string) bool {
	_, ok := c[strings.ToLower(name)]
	return ok
}

// Claim records name as taken without altering it. Used for verbatim custom
// filenames, which are never rewritten but must still repel auto-generated
// names from colliding with them.
func (c ClaimSet) Claim(name string) {
	c[strings.ToLower(name)] = struct{}{}
}

// Uniquify returns candidate unchanged when it is free, otherwise the first
// free "base_N.ext" variant, counting N up from 1. The winning name is
// claimed before returning, so walking a plan in order with one ClaimSet per
// directory yields pairwise-distinct names.
func Uniquify(candidate string, claimed ClaimSet) string {
	if !claimed.Claimed(candidate) {
		claimed.Claim(candidate)
		return candidate
	}
	base, ext := Split(candidate)
	for n := 1; ; n++ {
		next := fmt.Sprintf("%s_%d%s", base, n, ext)
		if !claimed.Claimed(next) {
			claimed.Claim(next)
			return next
		}
	}
}
