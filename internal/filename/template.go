package filename

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultTemplate is the pass-through template: the plan builder skips
// expansion entirely when the configured template equals it (or is empty)
// and uses the resolved or custom name verbatim.
const DefaultTemplate = "{name}"

// TemplateContext carries the per-image values substituted into a filename
// template. Index is 1-based: the position of the entry within the plan
// being built.
type TemplateContext struct {
	Name      string
	Extension string
	Index     int
	Group     string
}

// tokenRe matches a single {token} placeholder. Tokens are plain letters;
// anything else between braces is left untouched.
var tokenRe = regexp.MustCompile(`\{[A-Za-z]+\}`)

// illegalChars replaces the characters rejected by one or another common
// filesystem. Applied after substitution so date separators inside tokens
// ("/" never appears, but a user-typed ":" would) cannot corrupt the path.
var illegalChars = strings.NewReplacer(
	"<", "_", ">", "_", ":", "_", `"`, "_",
	"/", "_", `\`, "_", "|", "_", "?", "_", "*", "_",
)

// ApplyTemplate expands tmpl against ctx and now, sanitizes the result, and
// appends ctx.Extension. The extension is always appended last; the template
// never controls it.
//
// Content tokens ({name}, {original}, {index}, {group}) and the convenience
// tokens ({date}, {time}, {iso}) match case-insensitively. Calendar and
// clock tokens are case-sensitive on purpose: {MM} is the month, {mm} the
// minute.
func ApplyTemplate(tmpl string, ctx TemplateContext, now time.Time) string {
	expanded := tokenRe.ReplaceAllStringFunc(tmpl, func(match string) string {
		token := match[1 : len(match)-1]

		switch strings.ToLower(token) {
		case "name", "original":
			return ctx.Name
		case "index":
			return strconv.Itoa(ctx.Index)
		case "group":
			return ctx.Group
		case "date":
			return now.Format("2006-01-02")
		case "time":
			return now.Format("15-04-05")
		case "iso":
			return now.Format("20060102T150405")
		}

		switch token {
		case "YYYY":
			return now.Format("2006")
		case "YY":
			return now.Format("06")
		case "MM":
			return now.Format("01")
		case "M":
			return strconv.Itoa(int(now.Month()))
		case "MMMM":
			return now.Format("January")
		case "MMM":
			return now.Format("Jan")
		case "DD":
			return now.Format("02")
		case "D":
			return strconv.Itoa(now.Day())
		case "dddd":
			return now.Format("Monday")
		case "ddd":
			return now.Format("Mon")
		case "hh":
			return now.Format("15")
		case "h":
			return strconv.Itoa(now.Hour())
		case "mm":
			return now.Format("04")
		case "m":
			return strconv.Itoa(now.Minute())
		case "ss":
			return now.Format("05")
		case "s":
			return strconv.Itoa(now.Second())
		}

		// Unknown token: keep the literal braces so the user sees the typo.
		return match
	})

	return Sanitize(expanded) + ctx.Extension
}

// Sanitize replaces characters illegal across common filesystems
// (< > : " / \ | ? *) with underscores.
func Sanitize(s string) string {
	return illegalChars.Replace(s)
}
