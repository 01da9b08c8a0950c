package render

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// The sanitizer is the single place where content fidelity for
// pagination-sensitive constructs (nested ordered lists, custom markers,
// section roles) is guaranteed. Everything outside the allow-list below
// is stripped.

var sectionRoles = regexp.MustCompile(`^(announcements|attendees|absentees|next-meeting)$`)

var listStyleTypes = []string{
	"decimal",
	"lower-alpha",
	"upper-alpha",
	"lower-roman",
	"upper-roman",
	"none",
}

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"p", "br", "span", "div", "blockquote",
		"strong", "b", "em", "i", "u", "s", "sub", "sup",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li",
		"table", "thead", "tbody", "tr", "th", "td",
		"section",
	)
	p.AllowAttrs("href").OnElements("a")

	// structural markers the paginator depends on
	p.AllowAttrs("data-section").Matching(sectionRoles).OnElements("section")
	p.AllowAttrs("data-indentation-level").Matching(bluemonday.Integer).Globally()
	p.AllowAttrs("data-hierarchical", "data-list-style").OnElements("ol")
	p.AllowAttrs("data-list-marker").OnElements("li")
	p.AllowAttrs("style").OnElements("ol")
	p.AllowStyles("list-style-type").MatchingEnum(listStyleTypes...).OnElements("ol")

	return p
}

// a data-list-marker value ending in a plain space, which the renderer
// would collapse
var markerTrailingSpace = regexp.MustCompile(`(data-list-marker="[^"]*?) "`)

// Sanitize reduces untrusted minutes HTML to the allow-listed subset and
// repairs list markers whose trailing space would otherwise be collapsed
// by the rendering engine. Sanitize is idempotent.
func Sanitize(html string) string {
	clean := policy.Sanitize(html)
	return fixListMarkers(clean)
}

func fixListMarkers(html string) string {
	if !strings.Contains(html, "data-list-marker=") {
		return html
	}
	return markerTrailingSpace.ReplaceAllString(html, "$1 \"")
}
