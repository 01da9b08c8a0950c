package sparql

import (
	"fmt"
	"strings"
	"time"
)

// Escaping helpers for values embedded in query text. Every string, URI,
// number and timestamp interpolated into a statement must go through one
// of these.

var stringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// EscapeString renders s as a quoted SPARQL string literal.
func EscapeString(s string) string {
	return `"` + stringEscaper.Replace(s) + `"`
}

var uriEscaper = strings.NewReplacer(
	`\`, `\\`,
	`<`, `\<`,
	`>`, `\>`,
)

// EscapeURI renders u enclosed in angle brackets.
func EscapeURI(u string) string {
	return "<" + uriEscaper.Replace(u) + ">"
}

// EscapeInt renders n as a typed integer literal.
func EscapeInt(n int64) string {
	return fmt.Sprintf(`"%d"^^<http://www.w3.org/2001/XMLSchema#integer>`, n)
}

// EscapeDateTime renders t as a typed xsd:dateTime literal in UTC.
func EscapeDateTime(t time.Time) string {
	return fmt.Sprintf(`"%s"^^<http://www.w3.org/2001/XMLSchema#dateTime>`, t.UTC().Format("2006-01-02T15:04:05.000Z"))
}
