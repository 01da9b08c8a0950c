package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/govmeet/minutes-pdf-service/internal/minutes"
)

// KindElectronicProcedure marks meetings held via electronic procedure;
// their header carries a different phrase than a regular sitting.
const KindElectronicProcedure = "http://themis.vlaanderen.be/id/concept/vergaderactiviteit-type/2387564a-0897-4a62-9b9a-d1755eece7af"

// styleHeader is the fixed print/page CSS prefixed to every document.
const styleHeader = `<style>
  @page {
    size: A4;
    margin: 2cm 2.5cm;
  }
  body {
    font-family: "Flanders Art Sans", Calibri, sans-serif;
    font-size: 10pt;
    line-height: 1.4;
  }
  .minutes-header {
    text-align: center;
    margin-bottom: 1.5em;
  }
  .minutes-header h1 {
    font-size: 12pt;
    text-transform: uppercase;
  }
  section[data-section] {
    page-break-inside: avoid;
    margin-top: 1em;
  }
  ol {
    padding-left: 0;
    list-style-position: inside;
  }
  ol[data-hierarchical="true"] {
    counter-reset: item;
  }
  li[data-list-marker]::marker {
    content: attr(data-list-marker);
  }
  [data-indentation-level="1"] { margin-left: 1.5em; }
  [data-indentation-level="2"] { margin-left: 3em; }
  [data-indentation-level="3"] { margin-left: 4.5em; }
  [data-indentation-level="4"] { margin-left: 6em; }
  .signature {
    margin-top: 4em;
    page-break-inside: avoid;
  }
  .signature .title {
    font-style: italic;
  }
</style>`

const documentTemplate = `<html lang="nl">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
{{.Style}}
</head>
<body>
<div class="minutes-header">
<h1>{{.Title}}</h1>
<p>{{.KindLabel}} van {{.DateLine}}</p>
<p>{{.Number}}</p>
</div>
{{.Content}}
{{if .Secretary}}<div class="signature">
<p>{{.Secretary.Person.FirstName}} {{.Secretary.Person.LastName}}</p>
<p class="title">{{.Secretary.Title}}</p>
</div>
{{end}}</body>
</html>
`

var documentTmpl = template.Must(template.New("minutes").Parse(documentTemplate))

type documentData struct {
	Style     template.HTML
	Title     string
	KindLabel string
	DateLine  string
	Number    string
	Content   template.HTML
	Secretary *minutes.Secretary
}

// Document combines the style header, the sanitized content and the
// meeting context into one complete HTML document. Pure function, no
// I/O; content must already be sanitized. A nil secretary omits the
// signature block.
func Document(content string, meeting *minutes.Meeting, secretary *minutes.Secretary) (string, error) {
	dateLine := FormatDate(meeting.PlannedStart)
	if meeting.Kind == KindElectronicProcedure {
		dateLine = fmt.Sprintf("elektronische procedure van %s", dateLine)
	}
	var sb strings.Builder
	err := documentTmpl.Execute(&sb, documentData{
		Style:     template.HTML(styleHeader),
		Title:     meeting.Name,
		KindLabel: meeting.KindLabel,
		DateLine:  dateLine,
		Number:    meeting.NumberRepresentation,
		Content:   template.HTML(content),
		Secretary: secretary,
	})
	if err != nil {
		return "", fmt.Errorf("render minutes document: %w", err)
	}
	return sb.String(), nil
}
