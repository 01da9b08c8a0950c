package minutes

import (
	"context"
	"fmt"
	"time"

	"github.com/govmeet/minutes-pdf-service/internal/sparql"
	"github.com/govmeet/minutes-pdf-service/pkg/logger"
)

// Resolver reads the minutes document's current revision and its meeting
// context from the knowledge store.
type Resolver struct {
	store sparql.Client
}

func NewResolver(store sparql.Client) *Resolver {
	return &Resolver{store: store}
}

// CurrentContent returns the document's current content body: the piece
// part no other part records as its previousVersion. Returns ErrNotFound
// when the document is absent or has no content parts.
//
// The one-current-part invariant is not enforced by the store; on a
// multi-match we take the first binding and log.
func (r *Resolver) CurrentContent(ctx context.Context, id string) (string, error) {
	q := fmt.Sprintf(`
  PREFIX mu: <http://mu.semte.ch/vocabularies/core/>
  PREFIX ext: <http://mu.semte.ch/vocabularies/ext/>
  PREFIX dct: <http://purl.org/dc/terms/>
  PREFIX prov: <http://www.w3.org/ns/prov#>
  PREFIX pav: <http://purl.org/pav/>

  SELECT ?value WHERE {
    ?minutes mu:uuid %s .
    ?minutes a ext:Notulen .
    ?piecePart dct:isPartOf ?minutes .
    ?piecePart prov:value ?value .
    FILTER(NOT EXISTS { [] pav:previousVersion ?piecePart })
  }
  `, sparql.EscapeString(id))

	res, err := r.store.Query(ctx, q)
	if err != nil {
		return "", err
	}
	bindings := res.Results.Bindings
	if len(bindings) == 0 {
		return "", ErrNotFound
	}
	if len(bindings) > 1 {
		logger.Warnf("minutes %s has %d candidate current content parts, using the first", id, len(bindings))
	}
	return bindings[0]["value"].Value, nil
}

// MeetingContext resolves the owning meeting's header fields. All fields
// are mandatory; a document without a resolvable meeting yields
// ErrNoMeeting, a meeting with missing attributes yields a plain error.
func (r *Resolver) MeetingContext(ctx context.Context, id string) (*Meeting, error) {
	q := fmt.Sprintf(`
  PREFIX mu: <http://mu.semte.ch/vocabularies/core/>
  PREFIX ext: <http://mu.semte.ch/vocabularies/ext/>
  PREFIX dct: <http://purl.org/dc/terms/>
  PREFIX besluit: <http://data.vlaanderen.be/ns/besluit#>
  PREFIX besluitvorming: <https://data.vlaanderen.be/ns/besluitvorming#>
  PREFIX skos: <http://www.w3.org/2004/02/skos/core#>

  SELECT DISTINCT ?numberRepresentation ?geplandeStart ?kind ?kindLabel ?name WHERE {
    ?minutes mu:uuid %s .
    ?minutes a ext:Notulen .
    ?minutes dct:title ?name .
    ?minutes ^besluitvorming:heeftNotulen ?meeting .
    ?meeting ext:numberRepresentation ?numberRepresentation .
    ?meeting besluit:geplandeStart ?geplandeStart .
    ?meeting dct:type ?kind .
    ?kind skos:prefLabel ?kindLabel .
  }
  `, sparql.EscapeString(id))

	res, err := r.store.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(res.Results.Bindings) == 0 {
		return nil, ErrNoMeeting
	}
	b := res.Results.Bindings[0]
	for _, v := range []string{"numberRepresentation", "geplandeStart", "kind", "kindLabel", "name"} {
		if b[v].Value == "" {
			return nil, fmt.Errorf("meeting for minutes %s is missing %s", id, v)
		}
	}
	start, err := time.Parse(time.RFC3339, b["geplandeStart"].Value)
	if err != nil {
		return nil, fmt.Errorf("meeting planned start %q: %w", b["geplandeStart"].Value, err)
	}
	return &Meeting{
		PlannedStart:         start,
		NumberRepresentation: b["numberRepresentation"].Value,
		Kind:                 b["kind"].Value,
		KindLabel:            b["kindLabel"].Value,
		Name:                 b["name"].Value,
	}, nil
}

// SecretaryFor resolves the meeting's secretary. Returns (nil, nil) when
// no secretary is recorded.
func (r *Resolver) SecretaryFor(ctx context.Context, id string) (*Secretary, error) {
	q := fmt.Sprintf(`
  PREFIX mu: <http://mu.semte.ch/vocabularies/core/>
  PREFIX ext: <http://mu.semte.ch/vocabularies/ext/>
  PREFIX dct: <http://purl.org/dc/terms/>
  PREFIX besluitvorming: <https://data.vlaanderen.be/ns/besluitvorming#>
  PREFIX mandaat: <http://data.vlaanderen.be/ns/mandaat#>
  PREFIX foaf: <http://xmlns.com/foaf/0.1/>
  PREFIX persoon: <https://data.vlaanderen.be/ns/persoon#>

  SELECT DISTINCT ?lastName ?firstName ?title WHERE {
    ?minutes mu:uuid %s .
    ?minutes a ext:Notulen .
    ?minutes ^besluitvorming:heeftNotulen ?meeting .
    ?meeting ext:secretarisVoorVergadering ?mandatee .
    ?mandatee dct:title ?title .
    ?mandatee mandaat:isBestuurlijkeAliasVan ?person .
    ?person foaf:familyName ?lastName .
    ?person persoon:gebruikteVoornaam ?firstName .
  }
  `, sparql.EscapeString(id))

	res, err := r.store.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(res.Results.Bindings) == 0 {
		return nil, nil
	}
	b := res.Results.Bindings[0]
	return &Secretary{
		Person: Person{
			FirstName: b["firstName"].Value,
			LastName:  b["lastName"].Value,
		},
		Title: b["title"].Value,
	}, nil
}
