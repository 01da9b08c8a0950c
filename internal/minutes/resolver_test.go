package minutes

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govmeet/minutes-pdf-service/internal/sparql"
)

// fake store for testing: answers queries in order and records them
type fakeStore struct {
	results []*sparql.SelectResult
	err     error
	queries []string
	updates []string
}

func (f *fakeStore) Query(ctx context.Context, q string) (*sparql.SelectResult, error) {
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.results) == 0 {
		return emptyResult(), nil
	}
	r := f.results[0]
	f.results = f.results[1:]
	return r, nil
}

func (f *fakeStore) Update(ctx context.Context, u string) error {
	f.updates = append(f.updates, u)
	return f.err
}

func emptyResult() *sparql.SelectResult {
	return &sparql.SelectResult{}
}

func resultWith(bindings ...sparql.Binding) *sparql.SelectResult {
	r := &sparql.SelectResult{}
	r.Results.Bindings = bindings
	return r
}

func lit(v string) sparql.Term { return sparql.Term{Type: "literal", Value: v} }
func uri(v string) sparql.Term { return sparql.Term{Type: "uri", Value: v} }

func TestCurrentContent(t *testing.T) {
	store := &fakeStore{results: []*sparql.SelectResult{
		resultWith(sparql.Binding{"value": lit("<p>Hello</p>")}),
	}}
	r := NewResolver(store)

	content, err := r.CurrentContent(context.Background(), "mid-1")
	require.NoError(t, err)
	assert.Equal(t, "<p>Hello</p>", content)
	// the id must be escaped into the query as a string literal
	assert.Contains(t, store.queries[0], `"mid-1"`)
	assert.Contains(t, store.queries[0], "pav:previousVersion")
}

func TestCurrentContentNotFound(t *testing.T) {
	r := NewResolver(&fakeStore{})
	_, err := r.CurrentContent(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCurrentContentMultiMatchTakesFirst(t *testing.T) {
	store := &fakeStore{results: []*sparql.SelectResult{
		resultWith(
			sparql.Binding{"value": lit("first")},
			sparql.Binding{"value": lit("second")},
		),
	}}
	content, err := NewResolver(store).CurrentContent(context.Background(), "mid-1")
	require.NoError(t, err)
	assert.Equal(t, "first", content)
}

func TestMeetingContext(t *testing.T) {
	store := &fakeStore{results: []*sparql.SelectResult{
		resultWith(sparql.Binding{
			"numberRepresentation": lit("VR PV 2024/12"),
			"geplandeStart":        lit("2024-03-22T09:00:00Z"),
			"kind":                 uri("http://themis.vlaanderen.be/id/concept/vergaderactiviteit-type/9b4701f8-a136-4009-94c6-d64fdc96b9a2"),
			"kindLabel":            lit("Ministerraad"),
			"name":                 lit("Notulen - 22 maart 2024"),
		}),
	}}
	m, err := NewResolver(store).MeetingContext(context.Background(), "mid-1")
	require.NoError(t, err)
	assert.Equal(t, "VR PV 2024/12", m.NumberRepresentation)
	assert.Equal(t, "Ministerraad", m.KindLabel)
	assert.Equal(t, "Notulen - 22 maart 2024", m.Name)
	assert.Equal(t, 2024, m.PlannedStart.Year())
}

func TestMeetingContextAbsent(t *testing.T) {
	_, err := NewResolver(&fakeStore{}).MeetingContext(context.Background(), "mid-1")
	assert.ErrorIs(t, err, ErrNoMeeting)
}

func TestMeetingContextMissingField(t *testing.T) {
	store := &fakeStore{results: []*sparql.SelectResult{
		resultWith(sparql.Binding{
			"numberRepresentation": lit("VR PV 2024/12"),
			"geplandeStart":        lit("2024-03-22T09:00:00Z"),
			// kind, kindLabel, name missing
		}),
	}}
	_, err := NewResolver(store).MeetingContext(context.Background(), "mid-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoMeeting)
}

func TestSecretaryForAbsentIsNotAnError(t *testing.T) {
	sec, err := NewResolver(&fakeStore{}).SecretaryFor(context.Background(), "mid-1")
	require.NoError(t, err)
	assert.Nil(t, sec)
}

func TestSecretaryFor(t *testing.T) {
	store := &fakeStore{results: []*sparql.SelectResult{
		resultWith(sparql.Binding{
			"firstName": lit("Jeroen"),
			"lastName":  lit("Overmeer"),
			"title":     lit("Secretaris"),
		}),
	}}
	sec, err := NewResolver(store).SecretaryFor(context.Background(), "mid-1")
	require.NoError(t, err)
	require.NotNil(t, sec)
	assert.Equal(t, "Jeroen", sec.Person.FirstName)
	assert.Equal(t, "Secretaris", sec.Title)
}

func TestResolverPropagatesStoreErrors(t *testing.T) {
	boom := errors.New("store down")
	r := NewResolver(&fakeStore{err: boom})
	_, err := r.CurrentContent(context.Background(), "mid-1")
	assert.ErrorIs(t, err, boom)
}
