package files

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govmeet/minutes-pdf-service/internal/sparql"
)

type fakeStore struct {
	result  *sparql.SelectResult
	err     error
	queries []string
	updates []string
}

func (f *fakeStore) Query(ctx context.Context, q string) (*sparql.SelectResult, error) {
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	if f.result == nil {
		return &sparql.SelectResult{}, nil
	}
	return f.result, nil
}

func (f *fakeStore) Update(ctx context.Context, u string) error {
	f.updates = append(f.updates, u)
	return f.err
}

type fakeObjects struct {
	names []string
	data  [][]byte
	err   error
}

func (f *fakeObjects) Write(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.names = append(f.names, name)
	f.data = append(f.data, data)
	return "share://" + name, nil
}

func TestCreateWritesBytesThenRecords(t *testing.T) {
	store := &fakeStore{}
	objects := &fakeObjects{}
	a := NewArtifactStore(store, objects, "http://themis.vlaanderen.be/id/bestand/")

	meta, err := a.Create(context.Background(), []byte("%PDF-1.7"))
	require.NoError(t, err)

	require.Len(t, objects.names, 1)
	require.Len(t, store.updates, 1)

	assert.Equal(t, meta.ID+".pdf", meta.Name)
	assert.Equal(t, "application/pdf", meta.Format)
	assert.Equal(t, int64(8), meta.Size)
	assert.Equal(t, "pdf", meta.Extension)
	assert.Equal(t, "http://themis.vlaanderen.be/id/bestand/files/"+meta.ID, meta.URI)

	// both records in one insert, physical linked to virtual
	u := store.updates[0]
	assert.Contains(t, u, "INSERT DATA")
	assert.Contains(t, u, "nie:dataSource <"+meta.URI+">")
	assert.Contains(t, u, "share://"+meta.Name)
}

func TestCreateStorageFailureWritesNoRecord(t *testing.T) {
	store := &fakeStore{}
	objects := &fakeObjects{err: errors.New("disk full")}
	a := NewArtifactStore(store, objects, "http://example.org/id")

	_, err := a.Create(context.Background(), []byte("x"))
	require.Error(t, err)
	assert.Empty(t, store.updates)
}

func TestPriorReference(t *testing.T) {
	result := &sparql.SelectResult{}
	result.Results.Bindings = []sparql.Binding{{
		"file":   {Type: "uri", Value: "http://example.org/id/files/old"},
		"fileId": {Type: "literal", Value: "old"},
	}}
	a := NewArtifactStore(&fakeStore{result: result}, &fakeObjects{}, "http://example.org/id")

	uri, id, err := a.PriorReference(context.Background(), "mid-1")
	require.NoError(t, err)
	assert.Equal(t, "http://example.org/id/files/old", uri)
	assert.Equal(t, "old", id)
}

func TestPriorReferenceAbsent(t *testing.T) {
	a := NewArtifactStore(&fakeStore{}, &fakeObjects{}, "http://example.org/id")
	uri, id, err := a.PriorReference(context.Background(), "mid-1")
	require.NoError(t, err)
	assert.Empty(t, uri)
	assert.Empty(t, id)
}

func TestSwapIsOneAtomicUpdate(t *testing.T) {
	store := &fakeStore{}
	a := NewArtifactStore(store, &fakeObjects{}, "http://example.org/id")

	err := a.Swap(context.Background(), "mid-1", "http://example.org/id/files/new")
	require.NoError(t, err)
	require.Len(t, store.updates, 1)

	u := store.updates[0]
	assert.Contains(t, u, "DELETE {")
	assert.Contains(t, u, "INSERT {")
	assert.Contains(t, u, "WHERE {")
	assert.Contains(t, u, `"mid-1"`)
	assert.Contains(t, u, "<http://example.org/id/files/new>")
	assert.Contains(t, u, "dct:modified")
	// old values may be absent; the update must still apply
	assert.Contains(t, u, "OPTIONAL { ?minutes prov:value ?oldFile . }")
}
