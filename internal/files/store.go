package files

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/govmeet/minutes-pdf-service/internal/sparql"
	"github.com/govmeet/minutes-pdf-service/internal/storage"
)

// ArtifactStore persists PDF bytes and records the dual virtual/physical
// file pair in the knowledge store. It also owns the canonical-reference
// swap on the minutes document.
type ArtifactStore struct {
	store        sparql.Client
	objects      storage.Store
	resourceBase string
}

func NewArtifactStore(store sparql.Client, objects storage.Store, resourceBase string) *ArtifactStore {
	return &ArtifactStore{
		store:        store,
		objects:      objects,
		resourceBase: strings.TrimRight(resourceBase, "/"),
	}
}

// Create writes the PDF bytes to durable storage, then records the
// virtual and physical file as a linked pair. Bytes go first: a crash in
// between leaves an orphaned blob, never a record pointing at bytes that
// were never written.
func (a *ArtifactStore) Create(ctx context.Context, pdf []byte) (*FileMeta, error) {
	id := uuid.NewString()
	name := id + ".pdf"

	physicalURI, err := a.objects.Write(ctx, name, pdf, "application/pdf")
	if err != nil {
		return nil, fmt.Errorf("store pdf bytes: %w", err)
	}

	meta := &FileMeta{
		ID:        id,
		Name:      name,
		Format:    "application/pdf",
		Size:      int64(len(pdf)),
		Extension: "pdf",
		Created:   time.Now(),
		URI:       a.resourceBase + "/files/" + id,
	}
	if err := a.insertFilePair(ctx, meta, physicalURI); err != nil {
		return nil, fmt.Errorf("record file pair: %w", err)
	}
	return meta, nil
}

func (a *ArtifactStore) insertFilePair(ctx context.Context, meta *FileMeta, physicalURI string) error {
	physicalID := uuid.NewString()
	created := sparql.EscapeDateTime(meta.Created)
	format := sparql.EscapeString(meta.Format)
	size := sparql.EscapeInt(meta.Size)
	ext := sparql.EscapeString(meta.Extension)

	q := fmt.Sprintf(`
  PREFIX mu: <http://mu.semte.ch/vocabularies/core/>
  PREFIX nfo: <http://www.semanticdesktop.org/ontologies/2007/03/22/nfo#>
  PREFIX nie: <http://www.semanticdesktop.org/ontologies/2007/01/19/nie#>
  PREFIX dbpedia: <http://dbpedia.org/ontology/>
  PREFIX dct: <http://purl.org/dc/terms/>

  INSERT DATA {
    %s a nfo:FileDataObject ;
        nfo:fileName %s ;
        mu:uuid %s ;
        dct:format %s ;
        nfo:fileSize %s ;
        dbpedia:fileExtension %s ;
        dct:created %s ;
        dct:modified %s .
    %s a nfo:FileDataObject ;
        nie:dataSource %s ;
        nfo:fileName %s ;
        mu:uuid %s ;
        dct:format %s ;
        nfo:fileSize %s ;
        dbpedia:fileExtension %s ;
        dct:created %s ;
        dct:modified %s .
  }`,
		sparql.EscapeURI(meta.URI),
		sparql.EscapeString(meta.Name), sparql.EscapeString(meta.ID),
		format, size, ext, created, created,
		sparql.EscapeURI(physicalURI),
		sparql.EscapeURI(meta.URI),
		sparql.EscapeString(physicalID+"."+meta.Extension), sparql.EscapeString(physicalID),
		format, size, ext, created, created,
	)
	return a.store.Update(ctx, q)
}

// PriorReference returns the URI and uuid of the file currently
// referenced by the minutes document, or empty strings when there is
// none.
func (a *ArtifactStore) PriorReference(ctx context.Context, minutesID string) (fileURI, fileID string, err error) {
	q := fmt.Sprintf(`
  PREFIX mu: <http://mu.semte.ch/vocabularies/core/>
  PREFIX ext: <http://mu.semte.ch/vocabularies/ext/>
  PREFIX prov: <http://www.w3.org/ns/prov#>

  SELECT ?file ?fileId WHERE {
    ?minutes mu:uuid %s .
    ?minutes a ext:Notulen .
    ?minutes prov:value ?file .
    ?file mu:uuid ?fileId .
  }
  `, sparql.EscapeString(minutesID))

	res, err := a.store.Query(ctx, q)
	if err != nil {
		return "", "", err
	}
	if len(res.Results.Bindings) == 0 {
		return "", "", nil
	}
	b := res.Results.Bindings[0]
	return b["file"].Value, b["fileId"].Value, nil
}

// Swap atomically repoints the minutes document's canonical file
// reference to fileURI and refreshes its modified timestamp. One update
// statement: a reader never observes the document without a reference.
func (a *ArtifactStore) Swap(ctx context.Context, minutesID, fileURI string) error {
	q := fmt.Sprintf(`
  PREFIX mu: <http://mu.semte.ch/vocabularies/core/>
  PREFIX ext: <http://mu.semte.ch/vocabularies/ext/>
  PREFIX prov: <http://www.w3.org/ns/prov#>
  PREFIX dct: <http://purl.org/dc/terms/>

  DELETE {
    ?minutes prov:value ?oldFile .
    ?minutes dct:modified ?oldModified .
  }
  INSERT {
    ?minutes prov:value %s .
    ?minutes dct:modified %s .
  }
  WHERE {
    ?minutes mu:uuid %s .
    ?minutes a ext:Notulen .
    OPTIONAL { ?minutes prov:value ?oldFile . }
    OPTIONAL { ?minutes dct:modified ?oldModified . }
  }`,
		sparql.EscapeURI(fileURI),
		sparql.EscapeDateTime(time.Now()),
		sparql.EscapeString(minutesID),
	)
	return a.store.Update(ctx, q)
}
