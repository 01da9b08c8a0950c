package minutes

import (
	"context"
	"fmt"

	"github.com/govmeet/minutes-pdf-service/internal/sparql"
)

// StatusMarked is the one sign-flow status under which minutes may still
// be regenerated: the document is marked for signing but nothing has been
// signed yet.
const StatusMarked = "http://themis.vlaanderen.be/id/handtekenstatus/f6a60072-0537-11ec-9a03-0242ac130003"

// Guard decides whether regeneration is permitted, based on the signing
// workflow associated with the document.
//
// This is a point-in-time readout, not a lock: a status change between
// the check and the reference swap is an accepted race.
type Guard struct {
	store sparql.Client
}

func NewGuard(store sparql.Client) *Guard {
	return &Guard{store: store}
}

// CheckEditable returns nil when no signing workflow references the
// document or its status equals StatusMarked, and ErrSigned otherwise.
func (g *Guard) CheckEditable(ctx context.Context, id string) error {
	status, err := g.signFlowStatus(ctx, id)
	if err != nil {
		return err
	}
	if status != "" && status != StatusMarked {
		return ErrSigned
	}
	return nil
}

func (g *Guard) signFlowStatus(ctx context.Context, id string) (string, error) {
	q := fmt.Sprintf(`
  PREFIX mu: <http://mu.semte.ch/vocabularies/core/>
  PREFIX ext: <http://mu.semte.ch/vocabularies/ext/>
  PREFIX sign: <http://mu.semte.ch/vocabularies/ext/handtekenen/>
  PREFIX adms: <http://www.w3.org/ns/adms#>

  SELECT DISTINCT ?status WHERE {
    ?minutes mu:uuid %s .
    ?minutes a ext:Notulen .
    ?markingActivity sign:gebruiktHandtekenprocedure/sign:handtekenprocedureVanStuk ?minutes .
    ?markingActivity adms:status ?status .
  }
  `, sparql.EscapeString(id))

	res, err := g.store.Query(ctx, q)
	if err != nil {
		return "", err
	}
	if len(res.Results.Bindings) == 0 {
		return "", nil
	}
	return res.Results.Bindings[0]["status"].Value, nil
}
