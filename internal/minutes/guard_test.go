package minutes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/govmeet/minutes-pdf-service/internal/sparql"
)

func TestGuardNoSignFlow(t *testing.T) {
	g := NewGuard(&fakeStore{})
	assert.NoError(t, g.CheckEditable(context.Background(), "mid-1"))
}

func TestGuardMarkedStatusIsEditable(t *testing.T) {
	store := &fakeStore{results: []*sparql.SelectResult{
		resultWith(sparql.Binding{"status": uri(StatusMarked)}),
	}}
	g := NewGuard(store)
	assert.NoError(t, g.CheckEditable(context.Background(), "mid-1"))
}

func TestGuardOtherStatusBlocks(t *testing.T) {
	store := &fakeStore{results: []*sparql.SelectResult{
		resultWith(sparql.Binding{"status": uri("http://themis.vlaanderen.be/id/handtekenstatus/signed")}),
	}}
	g := NewGuard(store)
	assert.ErrorIs(t, g.CheckEditable(context.Background(), "mid-1"), ErrSigned)
}
