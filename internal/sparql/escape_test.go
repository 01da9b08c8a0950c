package sparql

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEscapeString(t *testing.T) {
	assert.Equal(t, `"plain"`, EscapeString("plain"))
	assert.Equal(t, `"with \"quotes\""`, EscapeString(`with "quotes"`))
	assert.Equal(t, `"back\\slash"`, EscapeString(`back\slash`))
	assert.Equal(t, `"line\nbreak"`, EscapeString("line\nbreak"))
	// injection attempt stays inside the literal
	assert.Equal(t, `"x\" . ?s ?p ?o . \""`, EscapeString(`x" . ?s ?p ?o . "`))
}

func TestEscapeURI(t *testing.T) {
	assert.Equal(t, "<http://example.org/a>", EscapeURI("http://example.org/a"))
	assert.Equal(t, `<http://example.org/a\>b>`, EscapeURI("http://example.org/a>b"))
}

func TestEscapeInt(t *testing.T) {
	assert.Equal(t, `"42"^^<http://www.w3.org/2001/XMLSchema#integer>`, EscapeInt(42))
}

func TestEscapeDateTime(t *testing.T) {
	ts := time.Date(2024, 3, 7, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, `"2024-03-07T09:30:00.000Z"^^<http://www.w3.org/2001/XMLSchema#dateTime>`, EscapeDateTime(ts))
}
