package minutes

import (
	"errors"
	"time"
)

var (
	// ErrNotFound means the document has no current content body (or no
	// such document exists).
	ErrNotFound = errors.New("minutes not found")
	// ErrNoMeeting means the owning meeting's context could not be
	// resolved.
	ErrNoMeeting = errors.New("meeting not found")
	// ErrSigned means a signing workflow has advanced past the point
	// where regeneration is still allowed.
	ErrSigned = errors.New("cannot edit minutes that have signatures")
)

// Meeting is the read-only context snapshot rendered into the document's
// header: all fields are mandatory.
type Meeting struct {
	PlannedStart         time.Time
	NumberRepresentation string
	Kind                 string // meeting-kind concept URI
	KindLabel            string
	Name                 string // display name of the minutes document
}

type Person struct {
	FirstName string
	LastName  string
}

// Secretary is the signer rendered at the bottom of the document. Not
// every meeting has one; absence is a valid state.
type Secretary struct {
	Person Person
	Title  string
}
