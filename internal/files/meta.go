package files

import "time"

// FileMeta describes the virtual file record returned to the caller
// after a successful generation.
type FileMeta struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Format    string    `json:"format"`
	Size      int64     `json:"size"`
	Extension string    `json:"extension"`
	Created   time.Time `json:"created"`
	URI       string    `json:"uri"`
}
