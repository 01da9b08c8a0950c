package files

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// forwarded to the file service so deletion runs with the caller's
// authorization
var forwardedHeaders = []string{"Authorization", "Cookie", "Mu-Session-Id", "Mu-Call-Id", "Mu-Auth-Allowed-Groups"}

// Reaper deletes stale file records via the file service. Callers treat
// failure as best-effort cleanup: log and move on.
type Reaper struct {
	baseURL string
	hc      *http.Client
}

func NewReaper(baseURL string) *Reaper {
	return &Reaper{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: 30 * time.Second},
	}
}

// Delete requests deletion of the file with the given uuid, forwarding
// the original request's auth headers.
func (r *Reaper) Delete(ctx context.Context, fileID string, forward http.Header) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, r.baseURL+"/files/"+fileID, nil)
	if err != nil {
		return fmt.Errorf("delete file request: %w", err)
	}
	for _, h := range forwardedHeaders {
		if v := forward.Get(h); v != "" {
			req.Header.Set(h, v)
		}
	}

	resp, err := r.hc.Do(req)
	if err != nil {
		return fmt.Errorf("delete file %s: %w", fileID, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("delete file %s: file service returned %d", fileID, resp.StatusCode)
	}
	return nil
}
