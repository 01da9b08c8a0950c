package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/govmeet/minutes-pdf-service/internal/audit"
	"github.com/govmeet/minutes-pdf-service/internal/files"
	"github.com/govmeet/minutes-pdf-service/internal/minutes"
	"github.com/govmeet/minutes-pdf-service/internal/pdf"
	"github.com/govmeet/minutes-pdf-service/pkg/logger"
)

// Generator runs the generation-and-replacement pipeline for one minutes
// document.
type Generator interface {
	Generate(ctx context.Context, id string, forward http.Header) (*files.FileMeta, error)
}

// RegisterMinutesRoutes registers the generation endpoint and, when the
// journal is enabled, a lookup for the most recent generation attempt.
//
// Failures are surfaced as plain-text 500s (also for not-found cases;
// callers of this internal service expect that behavior).
func RegisterMinutesRoutes(r *gin.Engine, svc Generator, journal *audit.Journal, mws ...gin.HandlerFunc) {
	chain := append(mws, func(c *gin.Context) {
		id := c.Param("id")
		meta, err := svc.Generate(c.Request.Context(), id, c.Request.Header)
		if err != nil {
			switch {
			case errors.Is(err, minutes.ErrNotFound):
				c.String(http.StatusInternalServerError, fmt.Sprintf("No minutes with id %q found.", id))
			case errors.Is(err, minutes.ErrNoMeeting):
				c.String(http.StatusInternalServerError, "Could not find meeting related to minutes.")
			case errors.Is(err, minutes.ErrSigned):
				c.String(http.StatusInternalServerError, "Cannot edit minutes that have signatures.")
			case errors.Is(err, pdf.ErrRenderFailed):
				c.String(http.StatusInternalServerError, "Failed to generate PDF for minutes.")
			default:
				logger.Errorf("generating minutes %s: %v", id, err)
				c.String(http.StatusInternalServerError, err.Error())
			}
			return
		}
		c.JSON(http.StatusOK, meta)
	})
	r.GET("/:id", chain...)

	if journal != nil && journal.Enabled() {
		r.GET("/generations/:id", func(c *gin.Context) {
			rec, err := journal.LastFor(c.Request.Context(), c.Param("id"))
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			if rec == nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "no generation recorded"})
				return
			}
			c.JSON(http.StatusOK, rec)
		})
	}
}
