package service

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/govmeet/minutes-pdf-service/internal/audit"
	"github.com/govmeet/minutes-pdf-service/internal/files"
	"github.com/govmeet/minutes-pdf-service/internal/minutes"
	"github.com/govmeet/minutes-pdf-service/internal/pdf"
	"github.com/govmeet/minutes-pdf-service/internal/render"
	"github.com/govmeet/minutes-pdf-service/pkg/logger"
	"github.com/govmeet/minutes-pdf-service/pkg/metrics"
)

// ContentResolver reads the minutes document and its meeting context.
type ContentResolver interface {
	CurrentContent(ctx context.Context, id string) (string, error)
	MeetingContext(ctx context.Context, id string) (*minutes.Meeting, error)
	SecretaryFor(ctx context.Context, id string) (*minutes.Secretary, error)
}

// EditabilityGuard gates the pipeline on the signing workflow.
type EditabilityGuard interface {
	CheckEditable(ctx context.Context, id string) error
}

// Converter turns a rendered HTML document into PDF bytes.
type Converter interface {
	Convert(ctx context.Context, html string) ([]byte, error)
}

// Artifacts persists the PDF and owns the canonical-reference swap.
type Artifacts interface {
	Create(ctx context.Context, pdf []byte) (*files.FileMeta, error)
	PriorReference(ctx context.Context, minutesID string) (fileURI, fileID string, err error)
	Swap(ctx context.Context, minutesID, fileURI string) error
}

// Cleaner removes the file record made stale by a successful swap.
type Cleaner interface {
	Delete(ctx context.Context, fileID string, forward http.Header) error
}

// Service runs the generation-and-replacement pipeline for one minutes
// document per request. Requests race freely: there is no cross-request
// locking, the swap is last-writer-wins, and each request reaps only the
// reference it observed as prior-current.
type Service struct {
	resolver  ContentResolver
	guard     EditabilityGuard
	converter Converter
	artifacts Artifacts
	cleaner   Cleaner
	journal   *audit.Journal

	// when set, the rendered document is written here before conversion
	debugDumpPath string
}

func NewService(resolver ContentResolver, guard EditabilityGuard, converter Converter, artifacts Artifacts, cleaner Cleaner, journal *audit.Journal) *Service {
	return &Service{
		resolver:  resolver,
		guard:     guard,
		converter: converter,
		artifacts: artifacts,
		cleaner:   cleaner,
		journal:   journal,
	}
}

// WithDebugDump enables dumping the rendered HTML to path before
// conversion. Diagnostic only.
func (s *Service) WithDebugDump(path string) *Service {
	s.debugDumpPath = path
	return s
}

// Generate produces a fresh PDF for the minutes document and atomically
// repoints its canonical file reference. On any failure before the swap
// the document's prior state is left untouched.
func (s *Service) Generate(ctx context.Context, id string, forward http.Header) (*files.FileMeta, error) {
	started := time.Now()
	meta, err := s.generate(ctx, id, forward)

	outcome := classify(err)
	metrics.GenerationsTotal.WithLabelValues(outcome).Inc()
	if err == nil {
		metrics.GenerationDuration.Observe(time.Since(started).Seconds())
	}
	s.journalize(ctx, id, outcome, meta, err, started)

	return meta, err
}

func (s *Service) generate(ctx context.Context, id string, forward http.Header) (*files.FileMeta, error) {
	// Point-in-time check. The status is not re-read before the swap:
	// the swap itself is atomic and re-reading would only narrow the
	// race with the signing workflow, not close it.
	if err := s.guard.CheckEditable(ctx, id); err != nil {
		return nil, err
	}

	content, err := s.resolver.CurrentContent(ctx, id)
	if err != nil {
		return nil, err
	}
	meeting, err := s.resolver.MeetingContext(ctx, id)
	if err != nil {
		return nil, err
	}
	secretary, err := s.resolver.SecretaryFor(ctx, id)
	if err != nil {
		return nil, err
	}

	normalized := render.Sanitize(content)
	doc, err := render.Document(normalized, meeting, secretary)
	if err != nil {
		return nil, err
	}

	if s.debugDumpPath != "" {
		if werr := os.WriteFile(s.debugDumpPath, []byte(doc), 0o644); werr != nil {
			logger.Warnf("failed to dump rendered html to %s: %v", s.debugDumpPath, werr)
		}
	}

	pdfBytes, err := s.converter.Convert(ctx, doc)
	if err != nil {
		return nil, err
	}

	// Capture the reference that is current right now; after the swap
	// it is the one this request must reap.
	_, priorID, err := s.artifacts.PriorReference(ctx, id)
	if err != nil {
		return nil, err
	}

	meta, err := s.artifacts.Create(ctx, pdfBytes)
	if err != nil {
		return nil, err
	}
	if err := s.artifacts.Swap(ctx, id, meta.URI); err != nil {
		return nil, err
	}

	// Strictly after the swap commits. Failure is logged and swallowed:
	// the request has already succeeded from the caller's perspective.
	if priorID != "" {
		if derr := s.cleaner.Delete(ctx, priorID, forward); derr != nil {
			logger.Warnf("failed to delete stale minutes file %s: %v", priorID, derr)
			metrics.ReapFailures.Inc()
		}
	}

	return meta, nil
}

func classify(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, minutes.ErrNotFound), errors.Is(err, minutes.ErrNoMeeting):
		return "not_found"
	case errors.Is(err, minutes.ErrSigned):
		return "not_editable"
	case errors.Is(err, pdf.ErrRenderFailed):
		return "render_failed"
	default:
		return "error"
	}
}

func (s *Service) journalize(ctx context.Context, id, outcome string, meta *files.FileMeta, genErr error, started time.Time) {
	if s.journal == nil || !s.journal.Enabled() {
		return
	}
	rec := &audit.GenerationRecord{
		ID:         uuid.NewString(),
		MinutesID:  id,
		Outcome:    outcome,
		StartedAt:  started,
		FinishedAt: time.Now(),
		DurationMS: time.Since(started).Milliseconds(),
	}
	if meta != nil {
		rec.FileID = meta.ID
	}
	if genErr != nil {
		rec.Error = genErr.Error()
	}
	if err := s.journal.Save(ctx, rec); err != nil {
		logger.Warnf("failed to journal generation of minutes %s: %v", id, err)
	}
}
