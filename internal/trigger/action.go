package trigger

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/five82/knowledgehub/internal/blogapi"
	"github.com/five82/knowledgehub/internal/state"
)

// Sources recorded with each generation run.
const (
	SourceScheduled = "scheduled"
	SourceManual    = "manual"
)

// Recorder receives the outcome of every generation run.
type Recorder interface {
	RecordFire(result state.FireResult)
}

// NewGenerateAction returns a FireFunc that posts a generation request. Errors
// are logged and swallowed: nobody is watching a scheduled run, and a failed
// minute is not retried.
func NewGenerateAction(gen blogapi.Generator, secret string, rec Recorder) FireFunc {
	return func(ctx context.Context, req Request) {
		_, _ = Generate(ctx, gen, secret, SourceScheduled, rec)
	}
}

// Generate sends one generation request, logs the outcome under a fresh run
// id and records it when rec is non-nil.
func Generate(ctx context.Context, gen blogapi.Generator, secret, source string, rec Recorder) (blogapi.GenerateResponse, error) {
	runID := uuid.NewString()
	started := time.Now()
	log.Printf("generate %s run=%s: requesting new blog", source, runID)

	resp, err := gen.Generate(blogapi.WithRequestID(ctx, runID), secret)
	result := state.FireResult{
		RunID:    runID,
		Source:   source,
		At:       started,
		Duration: time.Since(started),
		Err:      err,
	}
	if err != nil {
		log.Printf("generate %s run=%s: error generating blog: %v", source, runID, err)
	} else {
		result.Message = resp.Message
		result.BlogID = resp.BlogID
		log.Printf("generate %s run=%s: blog generated: %s", source, runID, resp.Message)
	}

	if rec != nil {
		rec.RecordFire(result)
	}
	return resp, err
}
