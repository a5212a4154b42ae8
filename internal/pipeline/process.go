// Package pipeline runs article URLs through fetch, parse, normalize and
// merge, and records each run in the ledger.
package pipeline

import (
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"powerrank/internal"
	"powerrank/internal/dataset"
	"powerrank/internal/logging"
	"powerrank/internal/sources"
	"powerrank/internal/storage"
)

type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// Ledger is the subset of storage.DB the service writes to.
type Ledger interface {
	InsertRun(run internal.RunRow, timings map[string]float64) error
	InsertPromotion(candidate, latest string, rowsBefore, rowsAfter int, outcome internal.MergeOutcome) error
	SetMetadata(key, value string) error
}

type ProcessingService struct {
	fetcher    Fetcher
	sources    *sources.Registry
	normalizer *Normalizer
	engine     *dataset.Engine
	ledger     Ledger
	log        *logging.Logger
}

func NewProcessingService(fetcher Fetcher, registry *sources.Registry, normalizer *Normalizer, engine *dataset.Engine, ledger Ledger, log *logging.Logger) *ProcessingService {
	if log == nil {
		log = logging.Default()
	}
	return &ProcessingService{
		fetcher:    fetcher,
		sources:    registry,
		normalizer: normalizer,
		engine:     engine,
		ledger:     ledger,
		log:        log,
	}
}

type ProcessResult struct {
	URL     string
	Source  string
	Parsed  int
	Records []internal.RankingRecord
	Dropped []internal.DroppedEntry
	Merge   dataset.MergeResult
	Outcome internal.MergeOutcome
	Err     error
}

type BatchResult struct {
	TraceID   string
	URLs      []ProcessResult
	Promotion *dataset.PromoteResult
}

// Appended is the number of rows written across the batch.
func (b BatchResult) Appended() int {
	n := 0
	for _, r := range b.URLs {
		n += r.Merge.Appended
	}
	return n
}

// ProcessURLs handles urls in order. A failing URL is logged and recorded;
// it never stops the rest of the batch. When promoteTo is set, the newest
// generation is promoted over it once every URL has been merged.
func (s *ProcessingService) ProcessURLs(ctx context.Context, urls []string, promoteTo string) (BatchResult, error) {
	batch := BatchResult{TraceID: traceID()}
	log := s.log.With("traceId", batch.TraceID)

	for _, url := range urls {
		if err := ctx.Err(); err != nil {
			return batch, err
		}
		res := s.ProcessURL(ctx, batch.TraceID, url)
		switch {
		case res.Err == nil:
		case internal.Is(res.Err, internal.ErrSourceNotSupported):
			log.Info("url skipped", "url", url, "reason", res.Err)
		default:
			log.Warn("url not merged", "url", url, "outcome", string(res.Outcome), "err", res.Err)
		}
		batch.URLs = append(batch.URLs, res)
	}

	if promoteTo == "" {
		return batch, nil
	}
	promo, err := s.Promote(ctx, "", promoteTo)
	if err != nil {
		return batch, err
	}
	batch.Promotion = &promo
	return batch, nil
}

func (s *ProcessingService) ProcessURL(ctx context.Context, trace, url string) ProcessResult {
	start := time.Now()
	timings := map[string]float64{}
	res := s.processURL(ctx, url, timings)
	timings["totalMs"] = float64(time.Since(start).Milliseconds())

	run := internal.RunRow{
		TraceID:  trace,
		URL:      url,
		Source:   res.Source,
		Parsed:   res.Parsed,
		Dropped:  len(res.Dropped),
		Appended: res.Merge.Appended,
		Outcome:  string(res.Outcome),
	}
	if res.Err != nil {
		run.Error = res.Err.Error()
	}
	if s.ledger != nil {
		if err := s.ledger.InsertRun(run, timings); err != nil {
			s.log.Error("record run", "url", url, "err", err)
		}
	}
	return res
}

func (s *ProcessingService) processURL(ctx context.Context, url string, timings map[string]float64) ProcessResult {
	res := ProcessResult{URL: url}

	adapter, err := s.sources.Lookup(url)
	if err != nil {
		res.Outcome, res.Err = internal.OutcomeSkipped, err
		return res
	}
	res.Source = adapter.Source()

	t := time.Now()
	doc, err := s.fetcher.Fetch(ctx, url)
	timings["fetchMs"] = float64(time.Since(t).Milliseconds())
	if err != nil {
		res.Outcome, res.Err = internal.OutcomeFailed, err
		return res
	}

	norm, parsed, err := parseDocument(adapter, s.normalizer, url, doc)
	res.Parsed = parsed
	res.Records, res.Dropped = norm.Records, norm.Dropped
	if err != nil {
		res.Outcome, res.Err = internal.OutcomeFailed, err
		return res
	}

	t = time.Now()
	merge, err := s.engine.Merge(ctx, res.Records)
	timings["mergeMs"] = float64(time.Since(t).Milliseconds())
	res.Merge = merge
	switch {
	case internal.Is(err, internal.ErrDuplicateBatch):
		res.Outcome, res.Err = internal.OutcomeDuplicate, err
	case err != nil:
		res.Outcome, res.Err = internal.OutcomeFailed, err
	default:
		res.Outcome = merge.Outcome
		s.log.Info("merged", "url", url, "source", res.Source, "records", len(res.Records), "dropped", len(res.Dropped), "outcome", string(merge.Outcome))
	}
	return res
}

// Promote publishes candidate (the newest generation when empty) and records
// the attempt.
func (s *ProcessingService) Promote(ctx context.Context, candidate, latest string) (dataset.PromoteResult, error) {
	res, err := s.engine.Promote(ctx, candidate, latest)
	if err != nil {
		return res, err
	}
	if s.ledger == nil {
		return res, nil
	}
	if err := s.ledger.InsertPromotion(res.Candidate, res.Latest, res.LatestRows, res.RowsAfter, res.Outcome); err != nil {
		s.log.Error("record promotion", "err", err)
	}
	if res.Outcome == internal.OutcomePromoted {
		if err := s.ledger.SetMetadata(storage.MetaLastPromotion, time.Now().UTC().Format(time.RFC3339)); err != nil {
			s.log.Error("record promotion time", "err", err)
		}
	}
	return res, nil
}

func traceID() string {
	return uuid.NewString()
}
