package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"powerrank/internal"
	"powerrank/internal/approval"
	"powerrank/internal/logging"
)

// Engine appends normalized batches to today's generation file. Every write
// is gated by the approver; the default refuses, so an engine built without
// options only reports what it would do.
type Engine struct {
	dir      string
	now      func() time.Time
	approver approval.Approver
	log      *logging.Logger
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithApprover(a approval.Approver) Option {
	return func(e *Engine) { e.approver = a }
}

func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) { e.log = l }
}

func NewEngine(dir string, opts ...Option) *Engine {
	e := &Engine{
		dir:      dir,
		now:      time.Now,
		approver: approval.DryRun,
		log:      logging.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) TodayPath() string {
	return GenerationPath(e.dir, e.now())
}

type RotateResult struct {
	Path    string
	From    string
	Outcome internal.MergeOutcome
}

type MergeResult struct {
	Path          string
	RotatedFrom   string
	RowsBefore    int
	RowsAfter     int
	Appended      int
	RowDuplicates int
	Outcome       internal.MergeOutcome
}

// Rotate creates today's generation as a copy of the newest existing one.
// It is a no-op when today's file already exists.
func (e *Engine) Rotate(ctx context.Context) (RotateResult, error) {
	unlock, err := acquire(e.dir)
	if err != nil {
		return RotateResult{}, err
	}
	defer unlock()
	return e.rotate(ctx)
}

func (e *Engine) rotate(ctx context.Context) (RotateResult, error) {
	today := e.TodayPath()
	if _, err := os.Stat(today); err == nil {
		return RotateResult{Path: today, Outcome: internal.OutcomeSkipped}, nil
	}

	prev, err := LatestGeneration(e.dir)
	if err != nil {
		return RotateResult{}, err
	}
	res := RotateResult{Path: today, From: prev}

	ok, err := e.approver.Approve(ctx, fmt.Sprintf("Create %s from %s?", filepath.Base(today), filepath.Base(prev)))
	if err != nil {
		return res, err
	}
	if !ok {
		res.Outcome = internal.OutcomeDryRun
		e.log.Info("rotation not approved", "today", today, "from", prev)
		return res, nil
	}

	if err := copyFile(prev, today); err != nil {
		return res, internal.Mark(internal.ErrValidation, err, "rotate %s", prev)
	}
	res.Outcome = internal.OutcomeRotated
	e.log.Info("rotated generation", "today", today, "from", prev)
	return res, nil
}

// Merge appends records to today's generation, rotating first when needed.
// A batch whose first entryname is already present is rejected whole with
// ErrDuplicateBatch. Later rows that repeat an existing entryname are counted
// in RowDuplicates but still written.
func (e *Engine) Merge(ctx context.Context, records []internal.RankingRecord) (MergeResult, error) {
	if len(records) == 0 {
		return MergeResult{}, internal.ValidationError("empty batch")
	}

	unlock, err := acquire(e.dir)
	if err != nil {
		return MergeResult{}, err
	}
	defer unlock()

	today := e.TodayPath()
	res := MergeResult{Path: today}

	basis := today
	if _, err := os.Stat(today); err != nil {
		if basis, err = LatestGeneration(e.dir); err != nil {
			return res, err
		}
	}

	rows, err := ReadRows(basis)
	if err != nil {
		return res, err
	}
	res.RowsBefore = len(rows)
	res.RowsAfter = len(rows)

	seen := entrynames(rows)
	first := records[0].Entryname
	if _, dup := seen[first]; dup {
		res.Outcome = internal.OutcomeDuplicate
		return res, internal.Mark(internal.ErrDuplicateBatch, nil, "%s already in %s", first, filepath.Base(basis))
	}
	for _, rec := range records[1:] {
		if _, dup := seen[rec.Entryname]; dup {
			res.RowDuplicates++
		}
	}

	if basis != today {
		rot, err := e.rotate(ctx)
		if err != nil {
			return res, err
		}
		res.RotatedFrom = rot.From
		if rot.Outcome == internal.OutcomeDryRun {
			res.Outcome = internal.OutcomeDryRun
			return res, nil
		}
	}

	ok, err := e.approver.Approve(ctx, fmt.Sprintf("Append %d rows to %s?", len(records), filepath.Base(today)))
	if err != nil {
		return res, err
	}
	if !ok {
		res.Outcome = internal.OutcomeDryRun
		e.log.Info("append not approved", "path", today, "rows", len(records))
		return res, nil
	}

	if err := appendRows(today, records); err != nil {
		return res, internal.Mark(internal.ErrValidation, err, "append to %s", today)
	}

	after, err := CountRows(today)
	if err != nil {
		return res, err
	}
	res.RowsAfter = after
	if after != res.RowsBefore+len(records) {
		return res, internal.ValidationError("%s has %d rows after append, want %d", today, after, res.RowsBefore+len(records))
	}

	res.Appended = len(records)
	res.Outcome = internal.OutcomeAppended
	e.log.Info("appended batch", "path", today, "rows", len(records), "rowsAfter", after, "rowDuplicates", res.RowDuplicates)
	return res, nil
}
