package dataset

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"powerrank/internal"
	"powerrank/internal/approval"
	"powerrank/internal/logging"
)

var fixedNow = time.Date(2024, 10, 18, 9, 30, 0, 0, time.UTC)

func record(source, date, abbrev, team string, rank int) internal.RankingRecord {
	return internal.RankingRecord{
		Entryname: internal.MakeEntryname(source, date, abbrev),
		Source:    source,
		Author:    "Staff",
		Date:      date,
		URL:       "https://example.com/" + strings.ToLower(source),
		Team:      internal.TeamIdentity{Name: team, Abbreviation: abbrev},
		Rank:      rank,
	}
}

func writeDataset(t *testing.T, path string, records ...internal.RankingRecord) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	w := csv.NewWriter(f)
	require.NoError(t, w.Write(internal.CSVHeader))
	for _, r := range records {
		require.NoError(t, w.Write(r.Row()))
	}
	w.Flush()
	require.NoError(t, w.Error())
	require.NoError(t, f.Close())
}

type recorder struct {
	answer  bool
	actions []string
}

func (r *recorder) Approve(_ context.Context, action string) (bool, error) {
	r.actions = append(r.actions, action)
	return r.answer, nil
}

func newEngine(dir string, a approval.Approver) *Engine {
	return NewEngine(dir, WithClock(func() time.Time { return fixedNow }), WithApprover(a), WithLogger(logging.NewNop()))
}

func seedPrevious(t *testing.T, dir string) string {
	t.Helper()
	prev := filepath.Join(dir, "241011_powerrankings.csv")
	writeDataset(t, prev,
		record("ESPN", "241011", "BOS", "Boston Celtics", 1),
		record("ESPN", "241011", "OKC", "Oklahoma City Thunder", 2),
	)
	return prev
}

func cbsBatch() []internal.RankingRecord {
	return []internal.RankingRecord{
		record("CBS", "241018", "BOS", "Boston Celtics", 1),
		record("CBS", "241018", "CLE", "Cleveland Cavaliers", 2),
		record("CBS", "241018", "OKC", "Oklahoma City Thunder", 3),
	}
}

func TestMergeRotatesThenAppends(t *testing.T) {
	dir := t.TempDir()
	prev := seedPrevious(t, dir)
	before, err := os.ReadFile(prev)
	require.NoError(t, err)

	approver := &recorder{answer: true}
	res, err := newEngine(dir, approver).Merge(context.Background(), cbsBatch())
	require.NoError(t, err)
	require.Equal(t, internal.OutcomeAppended, res.Outcome)
	require.Equal(t, filepath.Join(dir, "241018_powerrankings.csv"), res.Path)
	require.Equal(t, prev, res.RotatedFrom)
	require.Equal(t, 2, res.RowsBefore)
	require.Equal(t, 5, res.RowsAfter)
	require.Equal(t, 3, res.Appended)
	require.Len(t, approver.actions, 2)

	after, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(after), string(before)), "prior rows must be untouched")

	untouched, err := os.ReadFile(prev)
	require.NoError(t, err)
	require.Equal(t, before, untouched)
}

func TestMergeDuplicateBatchIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	seedPrevious(t, dir)
	engine := newEngine(dir, approval.AutoApprove)

	_, err := engine.Merge(context.Background(), cbsBatch())
	require.NoError(t, err)
	first, err := os.ReadFile(engine.TodayPath())
	require.NoError(t, err)

	res, err := engine.Merge(context.Background(), cbsBatch())
	require.True(t, internal.Is(err, internal.ErrDuplicateBatch))
	require.Equal(t, internal.OutcomeDuplicate, res.Outcome)
	require.Equal(t, 5, res.RowsAfter)

	second, err := os.ReadFile(engine.TodayPath())
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestMergeCountsRowDuplicates(t *testing.T) {
	dir := t.TempDir()
	seedPrevious(t, dir)

	batch := []internal.RankingRecord{
		record("ESPN", "241011", "DEN", "Denver Nuggets", 3),
		record("ESPN", "241011", "BOS", "Boston Celtics", 1),
	}
	res, err := newEngine(dir, approval.AutoApprove).Merge(context.Background(), batch)
	require.NoError(t, err)
	require.Equal(t, 1, res.RowDuplicates)
	require.Equal(t, 2, res.Appended)
	require.Equal(t, 4, res.RowsAfter)
}

func TestMergeDryRunWritesNothing(t *testing.T) {
	dir := t.TempDir()
	seedPrevious(t, dir)
	engine := NewEngine(dir, WithClock(func() time.Time { return fixedNow }), WithLogger(logging.NewNop()))

	res, err := engine.Merge(context.Background(), cbsBatch())
	require.NoError(t, err)
	require.Equal(t, internal.OutcomeDryRun, res.Outcome)
	require.Equal(t, 0, res.Appended)
	_, err = os.Stat(engine.TodayPath())
	require.True(t, os.IsNotExist(err))
}

func TestMergeAppendDeclinedAfterRotation(t *testing.T) {
	dir := t.TempDir()
	seedPrevious(t, dir)
	calls := 0
	onlyRotate := approval.Func(func(context.Context, string) (bool, error) {
		calls++
		return calls == 1, nil
	})

	engine := newEngine(dir, onlyRotate)
	res, err := engine.Merge(context.Background(), cbsBatch())
	require.NoError(t, err)
	require.Equal(t, internal.OutcomeDryRun, res.Outcome)

	n, err := CountRows(engine.TodayPath())
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestMergeValidation(t *testing.T) {
	dir := t.TempDir()
	engine := newEngine(dir, approval.AutoApprove)

	_, err := engine.Merge(context.Background(), nil)
	require.True(t, internal.Is(err, internal.ErrValidation))

	_, err = engine.Merge(context.Background(), cbsBatch())
	require.True(t, internal.Is(err, internal.ErrValidation), "no prior generation")
}

func TestMergeFailsFastWhenLocked(t *testing.T) {
	dir := t.TempDir()
	seedPrevious(t, dir)

	held := flock.New(filepath.Join(dir, lockName))
	ok, err := held.TryLock()
	require.NoError(t, err)
	require.True(t, ok)
	defer held.Unlock()

	_, err = newEngine(dir, approval.AutoApprove).Merge(context.Background(), cbsBatch())
	require.True(t, internal.Is(err, internal.ErrLocked))
}

func TestRotatePicksNewestByModTime(t *testing.T) {
	dir := t.TempDir()
	older := filepath.Join(dir, "241011_powerrankings.csv")
	newer := filepath.Join(dir, "240101_powerrankings.csv")
	writeDataset(t, older, record("ESPN", "241011", "BOS", "Boston Celtics", 1))
	writeDataset(t, newer, record("NBA", "240101", "DEN", "Denver Nuggets", 1))
	require.NoError(t, os.Chtimes(older, fixedNow.Add(-48*time.Hour), fixedNow.Add(-48*time.Hour)))
	require.NoError(t, os.Chtimes(newer, fixedNow.Add(-time.Hour), fixedNow.Add(-time.Hour)))

	engine := newEngine(dir, approval.AutoApprove)
	res, err := engine.Rotate(context.Background())
	require.NoError(t, err)
	require.Equal(t, internal.OutcomeRotated, res.Outcome)
	require.Equal(t, newer, res.From)

	want, _ := os.ReadFile(newer)
	got, _ := os.ReadFile(res.Path)
	require.Equal(t, want, got)

	res, err = engine.Rotate(context.Background())
	require.NoError(t, err)
	require.Equal(t, internal.OutcomeSkipped, res.Outcome)
}

func TestPromote(t *testing.T) {
	dir := t.TempDir()
	latest := filepath.Join(dir, "data", "latest_powerrankings.csv")
	candidate := filepath.Join(dir, "241018_powerrankings.csv")
	writeDataset(t, latest, record("ESPN", "241011", "BOS", "Boston Celtics", 1))
	writeDataset(t, candidate, record("ESPN", "241011", "BOS", "Boston Celtics", 1))

	engine := newEngine(dir, approval.AutoApprove)

	res, err := engine.Promote(context.Background(), candidate, latest)
	require.NoError(t, err)
	require.Equal(t, internal.OutcomeAbortedNotLarger, res.Outcome)

	writeDataset(t, candidate, cbsBatch()...)
	res, err = newEngine(dir, approval.DryRun).Promote(context.Background(), candidate, latest)
	require.NoError(t, err)
	require.Equal(t, internal.OutcomeDryRun, res.Outcome)
	n, err := CountRows(latest)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	res, err = engine.Promote(context.Background(), "", latest)
	require.NoError(t, err)
	require.Equal(t, internal.OutcomePromoted, res.Outcome)
	require.Equal(t, candidate, res.Candidate)
	require.Equal(t, 1, res.LatestRows)
	require.Equal(t, 3, res.RowsAfter)

	want, _ := os.ReadFile(candidate)
	got, _ := os.ReadFile(latest)
	require.Equal(t, want, got)

	leftovers, err := filepath.Glob(filepath.Join(dir, "data", ".promote-*"))
	require.NoError(t, err)
	require.Empty(t, leftovers)
}

func TestPromoteValidation(t *testing.T) {
	dir := t.TempDir()
	candidate := filepath.Join(dir, "241018_powerrankings.csv")
	writeDataset(t, candidate, cbsBatch()...)
	engine := newEngine(dir, approval.AutoApprove)

	_, err := engine.Promote(context.Background(), filepath.Join(dir, "missing.csv"), filepath.Join(dir, "latest.csv"))
	require.True(t, internal.Is(err, internal.ErrValidation))

	_, err = engine.Promote(context.Background(), candidate, filepath.Join(dir, "nope", "latest.csv"))
	require.True(t, internal.Is(err, internal.ErrValidation))

	_, err = engine.Promote(context.Background(), candidate, filepath.Join(dir, "latest.csv"))
	require.True(t, internal.Is(err, internal.ErrValidation))
}

func TestExportXLSX(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "241018_powerrankings.csv")
	writeDataset(t, src, cbsBatch()...)
	out := filepath.Join(dir, "out", "rankings.xlsx")

	n, err := ExportXLSX(src, out)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(exportSheet, "A1")
	require.NoError(t, err)
	require.Equal(t, "entryname", header)
	team, err := f.GetCellValue(exportSheet, "F3")
	require.NoError(t, err)
	require.Equal(t, "Cleveland Cavaliers", team)
	rank, err := f.GetCellValue(exportSheet, "G4")
	require.NoError(t, err)
	require.Equal(t, "3", rank)
}
