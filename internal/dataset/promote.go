package dataset

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"powerrank/internal"
)

type PromoteResult struct {
	Candidate     string
	Latest        string
	CandidateRows int
	LatestRows    int
	RowsAfter     int
	Outcome       internal.MergeOutcome
}

// Promote replaces latest with candidate when candidate has strictly more
// rows. An empty candidate means the newest generation file. The published
// file is replaced by rename, so readers see either the old or the new one.
func (e *Engine) Promote(ctx context.Context, candidate, latest string) (PromoteResult, error) {
	unlock, err := acquire(e.dir)
	if err != nil {
		return PromoteResult{}, err
	}
	defer unlock()

	if candidate == "" {
		if candidate, err = LatestGeneration(e.dir); err != nil {
			return PromoteResult{}, err
		}
	}
	res := PromoteResult{Candidate: candidate, Latest: latest}

	if info, err := os.Stat(candidate); err != nil || info.IsDir() {
		return res, internal.ValidationError("candidate %s does not exist", candidate)
	}
	if info, err := os.Stat(filepath.Dir(latest)); err != nil || !info.IsDir() {
		return res, internal.ValidationError("directory of %s does not exist", latest)
	}
	if _, err := os.Stat(latest); err != nil {
		return res, internal.ValidationError("latest dataset %s does not exist", latest)
	}

	if res.CandidateRows, err = CountRows(candidate); err != nil {
		return res, err
	}
	if res.LatestRows, err = CountRows(latest); err != nil {
		return res, err
	}
	res.RowsAfter = res.LatestRows

	if res.CandidateRows <= res.LatestRows {
		res.Outcome = internal.OutcomeAbortedNotLarger
		e.log.Warn("candidate not larger than latest", "candidate", candidate, "candidateRows", res.CandidateRows, "latestRows", res.LatestRows)
		return res, nil
	}

	ok, err := e.approver.Approve(ctx, fmt.Sprintf("Replace %s (%d rows) with %s (%d rows)?",
		filepath.Base(latest), res.LatestRows, filepath.Base(candidate), res.CandidateRows))
	if err != nil {
		return res, err
	}
	if !ok {
		res.Outcome = internal.OutcomeDryRun
		e.log.Info("promotion not approved", "candidate", candidate)
		return res, nil
	}

	if err := replaceFile(candidate, latest); err != nil {
		return res, internal.Mark(internal.ErrValidation, err, "promote %s", candidate)
	}

	if res.RowsAfter, err = CountRows(latest); err != nil {
		return res, err
	}
	if res.RowsAfter != res.CandidateRows {
		return res, internal.ValidationError("%s has %d rows after promotion, want %d", latest, res.RowsAfter, res.CandidateRows)
	}

	res.Outcome = internal.OutcomePromoted
	e.log.Info("promoted dataset", "candidate", candidate, "latest", latest, "rows", res.RowsAfter)
	return res, nil
}

// replaceFile copies src to a temp file beside dst and renames it over dst.
func replaceFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".promote-*.csv")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, dst)
}
