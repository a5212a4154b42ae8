package internal

import (
	"strconv"
	"strings"
)

// CSVHeader is the column order of generation and published dataset files.
var CSVHeader = []string{"entryname", "source", "author", "date", "url", "teamname", "ranking"}

// DateLayout is the canonical calendar-date form stored in the dataset (yymmdd).
const DateLayout = "060102"

type TeamIdentity struct {
	Name         string
	Abbreviation string
	Location     string
	Conference   string
	Division     string
	Aliases      []string
	Colors       [3]string
}

type RawEntry struct {
	TeamText string
	RankText string
	Author   string
	DateText string
}

type RankingRecord struct {
	Entryname string
	Source    string
	Author    string
	Date      string
	URL       string
	Team      TeamIdentity
	Rank      int
}

func MakeEntryname(source, date, abbreviation string) string {
	return strings.Join([]string{source, date, abbreviation}, "_")
}

// Row renders the record in CSVHeader order.
func (r RankingRecord) Row() []string {
	return []string{r.Entryname, r.Source, r.Author, r.Date, r.URL, r.Team.Name, strconv.Itoa(r.Rank)}
}

type DroppedEntry struct {
	Entry  RawEntry
	Reason string
}

type MergeOutcome string

const (
	OutcomeAppended         MergeOutcome = "APPENDED"
	OutcomeRotated          MergeOutcome = "ROTATED"
	OutcomeDuplicate        MergeOutcome = "DUPLICATE"
	OutcomeDryRun           MergeOutcome = "DRY_RUN"
	OutcomePromoted         MergeOutcome = "PROMOTED"
	OutcomeAbortedNotLarger MergeOutcome = "ABORTED_NOT_LARGER"
	OutcomeSkipped          MergeOutcome = "SKIPPED"
	OutcomeFailed           MergeOutcome = "FAILED"
)

type RunRow struct {
	ID        int
	TraceID   string
	URL       string
	Source    string
	Parsed    int
	Dropped   int
	Appended  int
	Outcome   string
	Error     string
	CreatedAt string
}
