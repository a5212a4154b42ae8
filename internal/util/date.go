package util

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const canonicalDateLayout = "060102"

var (
	reCompactDate  = regexp.MustCompile(`^\d{6}$`)
	reUpdatedOn    = regexp.MustCompile(`(?i)^(updated|published|posted)(\s+on)?[:\s]+`)
	reTimezoneTail = regexp.MustCompile(`(?i)\s+(ET|EST|EDT|PT|PST|PDT|CT|CST|CDT)\.?$`)
	reAtTime       = regexp.MustCompile(`(?i),?\s+at\s+`)
	reMonthDot     = regexp.MustCompile(`\b(Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec)\.`)
	reFullYear     = regexp.MustCompile(`(^|\D)(19|20)\d{2}(\D|$)`)
)

// minYear bounds what an article date can be; anything earlier is a misparse.
const minYear = 2000

var explicitLayouts = []string{
	"2-Jan-06",
	"02-Jan-06",
	"2-Jan-2006",
	"January 2, 2006 3:04 PM",
	"January 2, 2006",
	"Jan 2, 2006 3:04 PM",
	"Jan 2, 2006 3:04 pm",
	"Jan 2, 2006, 3:04 PM",
	"Jan 2, 2006",
}

// ParseDate turns the free-text dates found on ranking articles into a time.
// Accepted inputs include "October 4, 2024", "Updated on October 28, 2024
// 10:21 AM", "241011", "12-Oct-24" and RFC3339 datetime attributes.
func ParseDate(input string) (time.Time, error) {
	s := NormalizeSpaces(input)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if reCompactDate.MatchString(s) {
		t, err := time.Parse(canonicalDateLayout, s)
		if err != nil {
			return time.Time{}, err
		}
		return plausible(input, t)
	}

	s = reUpdatedOn.ReplaceAllString(s, "")
	s = reTimezoneTail.ReplaceAllString(s, "")
	s = reAtTime.ReplaceAllString(s, " ")
	s = reMonthDot.ReplaceAllString(s, "$1")
	s = strings.Replace(s, "Sept ", "Sep ", 1)
	s = strings.TrimSpace(s)

	for _, layout := range explicitLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return plausible(input, t)
		}
	}

	// dateparse reads a truncated year ("Oct 11, 2") as year 2.
	if !reFullYear.MatchString(s) {
		return time.Time{}, fmt.Errorf("unrecognized date %q: no four-digit year", input)
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q: %w", input, err)
	}
	return plausible(input, t)
}

func plausible(input string, t time.Time) (time.Time, error) {
	if t.Year() < minYear {
		return time.Time{}, fmt.Errorf("implausible date %q: year %d", input, t.Year())
	}
	return t, nil
}

// CanonicalDate renders a parsed article date as yymmdd.
func CanonicalDate(input string) (string, error) {
	t, err := ParseDate(input)
	if err != nil {
		return "", err
	}
	return t.Format(canonicalDateLayout), nil
}
