package util

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var rankPattern = regexp.MustCompile(`^#?\s*(\d{1,3})\.?$`)

// ParseRank coerces rank text ("1", "1.", "#12", " 7 ") to a positive integer.
func ParseRank(input string) (int, error) {
	compact := strings.TrimSpace(strings.ReplaceAll(input, " ", " "))
	m := rankPattern.FindStringSubmatch(compact)
	if len(m) < 2 {
		return 0, fmt.Errorf("invalid rank %q", input)
	}
	rank, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, err
	}
	if rank <= 0 {
		return 0, fmt.Errorf("rank must be positive: %q", input)
	}
	return rank, nil
}
