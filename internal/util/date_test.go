package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalDate(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "October 4, 2024", want: "241004"},
		{input: "Updated on October 28, 2024 10:21 AM", want: "241028"},
		{input: "241011", want: "241011"},
		{input: "12-Oct-24", want: "241012"},
		{input: "2024-10-11T14:00:00Z", want: "241011"},
		{input: "Oct. 8, 2024 at 7:00 am ET", want: "241008"},
		{input: "Nov 12, 2024 8:05 PM ET", want: "241112"},
		{input: "  December 2,   2024 ", want: "241202"},
		{input: "Oct 11, 2024", want: "241011"},
		{input: "Oct 11, 2024 2:35 PM ET", want: "241011"},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := CanonicalDate(tc.input)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestCanonicalDateRejectsGarbage(t *testing.T) {
	_, err := CanonicalDate("")
	require.Error(t, err)
	_, err = CanonicalDate("tbd")
	require.Error(t, err)
}

func TestCanonicalDateRejectsTruncatedYear(t *testing.T) {
	for _, input := range []string{"Oct 11, 2", "Oct 11, 20", "October 4", "1999-12-31T10:00:00Z"} {
		_, err := CanonicalDate(input)
		require.Error(t, err, input)
	}
}
