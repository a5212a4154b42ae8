package approval

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStaticApprovers(t *testing.T) {
	ok, err := DryRun.Approve(context.Background(), "append")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = AutoApprove.Approve(context.Background(), "append")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = ForCLI(true).Approve(context.Background(), "append")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestPromptAnswers(t *testing.T) {
	cases := map[string]bool{
		"y\n":   true,
		"YES\n": true,
		"n\n":   false,
		"no\n":  false,
	}
	for in, want := range cases {
		var out bytes.Buffer
		ok, err := NewPrompt(strings.NewReader(in), &out).Approve(context.Background(), "Promote candidate?")
		require.NoError(t, err, in)
		require.Equal(t, want, ok, in)
		require.Contains(t, out.String(), "Promote candidate?")
	}
}

func TestPromptRejectsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ok, err := NewPrompt(strings.NewReader("y\n"), &bytes.Buffer{}).Approve(ctx, "append")
	require.Error(t, err)
	require.False(t, ok)
}
