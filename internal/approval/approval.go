// Package approval decides whether a destructive dataset step may proceed.
// Callers receive an Approver instead of reading the terminal themselves.
package approval

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/tcnksm/go-input"

	"powerrank/internal"
)

type Approver interface {
	// Approve reports whether action may be carried out.
	Approve(ctx context.Context, action string) (bool, error)
}

type Func func(ctx context.Context, action string) (bool, error)

func (f Func) Approve(ctx context.Context, action string) (bool, error) {
	return f(ctx, action)
}

// DryRun refuses everything. It is the default when no explicit approval was given.
var DryRun Approver = Func(func(context.Context, string) (bool, error) { return false, nil })

// AutoApprove accepts everything, for --yes.
var AutoApprove Approver = Func(func(context.Context, string) (bool, error) { return true, nil })

// Prompt asks a yes/no question on a terminal.
type Prompt struct {
	ui *input.UI
}

func NewPrompt(r io.Reader, w io.Writer) *Prompt {
	return &Prompt{ui: &input.UI{Reader: r, Writer: w}}
}

func (p *Prompt) Approve(ctx context.Context, action string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	answer, err := p.ui.Ask(action+" [y/N]", &input.Options{
		Default:     "n",
		HideDefault: true,
		Loop:        true,
		ValidateFunc: func(s string) error {
			if _, ok := parseYesNo(s); !ok {
				return internal.ValidationError("answer y or n")
			}
			return nil
		},
	})
	if err != nil {
		return false, err
	}
	yes, _ := parseYesNo(answer)
	return yes, nil
}

func parseYesNo(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true, true
	case "n", "no", "":
		return false, true
	default:
		return false, false
	}
}

// ForCLI picks the approver for a command invocation: --yes approves, a
// terminal on stdin gets a prompt, anything else is a dry run.
func ForCLI(yes bool) Approver {
	if yes {
		return AutoApprove
	}
	if Interactive() {
		return NewPrompt(os.Stdin, os.Stderr)
	}
	return DryRun
}

// Interactive reports whether stdin is a terminal.
func Interactive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}
