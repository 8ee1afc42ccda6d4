package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/recallkit/recall/internal/infrastructure/repositories/gitsync"
)

// GitCall records one invocation received by the scripted runner.
type GitCall struct {
	Dir  string
	Args []string
}

// GitResponse is one scripted reply.
type GitResponse struct {
	Stdout string
	Stderr string
	Err    error
}

// ScriptGitRunner is a scripted gitsync.GitRunner. Responses are keyed by the
// git subcommand (the first argument) and consumed in order; the last
// response for a subcommand repeats once the script runs out. Subcommands
// with no script succeed with empty output.
type ScriptGitRunner struct {
	Responses map[string][]GitResponse
	// Block lists subcommands that park until the context expires, for
	// timeout behavior.
	Block map[string]bool
	// OnCall observes every invocation, for side effects like laying down a
	// repository directory when "init" or "clone" runs.
	OnCall func(dir string, args []string)

	// spy: every invocation in order
	Calls []GitCall

	consumed map[string]int
}

var _ gitsync.GitRunner = (*ScriptGitRunner)(nil)

func (r *ScriptGitRunner) Run(
	ctx context.Context, dir string, args ...string,
) (string, string, error) {
	r.Calls = append(r.Calls, GitCall{Dir: dir, Args: args})
	if r.OnCall != nil {
		r.OnCall(dir, args)
	}

	sub := ""
	if len(args) > 0 {
		sub = args[0]
	}

	if r.Block != nil && r.Block[sub] {
		<-ctx.Done()
		return "", "", ctx.Err()
	}

	script, ok := r.Responses[sub]
	if !ok || len(script) == 0 {
		return "", "", nil
	}

	if r.consumed == nil {
		r.consumed = make(map[string]int)
	}
	idx := r.consumed[sub]
	if idx >= len(script) {
		idx = len(script) - 1
	}
	r.consumed[sub]++

	resp := script[idx]
	return resp.Stdout, resp.Stderr, resp.Err
}

// CallsFor returns the recorded invocations of one subcommand.
func (r *ScriptGitRunner) CallsFor(sub string) []GitCall {
	var out []GitCall
	for _, call := range r.Calls {
		if len(call.Args) > 0 && call.Args[0] == sub {
			out = append(out, call)
		}
	}
	return out
}
