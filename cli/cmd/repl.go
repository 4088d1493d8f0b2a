package cmd

import (
	"context"

	"github.com/ardnew/tracer/cli/cmd/repl"
	"github.com/ardnew/tracer/log"
	"github.com/ardnew/tracer/trace"
)

// TraceOptions are the registry options selected on the command line. They
// are bound for commands that construct their own registry.
type TraceOptions []trace.Option

// Repl starts an interactive session that drives a tracer.
type Repl struct{}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context, opts TraceOptions) error {
	var cacheDir string
	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	return repl.Run(ctx, opts, cacheDir, log.Default().Wrap(log.WithName("repl")))
}
