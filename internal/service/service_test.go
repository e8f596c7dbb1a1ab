package service

import (
	"context"
	"os"
	"slices"
	"sync"

	"dataset-cutter/log"
)

func init() {
	log.InitLogger()
}

// runnerFunc adapts a closure to the Runner interface.
type runnerFunc func(ctx context.Context, name string, args ...string) (string, string, error)

func (f runnerFunc) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	return f(ctx, name, args...)
}

// recordedCall is one invocation captured by scriptedRunner.
type recordedCall struct {
	Name string
	Args []string
}

// scriptedRunner plays ffmpeg/ffprobe: probes return ProbeJSON, encodes and
// remuxes create the output file unless the rung is marked failing. Keeps
// every invocation for assertions.
type scriptedRunner struct {
	mu    sync.Mutex
	Calls []recordedCall

	// ProbeJSON is returned for every ffprobe invocation; empty means the
	// probe fails.
	ProbeJSON string
	// FailRungs fails any ffmpeg call whose args contain the key (for
	// example "copy" via "-c copy", or an encoder name).
	FailRungs []string
	// FailDecodeCheck fails the "-f null -" verification pass.
	FailDecodeCheck bool
}

func (r *scriptedRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	r.mu.Lock()
	r.Calls = append(r.Calls, recordedCall{Name: name, Args: slices.Clone(args)})
	r.mu.Unlock()

	if name == "ffprobe" {
		if r.ProbeJSON == "" {
			return "", "probe failed", errExit
		}
		return r.ProbeJSON, "", nil
	}

	if isDecodeCheck(args) {
		if r.FailDecodeCheck {
			return "", "corrupt frame", errExit
		}
		return "", "", nil
	}

	for _, rung := range r.FailRungs {
		if matchesRung(args, rung) {
			return "", "Conversion failed!", errExit
		}
	}

	// Successful ffmpeg runs leave an output file so the caller's rename
	// has something to move.
	out := args[len(args)-1]
	if err := os.WriteFile(out, []byte("media"), 0o644); err != nil {
		return "", err.Error(), err
	}
	return "", "", nil
}

func (r *scriptedRunner) ffmpegCalls() []recordedCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	var calls []recordedCall
	for _, call := range r.Calls {
		if call.Name == "ffmpeg" {
			calls = append(calls, call)
		}
	}
	return calls
}

func matchesRung(args []string, rung string) bool {
	if rung == "copy" {
		return hasPair(args, "-c", "copy")
	}
	return hasPair(args, "-c:v", rung)
}

func isDecodeCheck(args []string) bool {
	return hasPair(args, "-f", "null")
}

func hasPair(args []string, flag, value string) bool {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag && args[i+1] == value {
			return true
		}
	}
	return false
}

var errExit = exitError{}

type exitError struct{}

func (exitError) Error() string { return "exit status 1" }
