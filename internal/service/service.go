package service

import (
	"bytes"
	"context"
	"os/exec"

	"golang.org/x/sync/semaphore"
)

// Runner executes an argument vector synchronously with no shell
// interpretation, returning captured stdout and stderr. Injectable so tests
// never need a real ffmpeg.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	return stdoutBuf.String(), stderrBuf.String(), err
}

// Service hosts the export/repair core. transcodeSem keeps one ffmpeg child
// process at a time across interactive exports and batch repair.
type Service struct {
	runner       Runner
	transcodeSem *semaphore.Weighted
}

func NewService() *Service {
	return &Service{
		runner:       execRunner{},
		transcodeSem: semaphore.NewWeighted(1),
	}
}

// NewServiceWithRunner is the test constructor.
func NewServiceWithRunner(runner Runner) *Service {
	return &Service{
		runner:       runner,
		transcodeSem: semaphore.NewWeighted(1),
	}
}
