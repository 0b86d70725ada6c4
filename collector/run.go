package collector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/rs/zerolog/log"
)

// cmdResult carries the outcome of one tool invocation. A nonzero exit
// status is not an error at this layer: smartctl encodes device state in
// its exit bitmask and still writes usable JSON to stdout.
type cmdResult struct {
	stdout []byte
	stderr []byte
	exit   int
}

// runTool executes an external binary with a deadline. Returns
// ErrToolNotFound when the binary is missing and ErrTimeout when the
// deadline expires before the tool finishes.
func runTool(ctx context.Context, timeout time.Duration, name string, args ...string) (cmdResult, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return cmdResult{}, fmt.Errorf("%s: %w", name, ErrToolNotFound)
	}

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(cctx, path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	if cctx.Err() == context.DeadlineExceeded {
		log.Warn().Str("tool", name).Dur("timeout", timeout).Msg("tool invocation timed out")
		return cmdResult{}, fmt.Errorf("%s: %w", name, ErrTimeout)
	}

	res := cmdResult{stdout: stdout.Bytes(), stderr: stderr.Bytes()}
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return cmdResult{}, fmt.Errorf("%s: %w", name, runErr)
		}
		res.exit = exitErr.ExitCode()
	}
	return res, nil
}
