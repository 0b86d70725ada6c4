package collector

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/rs/zerolog/log"
)

// SmartctlAvailable reports whether smartctl is installed.
func SmartctlAvailable() bool {
	_, err := exec.LookPath("smartctl")
	return err == nil
}

// CollectSMART invokes smartctl against one device and returns its raw
// stdout for the parser. smartctl sets bits in its exit status for many
// non-fatal conditions (failing drive, old error log entries), so the
// exit code is ignored as long as there is output; an empty stdout is
// reported as ErrParse.
func CollectSMART(ctx context.Context, device string, timeout time.Duration) ([]byte, error) {
	res, err := runTool(ctx, timeout, "smartctl", "-j", "-H", "-A", "-i", device)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(res.stdout)) == 0 {
		return nil, fmt.Errorf("smartctl %s: empty output (exit %d): %w", device, res.exit, ErrParse)
	}
	if res.exit != 0 {
		log.Debug().Str("device", device).Int("exit", res.exit).Msg("smartctl nonzero exit, output kept")
	}
	return res.stdout, nil
}
