package collector

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRunToolNotFound(t *testing.T) {
	_, err := runTool(context.Background(), time.Second, "definitely-not-a-real-tool-42")
	if !errors.Is(err, ErrToolNotFound) {
		t.Errorf("err = %v, want ErrToolNotFound", err)
	}
}

func TestRunToolCapturesOutput(t *testing.T) {
	res, err := runTool(context.Background(), 5*time.Second, "sh", "-c", "echo out; echo err >&2")
	if err != nil {
		t.Fatalf("runTool: %v", err)
	}
	if string(res.stdout) != "out\n" {
		t.Errorf("stdout = %q", res.stdout)
	}
	if string(res.stderr) != "err\n" {
		t.Errorf("stderr = %q", res.stderr)
	}
	if res.exit != 0 {
		t.Errorf("exit = %d", res.exit)
	}
}

func TestRunToolNonzeroExit(t *testing.T) {
	res, err := runTool(context.Background(), 5*time.Second, "sh", "-c", "echo partial; exit 4")
	if err != nil {
		t.Fatalf("nonzero exit must not be an error here: %v", err)
	}
	if res.exit != 4 {
		t.Errorf("exit = %d, want 4", res.exit)
	}
	if string(res.stdout) != "partial\n" {
		t.Errorf("stdout = %q", res.stdout)
	}
}

func TestRunToolTimeout(t *testing.T) {
	_, err := runTool(context.Background(), 50*time.Millisecond, "sleep", "5")
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("err = %v, want ErrTimeout", err)
	}
}
