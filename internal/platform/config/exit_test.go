package config

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

type codedError struct {
	code int
}

func (e codedError) Error() string { return fmt.Sprintf("failed with %d", e.code) }
func (e codedError) ExitCode() int { return e.code }

func captureExit(t *testing.T) (*bytes.Buffer, *int) {
	t.Helper()
	var out bytes.Buffer
	code := -1
	prevExit, prevStderr := osExit, stderr
	osExit = func(c int) { code = c }
	stderr = &out
	t.Cleanup(func() {
		osExit, stderr = prevExit, prevStderr
	})
	return &out, &code
}

func TestExitf(t *testing.T) {
	out, code := captureExit(t)
	Exitf("fatal: %s", "something broke")
	if *code != 1 {
		t.Fatalf("exit code = %d, want 1", *code)
	}
	if out.String() != "fatal: something broke\n" {
		t.Fatalf("stderr = %q", out.String())
	}
}

func TestExitUsesCarriedCode(t *testing.T) {
	out, code := captureExit(t)
	Exit(fmt.Errorf("roll: %w", codedError{code: 2}))
	if *code != 2 {
		t.Fatalf("exit code = %d, want 2", *code)
	}
	if out.String() != "roll: failed with 2\n" {
		t.Fatalf("stderr = %q", out.String())
	}
}

func TestExitNil(t *testing.T) {
	_, code := captureExit(t)
	Exit(nil)
	if *code != -1 {
		t.Fatalf("expected no exit, got %d", *code)
	}
}

func TestExitCode(t *testing.T) {
	if got := ExitCode(errors.New("plain")); got != 1 {
		t.Fatalf("plain error code = %d", got)
	}
	if got := ExitCode(codedError{code: 0}); got != 1 {
		t.Fatalf("zero code should fall back to 1, got %d", got)
	}
}
