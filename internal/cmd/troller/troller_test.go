package troller

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	rollerapp "github.com/louisbranch/troller/internal/services/roller/app"
	"github.com/urfave/cli/v2"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := NewApp(&out)
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.RunContext(context.Background(), append([]string{"troller"}, args...))
	return out.String(), err
}

func TestRollConstantExpression(t *testing.T) {
	out, err := runApp(t, "roll", "base: 2 * (3 + 4), 10 - 3 - 2")
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	want := "base: 2 * (3 + 4) => 14\nRoll 2: 10 - 3 - 2 => 9\n"
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestRollSeedReplays(t *testing.T) {
	first, err := runApp(t, "roll", "--seed", "77", "4d6h3 + 1d8")
	if err != nil {
		t.Fatalf("first roll: %v", err)
	}
	second, err := runApp(t, "roll", "--seed", "77", "4d6h3 + 1d8")
	if err != nil {
		t.Fatalf("second roll: %v", err)
	}
	if first != second {
		t.Fatalf("seeded rolls differ: %q vs %q", first, second)
	}
}

func TestRollVerbose(t *testing.T) {
	out, err := runApp(t, "roll", "--seed", "5", "--verbose", "1d6")
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if !strings.Contains(out, "(seed 5, pcg64)") {
		t.Fatalf("verbose output missing seed: %q", out)
	}
}

func TestRollErrors(t *testing.T) {
	if _, err := runApp(t, "roll"); err == nil {
		t.Fatal("expected missing dice error")
	}
	if _, err := runApp(t, "roll", "2d"); err == nil {
		t.Fatal("expected syntax error")
	}
	if _, err := runApp(t, "roll", "--seed", "-4", "1d6"); err == nil {
		t.Fatal("expected seed error")
	}
}

func TestClockWritesSVG(t *testing.T) {
	out, err := runApp(t, "clock", "--segments", "6", "--filled", "2", "--color", "teal", "the heist")
	if err != nil {
		t.Fatalf("clock: %v", err)
	}
	if !strings.HasPrefix(out, "<svg") || !strings.Contains(out, "The Heist") {
		t.Fatalf("unexpected svg: %s", out)
	}
}

func TestClockWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clock.svg")
	out, err := runApp(t, "clock", "-s", "4", "-f", "4", "-o", path, "alarm")
	if err != nil {
		t.Fatalf("clock: %v", err)
	}
	if !strings.Contains(out, "Alarm: 4/4 written to") {
		t.Fatalf("unexpected output %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("<svg")) {
		t.Fatalf("unexpected file contents %q", data)
	}
}

func TestClockRejectsInvalid(t *testing.T) {
	if _, err := runApp(t, "clock", "--segments", "3", "--filled", "5"); err == nil {
		t.Fatal("expected invalid clock error")
	}
}

func TestRollRemoteReplay(t *testing.T) {
	t.Setenv("TROLLER_DB_PATH", filepath.Join(t.TempDir(), "troller.db"))
	t.Setenv("TROLLER_ALLOW_REPLAY", "true")
	srv, err := rollerapp.NewWithAddr("127.0.0.1:0")
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	remote, err := runApp(t, "roll", "--addr", srv.Addr(), "--seed", "42", "--verbose", "hit: 1d20 + 5")
	if err != nil {
		t.Fatalf("remote roll: %v", err)
	}
	local, err := runApp(t, "roll", "--seed", "42", "hit: 1d20 + 5")
	if err != nil {
		t.Fatalf("local roll: %v", err)
	}
	if !strings.HasPrefix(remote, local) {
		t.Fatalf("remote %q does not replay local %q", remote, local)
	}
	if !strings.Contains(remote, "(seed 42, pcg64, CLIENT)") {
		t.Fatalf("remote output missing rng metadata: %q", remote)
	}
}
