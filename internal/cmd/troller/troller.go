// Package troller implements the troller command-line client.
package troller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/louisbranch/troller/internal/clock"
	"github.com/louisbranch/troller/internal/dice"
	platformgrpc "github.com/louisbranch/troller/internal/platform/grpc"
	"github.com/louisbranch/troller/internal/platform/timeouts"
	"github.com/louisbranch/troller/internal/random"
	rollerv1 "github.com/louisbranch/troller/internal/services/roller/api/grpc/rollerv1"
	"github.com/urfave/cli/v2"
)

// NewApp builds the CLI application writing results to out.
func NewApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "troller",
		Usage:     "roll dice and draw progress clocks",
		Writer:    out,
		ErrWriter: os.Stderr,
		Commands: []*cli.Command{
			rollCommand(),
			clockCommand(),
		},
	}
}

func rollCommand() *cli.Command {
	return &cli.Command{
		Name:      "roll",
		Usage:     "evaluate dice notation",
		ArgsUsage: "<dice>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "seed",
				Usage: "replay a roll with this decimal seed",
			},
			&cli.StringFlag{
				Name:    "addr",
				Usage:   "roll through a roller server instead of locally",
				EnvVars: []string{"TROLLER_SERVER_ADDR"},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "print the normalized input and seed",
			},
		},
		Action: func(c *cli.Context) error {
			text := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if text == "" {
				return cli.Exit("dice notation is required", 2)
			}
			var (
				lines []string
				meta  string
				err   error
			)
			if addr := strings.TrimSpace(c.String("addr")); addr != "" {
				lines, meta, err = rollRemote(c.Context, addr, text, c.String("seed"))
			} else {
				lines, meta, err = rollLocal(c.Context, text, c.String("seed"))
			}
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			for _, line := range lines {
				fmt.Fprintln(c.App.Writer, line)
			}
			if c.Bool("verbose") {
				fmt.Fprintln(c.App.Writer, meta)
			}
			return nil
		},
	}
}

func rollLocal(ctx context.Context, text, seedText string) ([]string, string, error) {
	var seed int64
	if strings.TrimSpace(seedText) != "" {
		parsed, err := strconv.ParseInt(strings.TrimSpace(seedText), 10, 64)
		if err != nil || parsed < 0 {
			return nil, "", fmt.Errorf("seed must be a non-negative decimal integer")
		}
		seed = parsed
	} else {
		generated, err := random.NewSeed()
		if err != nil {
			return nil, "", fmt.Errorf("generate seed: %w", err)
		}
		seed = generated
	}

	resp, err := dice.Engine{}.Roll(ctx, dice.Request{Text: text, Roller: random.NewRoller(seed)})
	if err != nil {
		return nil, "", err
	}
	lines := make([]string, 0, len(resp.Results))
	for _, result := range resp.Results {
		lines = append(lines, result.Name+": "+result.Value)
	}
	return lines, fmt.Sprintf("%s (seed %d, %s)", resp.Normalized, seed, random.RngAlgo), nil
}

func rollRemote(ctx context.Context, addr, text, seed string) ([]string, string, error) {
	conn, err := platformgrpc.Dial(ctx, platformgrpc.DialConfig{
		Addr:     addr,
		Timeout:  timeouts.GRPCDial,
		Services: []string{rollerv1.DiceService_ServiceName},
	})
	if err != nil {
		return nil, "", err
	}
	defer conn.Close()

	callCtx, cancel := context.WithTimeout(ctx, timeouts.GRPCRequest)
	defer cancel()

	req := &rollerv1.RollRequest{Dice: text}
	if strings.TrimSpace(seed) != "" {
		req.Rng = &rollerv1.RngRequest{Seed: strings.TrimSpace(seed), RollMode: random.RollModeReplay.String()}
	}
	resp, err := rollerv1.NewDiceServiceClient(conn).Roll(callCtx, req)
	if err != nil {
		return nil, "", err
	}
	lines := make([]string, 0, len(resp.Results))
	for _, result := range resp.Results {
		lines = append(lines, result.Name+": "+result.Value)
	}
	meta := resp.Normalized
	if resp.Rng != nil {
		meta = fmt.Sprintf("%s (seed %s, %s, %s)", resp.Normalized, resp.Rng.SeedUsed, resp.Rng.RngAlgo, resp.Rng.SeedSource)
	}
	return lines, meta, nil
}

func clockCommand() *cli.Command {
	return &cli.Command{
		Name:      "clock",
		Usage:     "draw a progress clock as SVG",
		ArgsUsage: "[name]",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "segments", Aliases: []string{"s"}, Value: 4, Usage: "total segments"},
			&cli.IntFlag{Name: "filled", Aliases: []string{"f"}, Usage: "filled segments"},
			&cli.StringFlag{Name: "color", Aliases: []string{"c"}, Usage: "html color name or hex code"},
			&cli.IntFlag{Name: "size", Value: clock.RenderSize, Usage: "edge length in pixels"},
			&cli.PathFlag{Name: "out", Aliases: []string{"o"}, Usage: "write the SVG to this file instead of stdout"},
		},
		Action: func(c *cli.Context) error {
			name := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if name == "" {
				name = "clock"
			}
			record, err := clock.New(clock.CreateInput{
				Namespace: "cli",
				Name:      name,
				Segments:  c.Int("segments"),
				Filled:    c.Int("filled"),
				Color:     c.String("color"),
			}, time.Now())
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}
			svg, err := clock.RenderSVG(record, c.Int("size"))
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			if path := c.Path("out"); path != "" {
				if err := os.WriteFile(path, svg, 0o644); err != nil {
					return cli.Exit(fmt.Sprintf("write %s: %v", path, err), 1)
				}
				fmt.Fprintf(c.App.Writer, "%s: %d/%d written to %s\n", record.Title(), record.Filled, record.Segments, path)
				return nil
			}
			_, err = c.App.Writer.Write(svg)
			return err
		},
	}
}
