// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ik5/dsdplay"
	"github.com/ik5/dsdplay/audio"
	"github.com/ik5/dsdplay/dsd"
	"github.com/ik5/dsdplay/formats/flac"
	"github.com/ik5/dsdplay/internal/cli"
	"github.com/ik5/dsdplay/internal/config"
	"github.com/ik5/dsdplay/internal/ui"
)

// version is set via ldflags at build time
var version = "dev"

var CLI struct {
	Input    string `arg:"" name:"input" help:"DSF or DSDIFF file, - for stdin" optional:""`
	Output   string `short:"o" help:"Output file, - for stdout" default:"-"`
	Rate     int    `short:"r" help:"Highest output sample rate in Hz, 0 for no limit" default:"0"`
	Start    string `short:"s" help:"Start position as mm:ss[.fff]" placeholder:"mm:ss"`
	End      string `short:"e" help:"End position as mm:ss[.fff]" placeholder:"mm:ss"`
	DoP      bool   `short:"u" name:"dop" help:"Output DSD over PCM instead of PCM"`
	Format   string `help:"Output format: flac, wav, aiff or raw" default:"flac" enum:"flac,wav,aiff,raw"`
	Halfrate bool   `help:"Halve the DSD rate before conversion"`
	Mono     bool   `help:"Downmix PCM output to one channel"`
	Word32   bool   `name:"word32" help:"Write raw output as 32-bit words"`
	Verbose  bool   `short:"v" help:"Print progress details"`
	Progress bool   `short:"p" help:"Show a progress bar on stderr"`
	Version  bool   `help:"Show version information"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("dsdplay"),
		kong.Description("Convert DSD audio to PCM or DSD over PCM."),
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	if CLI.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx); err != nil {
		cli.PrintError(err.Error())
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	opts, err := options()
	if err != nil {
		return err
	}

	format := CLI.Format
	if CLI.Word32 {
		if format != "raw" {
			return errors.New("--word32 needs --format raw")
		}
		format = "raw32"
	}
	enc, ok := dsdplay.Encoders().Get(format)
	if !ok {
		return fmt.Errorf("unknown output format %q", format)
	}

	stream, err := dsdplay.OpenFile(CLI.Input)
	if err != nil {
		if CLI.Verbose {
			return fmt.Errorf("could not open file: %w", err)
		}
		return errors.New("could not open file")
	}
	defer stream.Close()

	plan, err := dsdplay.NewPlan(stream.Info(), opts)
	if err != nil {
		return err
	}
	if plan.DoPDisabled {
		cli.PrintWarning(fmt.Sprintf("DoP disabled: %s exceeds the %d Hz limit",
			cli.FormatRate(plan.DSDRate/config.DoPDecimation), CLI.Rate))
	}
	if CLI.Verbose {
		printStream(stream, plan)
	}

	w, closeOutput, err := output(CLI.Output)
	if err != nil {
		return err
	}

	if opts.StartMS != 0 {
		if err := stream.SetStart(opts.StartMS); err != nil {
			closeOutput()
			return fmt.Errorf("setting start: %w", err)
		}
	}
	if opts.HasStop {
		if err := stream.SetStop(opts.StopMS); err != nil {
			closeOutput()
			return fmt.Errorf("setting end: %w", err)
		}
	}

	stats, err := convert(ctx, stream, plan, w, enc, filepathBase(CLI.Input))
	if cerr := closeOutput(); err == nil && cerr != nil {
		err = fmt.Errorf("closing output: %w", cerr)
	}
	if err != nil {
		if errors.Is(err, dsd.ErrEOFExpected) {
			return errors.New("file read error - EOF was expected")
		}
		return err
	}

	if CLI.Verbose {
		cli.PrintSuccess(fmt.Sprintf("%d blocks, %d frames written", stats.Blocks, stats.Frames))
	}
	return nil
}

func convert(ctx context.Context, stream *dsd.Stream, plan dsdplay.Plan, w io.Writer, enc audio.Encoder, title string) (dsdplay.Stats, error) {
	sink, err := enc.NewSink(w, plan.Format())
	if err != nil {
		if errors.Is(err, flac.ErrUnsupportedRate) {
			return dsdplay.Stats{}, fmt.Errorf("%w (try -r to lower the rate)", err)
		}
		return dsdplay.Stats{}, err
	}

	c, err := dsdplay.NewConverter(stream, plan, sink)
	if err != nil {
		sink.Close()
		return dsdplay.Stats{}, err
	}

	var stats dsdplay.Stats
	switch {
	case CLI.Progress:
		stats, err = runWithProgress(ctx, c, stream, title)
	default:
		if CLI.Verbose {
			c.Logger = log.New(os.Stderr, "dsdplay: ", 0)
		}
		stats, err = c.Run(ctx)
	}

	if cerr := sink.Close(); err == nil && cerr != nil {
		err = cerr
	}
	return stats, err
}

// runWithProgress runs c while a progress bar is drawn on stderr. The
// program never reads stdin, which may carry the DSD input.
func runWithProgress(ctx context.Context, c *dsdplay.Converter, stream *dsd.Stream, title string) (dsdplay.Stats, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	total := stream.Stop() - stream.Offset()
	p := tea.NewProgram(ui.NewModel(title),
		tea.WithContext(ctx),
		tea.WithInput(nil),
		tea.WithOutput(os.Stderr),
	)

	c.Progress = func(st dsdplay.Stats) {
		p.Send(ui.Progress{Done: st.BytesPerChannel, Total: total, Frames: st.Frames})
	}

	var (
		stats dsdplay.Stats
		err   error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		stats, err = c.Run(ctx)
		p.Send(ui.Complete{Err: err})
	}()

	if _, perr := p.Run(); perr != nil && !errors.Is(perr, tea.ErrProgramKilled) {
		cancel()
		<-done
		return stats, fmt.Errorf("progress display: %w", perr)
	}
	// The program may have quit on a key press or a signal.
	cancel()
	<-done

	return stats, err
}

func options() (dsdplay.Options, error) {
	opts := dsdplay.Options{
		RateLimit: CLI.Rate,
		DoP:       CLI.DoP,
		Halfrate:  CLI.Halfrate,
		Mono:      CLI.Mono,
	}

	var err error
	if CLI.Start != "" {
		if opts.StartMS, err = config.ParseTimestamp(CLI.Start); err != nil {
			return opts, fmt.Errorf("start: %w", err)
		}
	}
	if CLI.End != "" {
		if opts.StopMS, err = config.ParseTimestamp(CLI.End); err != nil {
			return opts, fmt.Errorf("end: %w", err)
		}
		opts.HasStop = true
	}
	return opts, nil
}

// output opens the destination. Standard output is never closed.
func output(name string) (io.Writer, func() error, error) {
	if name == "" || name == "-" {
		return os.Stdout, func() error { return nil }, nil
	}

	f, err := os.Create(name)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func filepathBase(name string) string {
	if name == "" || name == "-" {
		return "stdin"
	}
	return filepath.Base(name)
}

func printStream(s *dsd.Stream, p dsdplay.Plan) {
	info := s.Info()
	cli.PrintInfo("Container", strings.ToUpper(info.Format))
	cli.PrintInfo("Channels", fmt.Sprint(info.Channels))
	cli.PrintInfo("Rate", cli.FormatRate(info.SampleRate))
	cli.PrintInfo("Length", cli.FormatPosition(info.SampleCount*1000/uint64(info.SampleRate)))
	cli.PrintInfo("Output", p.String())
}
