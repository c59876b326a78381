// Package cli wires the ptree command line to the snapshot, tree and render
// packages.
package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/w31r4/ptree/internal/logger"
	"github.com/w31r4/ptree/internal/process"
	"github.com/w31r4/ptree/internal/render"
	"github.com/w31r4/ptree/internal/tree"
	"github.com/w31r4/ptree/internal/tui"
)

// Version is set at build time.
var Version = "dev"

// Deps are the collaborators a run talks to. Tests replace them with fakes.
type Deps struct {
	Source   process.Source
	Terminal Terminal
	Stdout   io.Writer
	Stderr   io.Writer
	Browse   func(ctx context.Context, snapshot *process.Snapshot, opts tui.Options) error
}

// DefaultDeps reads the host process table and prints to the standard streams.
func DefaultDeps() Deps {
	return Deps{
		Source:   process.NewLiveSource(),
		Terminal: NewTerminal(os.Stdout),
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Browse:   tui.Run,
	}
}

// Execute runs ptree with the process arguments and returns the exit code.
// The caller (main) should call os.Exit with it.
func Execute() int {
	return Run(context.Background(), os.Args[1:], DefaultDeps())
}

// Run executes one invocation with args and reports failures on deps.Stderr.
func Run(ctx context.Context, args []string, deps Deps) int {
	cmd := NewRootCommand(deps)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	code := ExitCode(err)
	fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
	if code == ExitUsage {
		fmt.Fprint(deps.Stderr, cmd.UsageString())
	}
	return code
}

// NewRootCommand builds the ptree command.
func NewRootCommand(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ptree [flags] [filter]",
		Short: "Show processes as a tree",
		Long: `ptree prints the process table as a tree of parent and child processes.

By default only your own processes are shown, together with the ancestors
that connect them to their roots. With a filter argument, only processes
whose command line contains the filter are shown, along with everything
they started and the ancestors leading to them.`,
		Version:       Version,
		Args:          maxOneFilter,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, deps)
		},
	}

	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: ExitUsage, Message: err.Error()}
	})
	registerFlags(cmd.Flags())

	return cmd
}

func maxOneFilter(_ *cobra.Command, args []string) error {
	if len(args) > 1 {
		return usageErrorf("accepts at most one filter argument, received %d", len(args))
	}
	return nil
}

func run(ctx context.Context, cfg *Config, deps Deps) error {
	slog.SetDefault(logger.New(deps.Stderr, cfg.LogLevel))

	source := deps.Source
	if cfg.From != "" {
		source = process.NewFileSource(cfg.From)
	}

	snapshot, err := source.Snapshot(ctx)
	if err != nil {
		return wrapError(ExitUnavailable, "cannot read process snapshot", err)
	}

	if cfg.Save != "" {
		if err := process.Save(cfg.Save, snapshot); err != nil {
			return wrapError(ExitGeneral, "cannot save process snapshot", err)
		}
		slog.DebugContext(ctx, "Saved process snapshot", "path", cfg.Save, "processes", len(snapshot.Records))
	}

	opts := tree.FilterOptions{
		User:     snapshot.CurrentUser,
		AllUsers: cfg.All,
		Name:     cfg.Filter,
	}
	styles := newStyles(cfg.Color, deps)

	if cfg.Interactive {
		return deps.Browse(ctx, snapshot, tui.Options{Filter: opts, Styles: styles})
	}

	forest := tree.Build(tree.Normalize(snapshot.Records)).Filter(opts)
	slog.DebugContext(ctx, "Built process forest", "nodes", forest.Len(), "roots", len(forest.Roots()))

	r := render.New(render.Options{
		Width:     outputWidth(cfg, deps.Terminal),
		Styles:    styles,
		Highlight: cfg.Filter,
	})

	// The whole tree is rendered before anything reaches stdout.
	var buf bytes.Buffer
	if err := r.Render(&buf, forest); err != nil {
		return wrapError(ExitGeneral, "render tree", err)
	}
	if _, err := io.Copy(deps.Stdout, &buf); err != nil {
		return wrapError(ExitGeneral, "write output", err)
	}
	return nil
}

func outputWidth(cfg *Config, t Terminal) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	if w, ok := t.Width(); ok {
		return w
	}
	return render.DefaultWidth
}

func newStyles(mode string, deps Deps) *render.Styles {
	if !shouldUseColor(mode, deps.Terminal) {
		return nil
	}
	lr := lipgloss.NewRenderer(deps.Stdout)
	if mode == colorAlways || lr.ColorProfile() == termenv.Ascii {
		lr.SetColorProfile(termenv.ANSI256)
	}
	return render.NewStyles(lr)
}
