package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/muesli/termenv"

	"github.com/ivlev/orbitpath/internal/config"
	"github.com/ivlev/orbitpath/internal/engine"
	"github.com/ivlev/orbitpath/internal/replay"
	"github.com/ivlev/orbitpath/internal/system"
)

// BuildVersion is set at link time.
var BuildVersion = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

// run parses args, builds the configured paths and prints the combined
// paths document to stdout. Status lines and logs go to stderr.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	def := config.DefaultPath()
	fs := flag.NewFlagSet("orbitpath", flag.ContinueOnError)

	configPtr := fs.String("config", "", "Config file (.yaml, .yml, .toml) or a directory to take the newest one from")
	namePtr := fs.String("name", def.Name, "Path name, used as the key in the paths file")
	xPtr := fs.Float64("x", def.Center.X, "Center X")
	yPtr := fs.Float64("y", def.Center.Y, "Center Y (camera height)")
	zPtr := fs.Float64("z", def.Center.Z, "Center Z")
	radiusPtr := fs.Float64("radius", def.Radius, "Orbit radius in blocks")
	countPtr := fs.Int("count", def.Count, "Keyframes per revolution")
	durationPtr := fs.Int("duration", def.DurationMs, "Duration of one revolution in ms")
	extraPtr := fs.Int("extra", 0, "Trailing keyframes repeated from the start of the orbit")
	closePtr := fs.Bool("close-loop", def.CloseLoop, "Repeat the first keyframe at the end of the revolution")
	roundingPtr := fs.String("rounding", "", "Coordinate rounding: integer, decimal (4 places), exact")
	outDirPtr := fs.String("out-dir", "", "Write each document to a timestamped file in this directory")
	mergePtr := fs.String("merge", "", "Add the paths to this ReplayMod paths file (created if missing)")
	tablePtr := fs.String("table", "", "Dump each path table as YAML into this directory")
	previewPtr := fs.String("preview", "", "Render a top-down PNG preview of each path into this directory")
	clipboardPtr := fs.Bool("clipboard", false, "Copy the document to the clipboard (OSC 52)")
	statsPtr := fs.Bool("stats", false, "Print a run report")
	workersPtr := fs.Int("workers", runtime.NumCPU(), "Paths built in parallel")
	quietPtr := fs.Bool("quiet", false, "Only print the document")
	verbosePtr := fs.Bool("v", false, "Debug logging")
	versionPtr := fs.Bool("version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if *versionPtr {
		fmt.Fprintln(stdout, BuildVersion)
		return nil
	}

	level := slog.LevelInfo
	switch {
	case *verbosePtr:
		level = slog.LevelDebug
	case *quietPtr:
		level = slog.LevelWarn
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var cfg config.Config
	if *configPtr != "" {
		path, err := resolveConfig(*configPtr)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
		slog.Debug("config loaded", "file", path, "paths", len(cfg.Paths))
		if ignored := ignoredPathFlags(set); len(ignored) > 0 {
			slog.Warn("path flags ignored, paths come from the config file", "flags", ignored, "file", path)
		}
	} else {
		cfg = config.Default()
		cfg.Paths = []config.Path{{
			Name:       *namePtr,
			Radius:     *radiusPtr,
			Count:      *countPtr,
			DurationMs: *durationPtr,
			ExtraCount: *extraPtr,
			CloseLoop:  *closePtr,
		}}
		cfg.Paths[0].Center.X, cfg.Paths[0].Center.Y, cfg.Paths[0].Center.Z = *xPtr, *yPtr, *zPtr
	}

	// flags given explicitly win over the config file
	if set["rounding"] {
		cfg.Rounding = *roundingPtr
	}
	if set["out-dir"] {
		cfg.OutputDir = *outDirPtr
	}
	if set["merge"] {
		cfg.MergeInto = *mergePtr
	}
	if set["table"] {
		cfg.TableDump = *tablePtr
	}
	if set["preview"] {
		cfg.Preview = *previewPtr
	}
	if set["clipboard"] {
		cfg.Clipboard = *clipboardPtr
	}
	if set["stats"] {
		cfg.ShowStats = *statsPtr
	}
	if set["workers"] || *configPtr == "" {
		cfg.Workers = *workersPtr
	}
	if cfg.Rounding == "" {
		cfg.Rounding = config.Default().Rounding
	}

	out := termenv.NewOutput(os.Stderr)
	status := func(color, format string, a ...any) {
		if *quietPtr {
			return
		}
		fmt.Fprintln(os.Stderr, out.String(fmt.Sprintf(format, a...)).Foreground(out.Color(color)))
	}

	status("12", "[*] Paths: %d | Rounding: %s | Workers: %d", len(cfg.Paths), cfg.Rounding, cfg.Workers)

	project := engine.NewProject(&cfg, system.NewTerminalClipboard())
	results, err := project.Run(ctx)
	if err != nil {
		return fmt.Errorf("building paths: %w", err)
	}

	combined := replay.Document{}
	for _, r := range results {
		status("12", "[>] %s: %d keyframes over %d ms", r.Path.Name, len(r.Path.Rows), r.Path.End())
		for _, f := range r.Files {
			status("8", "    %s", f)
		}
		for name, timelines := range r.Document {
			combined[name] = timelines
		}
	}

	data, err := combined.Marshal()
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, string(data))

	if cfg.MergeInto != "" {
		status("10", "[+++] Merged into %s", cfg.MergeInto)
	}
	status("10", "[+++] Done")
	return nil
}

var pathFlags = []string{"name", "x", "y", "z", "radius", "count", "duration", "extra", "close-loop"}

// ignoredPathFlags lists the per-path flags that were given explicitly.
func ignoredPathFlags(set map[string]bool) []string {
	var ignored []string
	for _, name := range pathFlags {
		if set[name] {
			ignored = append(ignored, name)
		}
	}
	return ignored
}

// resolveConfig accepts a file or a directory holding config files.
func resolveConfig(path string) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !fi.IsDir() {
		return path, nil
	}

	latest, err := system.FindLatestConfig(path)
	if err != nil {
		return "", err
	}
	slog.Info("using newest config", "file", latest)
	return latest, nil
}
