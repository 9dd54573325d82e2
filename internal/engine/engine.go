package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/orbitpath/internal/config"
	"github.com/ivlev/orbitpath/internal/director"
	"github.com/ivlev/orbitpath/internal/renderer"
	"github.com/ivlev/orbitpath/internal/replay"
	"github.com/ivlev/orbitpath/internal/system"
)

// PreviewSize is the edge length of preview images in pixels.
const PreviewSize = 512

// Clipboard receives the finished document text.
type Clipboard interface {
	Copy(text string) error
}

// Result is the outcome for one configured path.
type Result struct {
	Path     *director.Path
	Document replay.Document
	JSON     []byte
	Files    []string // files written for this path, in write order
}

// Project turns a Config into documents and writes the configured outputs.
type Project struct {
	Config    *config.Config
	Clipboard Clipboard
	Logger    *slog.Logger
	Stats     io.Writer // receives the stats report when Config.ShowStats is set

	canvases *system.CanvasPool
}

func NewProject(cfg *config.Config, clip Clipboard) *Project {
	return &Project{
		Config:    cfg,
		Clipboard: clip,
		Logger:    slog.Default(),
		Stats:     os.Stdout,
		canvases:  system.NewCanvasPool(),
	}
}

// Run builds every configured path. Paths are independent, so they are
// built in parallel up to Config.Workers; results keep configuration order.
// The first failure cancels the remaining work and no results are returned.
func (p *Project) Run(ctx context.Context) ([]Result, error) {
	startTime := time.Now()

	if err := p.Config.Validate(); err != nil {
		return nil, err
	}

	paths := p.Config.Paths
	results := make([]Result, len(paths))

	workers := p.Config.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, pc := range paths {
		i, pc := i, pc
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := p.build(pc)
			if err != nil {
				return err
			}
			results[i] = res
			p.Logger.Debug("path ready", "name", pc.Name, "rows", len(res.Path.Rows), "done", i+1, "total", len(paths))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if p.Config.MergeInto != "" {
		if err := p.merge(results); err != nil {
			return nil, err
		}
	}

	if p.Config.Clipboard && p.Clipboard != nil {
		last := results[len(results)-1]
		if err := p.Clipboard.Copy(string(last.JSON)); err != nil {
			p.Logger.Warn("clipboard copy failed", "name", last.Path.Name, "err", err)
		} else {
			p.Logger.Info("document copied to clipboard", "name", last.Path.Name)
		}
	}

	if p.Config.ShowStats {
		p.report(results, time.Since(startTime))
	}

	return results, nil
}

func (p *Project) build(pc config.Path) (Result, error) {
	rounding, err := pc.ResolvedRounding(p.Config.Rounding)
	if err != nil {
		return Result{}, err
	}

	path, err := director.BuildPath(pc, rounding)
	if err != nil {
		return Result{}, err
	}

	doc, err := replay.NewDocument(path)
	if err != nil {
		return Result{}, err
	}
	data, err := doc.Marshal()
	if err != nil {
		return Result{}, err
	}

	res := Result{Path: path, Document: doc, JSON: data}

	if dir := p.Config.OutputDir; dir != "" {
		file := director.GenerateDocumentPath(dir, path.Name, ".json")
		if err := writeFile(file, data); err != nil {
			return Result{}, fmt.Errorf("writing document for %q: %w", path.Name, err)
		}
		res.Files = append(res.Files, file)
	}

	if dir := p.Config.TableDump; dir != "" {
		file := director.GenerateDocumentPath(dir, path.Name, ".yaml")
		if err := os.MkdirAll(dir, 0755); err != nil {
			return Result{}, err
		}
		if err := director.WritePath(path, file); err != nil {
			return Result{}, fmt.Errorf("writing path table for %q: %w", path.Name, err)
		}
		res.Files = append(res.Files, file)
	}

	if dir := p.Config.Preview; dir != "" {
		file, err := p.preview(path, pc, dir)
		if err != nil {
			return Result{}, fmt.Errorf("rendering preview for %q: %w", path.Name, err)
		}
		res.Files = append(res.Files, file)
	}

	return res, nil
}

func (p *Project) preview(path *director.Path, pc config.Path, dir string) (string, error) {
	canvas := p.canvases.Get(PreviewSize, PreviewSize)
	defer p.canvases.Put(canvas)

	if _, err := renderer.RenderPreview(canvas, path, pc.Center, renderer.DefaultPreviewOptions()); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	file := director.GenerateDocumentPath(dir, path.Name, ".png")
	if err := renderer.WritePNG(canvas, file); err != nil {
		return "", err
	}
	return file, nil
}

// merge folds every document into the configured paths file. A missing file
// is created.
func (p *Project) merge(results []Result) error {
	target := p.Config.MergeInto

	existing, err := os.ReadFile(target)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading %s: %w", target, err)
	}

	combined := replay.Document{}
	for _, r := range results {
		for name, timelines := range r.Document {
			combined[name] = timelines
		}
	}

	merged, err := replay.Merge(existing, combined)
	if err != nil {
		return fmt.Errorf("merging into %s: %w", target, err)
	}
	if err := writeFile(target, merged); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}

	p.Logger.Info("paths merged", "file", target, "added", len(combined))
	return nil
}

func (p *Project) report(results []Result, elapsed time.Duration) {
	rows := 0
	for _, r := range results {
		rows += len(r.Path.Rows)
	}

	rss := "n/a"
	if v, err := system.ProcessRSS(); err == nil {
		rss = fmt.Sprintf("%.1f MiB", float64(v)/(1<<20))
	}

	fmt.Fprintf(p.Stats,
		"--- [PATH REPORT] ---\n"+
			"Paths: %d\n"+
			"Keyframes: %d\n"+
			"Total Time: %s\n"+
			"Workers: %d\n"+
			"Memory (RSS): %s\n"+
			"---------------------\n",
		len(results), rows, elapsed.Round(time.Microsecond), p.Config.Workers, rss,
	)
}

func writeFile(file string, data []byte) error {
	if dir := filepath.Dir(file); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(file, data, 0644)
}
