// Package engine turns a deck spec into a .pptx file: charts are rendered in
// parallel, then slides are built in order and the deck is written out
// together with the optional previews, handout and workbook.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/VantageDataChat/GoDeck/internal/charts"
	"github.com/VantageDataChat/GoDeck/internal/deckspec"
	"github.com/VantageDataChat/GoDeck/internal/handout"
	"github.com/VantageDataChat/GoDeck/internal/palette"
	"github.com/VantageDataChat/GoDeck/internal/pptx"
	"github.com/VantageDataChat/GoDeck/internal/slides"
	"github.com/VantageDataChat/GoDeck/internal/workbook"
)

// Options tunes a generation run.
type Options struct {
	// Workers bounds concurrent chart renders. Defaults to runtime.NumCPU.
	Workers int
	// Logger receives progress; nil discards it.
	Logger *zap.Logger
	// PreviewWidth is the slide preview width in pixels.
	PreviewWidth int
	// FontDirs are searched for preview fonts.
	FontDirs []string

	// Fallbacks for values the deck leaves empty.
	OutputDir  string
	ChartDir   string
	Palette    string
	PreviewDir string
}

// fill applies the option fallbacks to spec.
func (o Options) fill(spec *deckspec.Spec) {
	if spec.OutputPath == "" && o.OutputDir != "" {
		spec.OutputPath = filepath.Join(o.OutputDir, filepath.Base(deckspec.DefaultOutputPath))
	}
	if spec.ChartDir == "" {
		spec.ChartDir = o.ChartDir
	}
	if spec.Meta.Palette == "" {
		spec.Meta.Palette = o.Palette
	}
	if spec.PreviewDir == "" {
		spec.PreviewDir = o.PreviewDir
	}
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

// chartJob is one chart to render, tied to the slide that shows it.
type chartJob struct {
	slide int
	spec  *charts.Spec
	path  string
	num   int // set while building slides
}

// Generate renders every chart, builds the slides and saves the deck.
func Generate(ctx context.Context, spec *deckspec.Spec, opts Options) (*deckspec.Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	logger := opts.logger().With(zap.String("run_id", runID))

	opts.fill(spec)
	spec.ApplyDefaults()
	logger.Info("generating deck",
		zap.String("output", spec.OutputPath),
		zap.Int("slides", len(spec.Slides)),
		zap.String("palette", spec.Meta.Palette))

	if err := os.MkdirAll(filepath.Dir(spec.OutputPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.MkdirAll(spec.ChartDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create chart directory: %w", err)
	}

	pal := resolvePalette(spec, logger)

	jobs, err := collectCharts(spec.Slides)
	if err != nil {
		return nil, err
	}
	if err := renderCharts(ctx, jobs, pal, spec.ChartDir, opts.workers(), logger); err != nil {
		return nil, err
	}

	deck := pptx.New()
	deck.GetLayout().SetCustomLayout(pptx.Inch(spec.Meta.SlideWidth), pptx.Inch(spec.Meta.SlideHeight))
	props := deck.GetDocumentProperties()
	props.Title = spec.Meta.Title
	props.Subject = spec.Meta.Subject
	props.Company = spec.Meta.Company
	if spec.Meta.Author != "" {
		props.Creator = spec.Meta.Author
		props.LastModifiedBy = spec.Meta.Author
	}

	builder := slides.NewBuilder(deck, pal, spec.Meta, logger)
	warnings, err := buildSlides(ctx, builder, spec.Slides, jobs, logger)
	if err != nil {
		return nil, err
	}

	if err := pptx.NewWriter(deck).Save(spec.OutputPath); err != nil {
		return nil, fmt.Errorf("failed to save presentation: %w", err)
	}
	logger.Info("deck saved", zap.String("path", spec.OutputPath), zap.Int("slides", deck.GetSlideCount()))

	if err := writeExtras(ctx, spec, deck, pal, jobs, opts, logger); err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	seconds := deckspec.Seconds(elapsed)
	logger.Info("generation complete", zap.Duration("elapsed", elapsed), zap.Int("charts", len(jobs)))

	return &deckspec.Result{
		Success:  true,
		Path:     spec.OutputPath,
		Slides:   deck.GetSlideCount(),
		Charts:   len(jobs),
		Duration: &seconds,
		RunID:    runID,
		Warnings: append(warnings, builder.Warnings()...),
	}, nil
}

func resolvePalette(spec *deckspec.Spec, logger *zap.Logger) *palette.Palette {
	if !palette.Exists(spec.Meta.Palette) {
		logger.Warn("unknown palette, using default",
			zap.String("palette", spec.Meta.Palette),
			zap.String("default", palette.DefaultName))
	}
	pal := palette.Get(spec.Meta.Palette)
	if len(spec.Design) > 0 {
		if ignored := pal.ApplyOverrides(spec.Design); len(ignored) > 0 {
			logger.Debug("ignored design overrides", zap.Strings("keys", ignored))
		}
	}
	return pal
}

// collectCharts normalizes every chart of every known slide and gives each a
// unique file name. Slides of unknown type are skipped here and reported
// while building.
func collectCharts(specs []deckspec.SlideSpec) ([]*chartJob, error) {
	var jobs []*chartJob
	used := make(map[string]bool)
	for i := range specs {
		if !slides.Supported(specs[i].Type) {
			continue
		}
		for _, c := range specs[i].ChartSpecs() {
			if err := charts.Normalize(c); err != nil {
				return nil, fmt.Errorf("slide %d: %w", i+1, err)
			}
			c.Filename = uniqueName(c.DefaultFilename(), used)
			jobs = append(jobs, &chartJob{slide: i, spec: c})
		}
	}
	return jobs, nil
}

// uniqueName returns name, or name with a _N suffix before the extension
// when it was already taken.
func uniqueName(name string, used map[string]bool) string {
	if !used[name] {
		used[name] = true
		return name
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := 2; ; n++ {
		candidate := stem + "_" + strconv.Itoa(n) + ext
		if !used[candidate] {
			used[candidate] = true
			return candidate
		}
	}
}

func renderCharts(ctx context.Context, jobs []*chartJob, pal *palette.Palette, dir string, workers int, logger *zap.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			started := time.Now()
			path, err := charts.Render(gctx, job.spec, pal, dir)
			if err != nil {
				return fmt.Errorf("slide %d: %w", job.slide+1, err)
			}
			job.path = path
			logger.Debug("chart rendered",
				zap.String("chart_type", job.spec.Type),
				zap.String("path", path),
				zap.Duration("elapsed", time.Since(started)))
			return nil
		})
	}
	return g.Wait()
}

// buildSlides walks the slides in order, numbering content pages and
// attaching the rendered charts.
func buildSlides(ctx context.Context, b *slides.Builder, specs []deckspec.SlideSpec, jobs []*chartJob, logger *zap.Logger) ([]string, error) {
	bySlide := make(map[int][]*chartJob)
	for _, j := range jobs {
		bySlide[j.slide] = append(bySlide[j.slide], j)
	}

	var (
		warnings []string
		page     int
		rendered int
	)
	for i, ss := range specs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !slides.Supported(ss.Type) {
			msg := fmt.Sprintf("Unknown slide type '%s', skipping", ss.Type)
			logger.Warn(msg, zap.String("slide_type", ss.Type), zap.Int("index", i))
			warnings = append(warnings, msg)
			continue
		}
		if slides.Numbered(ss.Type) {
			page++
		}

		num := rendered + 1
		if ss.ChartNum != nil {
			num = *ss.ChartNum
		}
		var imgs []slides.ChartImage
		for k, j := range bySlide[i] {
			j.num = num + k
			imgs = append(imgs, slides.ChartImage{Path: j.path, Num: j.num})
		}
		rendered += len(imgs)

		s, err := b.Build(slides.Request{
			Type:    ss.Type,
			Content: ss.Content,
			Page:    page,
			BgImage: ss.BgImage,
			Charts:  imgs,
		})
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
		if ss.Notes != "" {
			s.SetNotes(ss.Notes)
		}
		logger.Debug("slide built", zap.String("slide_type", ss.Type), zap.Int("page", page))
	}
	return warnings, nil
}

func writeExtras(ctx context.Context, spec *deckspec.Spec, deck *pptx.Presentation, pal *palette.Palette, jobs []*chartJob, opts Options, logger *zap.Logger) error {
	if spec.PreviewDir != "" {
		paths, err := deck.SaveSlidesAsImages(ctx, spec.PreviewDir, &pptx.RenderOptions{
			Width:    opts.PreviewWidth,
			FontDirs: opts.FontDirs,
		})
		if err != nil {
			return fmt.Errorf("failed to write previews: %w", err)
		}
		logger.Info("previews written", zap.String("dir", spec.PreviewDir), zap.Int("count", len(paths)))
	}

	if spec.HandoutPath != "" {
		in := handout.Input{
			Title:   spec.Meta.Title,
			Company: spec.Meta.Company,
			Date:    spec.Meta.Date,
			Palette: pal,
		}
		for _, j := range jobs {
			in.Charts = append(in.Charts, handout.Chart{
				Num:    j.num,
				Title:  chartTitle(j.spec),
				Source: j.spec.Source,
				Path:   j.path,
			})
		}
		if err := handout.Write(spec.HandoutPath, in); err != nil {
			return fmt.Errorf("failed to write handout: %w", err)
		}
		logger.Info("handout written", zap.String("path", spec.HandoutPath))
	}

	if spec.WorkbookPath != "" {
		data := make([]workbook.ChartData, 0, len(jobs))
		for _, j := range jobs {
			data = append(data, workbook.ChartData{Num: j.num, Spec: j.spec})
		}
		if err := workbook.Write(spec.WorkbookPath, data); err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
		logger.Info("workbook written", zap.String("path", spec.WorkbookPath))
	}
	return nil
}

func chartTitle(s *charts.Spec) string {
	if s.Config.Title != "" {
		return s.Config.Title
	}
	return s.Type
}

// Run reads a spec from r, generates the deck and writes exactly one JSON
// result line to w. It returns the process exit code.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts Options) int {
	logger := opts.logger()
	spec, err := deckspec.Decode(r)
	if err != nil {
		var ije *deckspec.InvalidJSONError
		if !errors.Is(err, deckspec.ErrEmptyInput) && !errors.As(err, &ije) {
			logger.Error("failed to read spec", zap.Error(err))
		}
		return emit(w, deckspec.Failure(err), 1)
	}
	opts.Logger = logger
	res, err := Generate(ctx, spec, opts)
	if err != nil {
		logger.Error("generation failed", zap.Error(err))
		return emit(w, deckspec.Failure(err), 1)
	}
	return emit(w, res, 0)
}

func emit(w io.Writer, v any, code int) int {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return 1
	}
	return code
}
