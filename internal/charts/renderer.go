package charts

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	apperrors "salescli/internal/errors"
	"salescli/internal/infrastructure"
	"salescli/pkg/contracts/domain"
)

// Rendering defaults
const (
	DefaultDPI     = 300
	DefaultWorkers = 3
)

// Options configures a Renderer
type Options struct {
	Dir     string
	DPI     int
	Workers int
}

// Renderer writes the analysis figures as PNG files
type Renderer struct {
	opts    Options
	logger  *slog.Logger
	metrics *infrastructure.PipelineMetrics
}

// NewRenderer creates a renderer. metrics may be nil.
func NewRenderer(opts Options, logger *slog.Logger, metrics *infrastructure.PipelineMetrics) *Renderer {
	if opts.DPI <= 0 {
		opts.DPI = DefaultDPI
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{opts: opts, logger: logger, metrics: metrics}
}

// RenderAll renders every figure concurrently and returns the written paths
// in figure order. The first failure cancels the figures not yet started.
func (r *Renderer) RenderAll(ctx context.Context, a *domain.Analysis) ([]string, error) {
	if err := os.MkdirAll(r.opts.Dir, 0755); err != nil {
		return nil, apperrors.NewStorageError("failed to create visualizations directory", err).
			WithContext("dir", r.opts.Dir)
	}

	figures := Figures()
	paths := make([]string, len(figures))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)

	for i, fig := range figures {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return apperrors.NewRenderingError("rendering cancelled", err).WithContext("chart", fig.Name)
			}

			path := filepath.Join(r.opts.Dir, fig.File)
			if err := r.render(gctx, fig, a, path); err != nil {
				if apperrors.IsType(err, apperrors.ErrTypeRendering) || apperrors.IsType(err, apperrors.ErrTypeStorage) {
					return err
				}
				return apperrors.NewRenderingError("failed to render chart", err).WithContext("chart", fig.Name)
			}
			paths[i] = path
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// render draws one figure and writes it to path
func (r *Renderer) render(ctx context.Context, fig Figure, a *domain.Analysis, path string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = apperrors.NewRenderingError(fmt.Sprintf("chart panicked: %v", rec), nil).WithContext("chart", fig.Name)
		}
	}()

	c := vgimg.NewWith(vgimg.UseWH(fig.Width, fig.Height), vgimg.UseDPI(r.opts.DPI))
	if err := fig.draw(a, draw.New(c)); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return apperrors.NewStorageError("failed to create chart file", err).WithContext("path", path)
	}

	_, err = vgimg.PngCanvas{Canvas: c}.WriteTo(f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return apperrors.NewStorageError("failed to write chart file", err).WithContext("path", path)
	}

	r.metrics.RecordChart(ctx, fig.Name)
	r.logger.InfoContext(ctx, "Chart rendered",
		slog.String("chart", fig.Name),
		slog.String("path", path),
		slog.Int("dpi", r.opts.DPI))
	return nil
}
