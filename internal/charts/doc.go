// Package charts renders the analysis figures as PNG files with gonum/plot.
//
// Every figure is independent, so Renderer draws them concurrently on a
// bounded errgroup; the first failure cancels the figures not yet started.
package charts
