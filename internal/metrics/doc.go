// Package metrics provides observability hooks for shell generation.
//
// Components receive a Recorder through dependency injection and default to NoopRecorder,
// so the pipeline never needs nil checks:
//
//	recorder := metrics.NewPrometheusRecorder(registry)
//	html, err := shell.SetupIndexHTML(ctx, opts.WithRecorder(recorder))
//
// The dev server registers a PrometheusRecorder and exposes it through HTTPHandler.
package metrics
