// Package metrics provides build metrics for mksite.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	site.New(cfg, site.WithRecorder(metrics.NoopRecorder{}))
//
// PrometheusRecorder keeps real counters and histograms in a registry. Since a
// build is a short-lived process, the registry is exported by writing it to a
// Prometheus textfile (for the node_exporter textfile collector) rather than
// by serving it over HTTP:
//
//	rec := metrics.NewPrometheusRecorder(nil)
//	// ... build ...
//	err := rec.WriteTextfile("/var/lib/node_exporter/mksite.prom")
package metrics
