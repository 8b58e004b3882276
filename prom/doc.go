// Package prom exports engine metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	eng := kmeansviz.New(kmeansviz.WithMetricsCollector(prom.NewCollector(reg)))
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package prom
