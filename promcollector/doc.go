// Package promcollector exports codec metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	codec := attrcodec.New(attrcodec.WithMetricsCollector(promcollector.MustNew(reg)))
package promcollector
