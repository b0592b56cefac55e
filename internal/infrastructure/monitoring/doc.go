/*
Package monitoring provides performance monitoring and metrics collection.

# Overview

This package implements Prometheus-based metrics collection for the grouping
service, tracking HTTP requests, grouping runs, and the engine's anomaly
counters (missing attributes, detected cycles, rules referencing unknown
attribute kinds).

# Usage

	// Create metrics collector
	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Record an engine run
	metrics.GroupingRuns.Inc()
	metrics.GroupingDuration.Observe(elapsed.Seconds())

# Metrics Endpoint

Expose metrics via the standard Prometheus endpoint:

	import "github.com/prometheus/client_golang/prometheus/promhttp"
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
*/
package monitoring
