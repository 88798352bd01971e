/*
Package observability turns action lifecycle events into Prometheus metrics.

Metrics are kept in their own registry so several toolkits (or tests) can coexist in one
process. Mount Metrics.Handler on /metrics and pass Metrics.Hooks to fluxfee.WithLifecycleHooks.
*/
package observability
