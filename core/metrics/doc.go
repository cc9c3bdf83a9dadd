// Package metrics exposes Prometheus counters describing model activity.
//
// A Recorder is created against a prometheus.Registerer so tests and the CLI can
// each use their own registry. The model core only sees the small
// model.MetricsRecorder interface; a nil Recorder records nothing.
//
// # Series
//
//   - <ns>_transactions_total{type}               outermost Set transactions
//   - <ns>_attribute_changes_total{type}          attributes that changed value
//   - <ns>_notifications_total{event}             events emitted (change, add, ...)
//   - <ns>_reconcile_actions_total{action}        collection reconcile actions
//   - <ns>_validation_failures_total{type}        rejected Set calls
package metrics
