// Package utils provides loose conversion helpers shared by the model core and the
// scenario tooling. Values arriving from YAML, JSON or Go literals rarely agree on
// numeric types, so comparisons and conversions go through these helpers.
package utils
