// Package models contains the data structures for the scenario feature: the
// YAML scenario document and the replay result.
package models
