// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (ids, targets, results) and contracts (interfaces)
// only; chain access, key storage and the command line live elsewhere.
package domain
