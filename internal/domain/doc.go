// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (persisted state) and contracts (interfaces) only.
package domain
