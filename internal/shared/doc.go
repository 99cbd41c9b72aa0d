// Package shared holds helpers used across packages that belong to no single
// domain layer.
//
// The testutil subpackage provides a buffered slog handler for asserting on
// log output and small product table fixtures for analyzer tests.
package shared
