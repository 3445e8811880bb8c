// Package mocks provides centralized mock implementations for testing.
//
// This package contains mock implementations of interfaces used throughout the
// application, facilitating consistent testing across the codebase. Instead of
// defining inline mocks in individual test files, these standardized mock
// implementations can be reused.
//
// Each mock exposes function fields (e.g. CreateFn) so a test can override a
// single method, plus a reasonable in-memory default implementation for tests
// that just need a working collaborator.
package mocks
