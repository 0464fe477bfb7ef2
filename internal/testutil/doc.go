// Package testutil provides shared builders for scripted engine event
// sequences used across the package test suites.
package testutil
