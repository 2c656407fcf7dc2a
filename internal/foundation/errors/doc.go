// Package errors provides the classified error primitives used across deckshell.
//
// Errors carry a category (config, filesystem, template, render, ...), a severity and a
// retry hint, plus free-form context such as the offending path. The CLI and HTTP adapters
// turn them into exit codes and status codes respectively.
//
// Example usage:
//
//	err := errors.ConfigError("client template not found").
//		WithContext("path", templatePath).
//		WithCause(statErr).
//		Build()
package errors
