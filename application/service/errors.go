// Package service wires the domain, stores and infrastructure adapters into
// the operations the API and MCP surfaces expose.
package service

import "errors"

// ErrInvalidInput indicates a request failed validation before touching any
// store or external system.
var ErrInvalidInput = errors.New("invalid input")

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrTooLarge indicates an upload exceeded the configured size limit.
var ErrTooLarge = errors.New("payload too large")
