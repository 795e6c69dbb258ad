// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no CGO. Storage, LLM providers and the clock of
// record are reached only through driven ports.
package services
