// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ReportStore: the local fallback store (JSON file on disk)
//   - IDGenerator: identifiers for profiles, sections, items and share links
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ReportStore (remote): SQLite or Firestore. Without it, reports stay local.
//   - UserStore: accounts. Without it, reports are saved anonymously.
//   - LLMService: generation and photo analysis. Without it, the built-in checklist is used.
//   - PromptStore: user-editable prompts. Without it, embedded defaults are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
