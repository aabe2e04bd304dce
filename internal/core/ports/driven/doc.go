// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CatalogStore: Catalog tables (SQLite)
//   - ConfigStore: Application configuration (TOML)
//   - ModelConfigStore: Chat model configuration (JSON)
//   - PromptStore: Answer prompt templates
//
// # Optional Interfaces
//
// These can be nil; operations that need them fail with a domain error:
//
//   - EmbeddingService and VectorIndex: Retrieval of catalog documents
//   - LLMService: Answer generation
//   - ReadingStore: Sensor reading persistence (MongoDB)
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
