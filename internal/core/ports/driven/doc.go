// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the knowledge base to function:
//
//   - ContentStore: durable document blob + metadata persistence
//   - IndexStore: the denormalised search projection and its snapshot
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ParserRegistry: text extraction per content type. Without it,
//     ingested documents carry no parsed text.
//   - LLMService: generation and embeddings. Without it, agents answer
//     from retrieval alone.
//   - AlertStore: monitoring alert persistence. Without it, alerts are
//     only returned to the caller.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, parser, or agent package
package driven
