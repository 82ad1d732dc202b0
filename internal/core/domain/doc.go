// Package domain defines the core business entities for the FutureReady
// knowledge base.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A stored document with its mandatory metadata
//   - DocumentMetadata: The admission-control metadata every document carries
//   - IndexEntry: The denormalised per-document search projection
//   - SearchQuery / SearchResult: The query contract
//   - Entity / DocumentRelation: Extracted mentions and document edges
//   - Alert / AgentResponse: The monitoring and answering contract
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
