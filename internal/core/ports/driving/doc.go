// Package driving defines the interfaces through which the outside
// world drives the core (primary/inbound ports).
//
// The CLI, the directory watcher and the agents all consume the core
// exclusively through these interfaces.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or service package
package driving
