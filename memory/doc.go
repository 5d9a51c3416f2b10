// Package memory provides minimal session history persistence.
//
// Persistence model:
//   - Only completed exchanges are stored (user query + assistant answer).
//   - The history summary handed to the controller is a pre-formatted opaque
//     string; tool blocks and sources are transient and never persisted.
package memory
