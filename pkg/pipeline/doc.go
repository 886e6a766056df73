// Package pipeline defines the boundary to the external RAG pipeline
// (the "crew") that performs retrieval and generation. The gateway treats
// the pipeline as an opaque collaborator: it hands over a query string and
// receives text back. Retrieval strategy, agent orchestration, and tool
// use all live behind this interface and are out of scope for the gateway.
//
// The crew subpackage talks to a real crew service over HTTP; the static
// subpackage is a deterministic stand-in for development and tests.
package pipeline
