// Package engine implements the gateway core: it extracts the query from
// a chat-completion request, runs the external pipeline exactly once, and
// wraps the result in the OpenAI-compatible envelope. It implements
// transport.Completer and also owns the static model card served by the
// listing endpoint.
package engine
