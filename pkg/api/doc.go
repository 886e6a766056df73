// Package api defines the wire types for the crewgate gateway: the
// OpenAI-compatible chat-completions request and response envelopes, the
// model descriptor served by the listing endpoint, and the structured
// error taxonomy.
//
// The types mirror the Chat Completions API shape closely enough for
// discovery-driven clients (model selectors, chat UIs) to work unchanged.
// Fields the gateway does not compute, such as token usage, are carried
// with their fixed values rather than omitted so that clients relying on
// their presence keep working.
package api
