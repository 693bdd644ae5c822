// Package semantic provides the capability boundary for the optional
// AI collaborators of the matching engine: text embeddings for semantic
// similarity scoring and natural-language match rationales. It abstracts
// the details of LLM API integration (Gemini) so the engine can degrade
// gracefully when no provider is configured, without coupling to a
// specific external service.
package semantic
