// Package translation provides English to Modern Standard Arabic
// translation of single text values using the Gemini API (or OpenAI as
// an alternative provider). It includes a bounded retry wrapper with a
// circuit breaker and an optional sqlite-backed translation cache.
package translation
