// Package nlquery routes free-text questions to query operations and
// formats the results as prose. Routing is keyword-based and total:
// every input maps to some operation, with the market overview as the
// documented fallback. No LLM is involved here; the package serves LLM
// callers that want a single natural-language entry point.
package nlquery
