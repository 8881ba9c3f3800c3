// Package tools exposes the query operations as LLM function-call tools:
// a static list of OpenAI-style schemas and a dispatcher that executes a
// named tool against the service. Dispatch reuses the service's
// validation, so a bad argument fails identically whether it arrives
// through a tool call or a direct HTTP request.
package tools
