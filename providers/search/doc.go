// Package search defines the contract for web search backends that produce
// candidate pages for a company, and a Chain that tries several backends in
// order until one of them returns results.
package search
