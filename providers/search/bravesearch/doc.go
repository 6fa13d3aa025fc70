// Package bravesearch implements search.Provider on top of the Brave Search
// web API. Requires BRAVE_SEARCH_API_KEY.
package bravesearch
