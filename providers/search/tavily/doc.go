// Package tavily implements search.Provider on top of the Tavily search API,
// used as a fallback behind Brave. Requires TAVILY_API_KEY.
package tavily
