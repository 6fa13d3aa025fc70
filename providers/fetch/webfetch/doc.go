// Package webfetch downloads candidate pages and converts their HTML to
// Markdown so the scorer sees readable text. FetchAll fetches a batch of
// search results with bounded concurrency; a page that cannot be fetched is
// kept with empty content so it is still scored.
package webfetch
