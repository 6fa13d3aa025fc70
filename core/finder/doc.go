// Package finder resolves a company's official website: it builds a search
// query from the normalized company name and license number, queries the
// search providers, fetches every distinct candidate, scores them and keeps
// the best one if it clears the confidence threshold.
package finder
