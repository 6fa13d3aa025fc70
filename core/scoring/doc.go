// Package scoring ranks candidate pages as the official website of a company.
//
// [Scorer.ScoreCandidates] sends one prompt to an LLM, reads whatever text it
// can find in the raw response ([ExtractText]), parses it ([ParseResponse])
// and reconciles the model's scores back onto the input pages by domain URL.
// Any failure on that path (transport error, empty output, invalid JSON,
// missing "urls") degrades to [HeuristicScore], so callers always get exactly
// one score per page in page order and never an error.
package scoring
