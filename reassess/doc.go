// Package reassess re-scores stored entities and relations with the
// current quality rules.
//
// This package supports batch processing of graph subjects, progress
// tracking and retry logic with exponential backoff, so assessment rows can
// be refreshed after the scoring rules change without re-extracting any
// text.
package reassess
