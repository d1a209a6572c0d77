// Package corpus turns raw support-program sources into policy records and
// derives the canonical text used for embedding and keyword matching.
//
// A corpus is assembled from one or more Sources. The Loader reads all of them
// concurrently, keeps their records in source order and treats a failing
// source as a partial failure: it is logged and skipped so the remaining
// sources still produce a usable corpus.
//
// SearchText and MatchText are pure functions over a record and are safe for
// concurrent use.
package corpus
