// Package reembed precomputes the embedding cache for the stored policy
// corpus.
//
// Every stored policy is converted to its search text and encoded with the
// configured model; vectors already cached for that model are skipped unless
// a forced run is requested. A later search rebuild with the same model then
// serves the whole corpus from the cache instead of calling the embedding
// server.
package reembed
