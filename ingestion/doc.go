// Package ingestion imports the policy corpus into storage.
//
// The Pipeline type manages the import workflow:
//   - Reading every configured corpus source concurrently
//   - Dropping records that fail validation
//   - Dropping duplicate records (same category, name, agency and target)
//   - Replacing or extending the stored corpus in one transaction
//   - Optionally warming the embedding cache asynchronously
//
// A failing source is logged and skipped. When every source fails, or no valid
// record remains, the stored corpus is left as it was. Errors during the
// asynchronous warm-up are logged but do not fail the import.
package ingestion
