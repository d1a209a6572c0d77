// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package search ranks support programs for a free-text query and an
// optional user profile.
//
// A Searcher owns an immutable snapshot of the corpus and its embedding
// Index. Each query is enriched with profile terms, encoded, compared against
// the index, and the oversampled candidates are re-ranked by a combination of
// semantic similarity, eligibility confidence and keyword overlap:
//
//	combined = 0.6*semantic + 0.3*confidence + 0.1*keywordBonus
//
// When embeddings are unavailable, or anything in the semantic path fails,
// the query is answered by KeywordSearch instead: a case-insensitive
// substring match in corpus order, capped at ten records.
//
// Rebuild builds a new snapshot off to the side and publishes it in one
// atomic step, so in-flight queries always see a matching corpus and index.
package search
