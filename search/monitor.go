package search

import (
	"github.com/poiesic/policymatch/core"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterQueryEnhancement(enhanced string)
	AfterCandidateSelection(candidates []Candidate)
	Evaluated(record *core.PolicyRecord, result *core.EligibilityResult)
	Fallback(reason error)
	Finish(results []*core.MatchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                            {}
func (n *noopMonitor) AfterQueryEnhancement(_ string)                            {}
func (n *noopMonitor) AfterCandidateSelection(_ []Candidate)                     {}
func (n *noopMonitor) Evaluated(_ *core.PolicyRecord, _ *core.EligibilityResult) {}
func (n *noopMonitor) Fallback(_ error)                                          {}
func (n *noopMonitor) Finish(_ []*core.MatchResult)                              {}
