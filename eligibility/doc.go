// Package eligibility scores how well a user profile fits a policy record.
//
// An Evaluator runs a fixed list of independent, weighted checks over a
// (profile, record) pair. Each check passes or fails with a human-readable
// reason; confidence is the sum of the weights of passed checks, and a record
// is eligible when confidence reaches the threshold (0.7 by default).
//
// The default checks are:
//
//   - age (0.3): explicit age ranges in the record text, then the generic
//     youth marker (청년/youth), which covers ages 18 to 39
//   - income (0.4): records aimed at low-income households require the
//     profile's income bucket to be at or below a ceiling (minimal income)
//   - special_condition (0.3): independence-preparing youth and support-need
//     overlap; never disqualifying on its own
//
// Missing information never disqualifies: a check with nothing to compare
// passes, and an absent profile yields confidence 0.5.
package eligibility
