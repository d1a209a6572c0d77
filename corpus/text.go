package corpus

import (
	"strings"

	"github.com/poiesic/policymatch/core"
	"golang.org/x/text/unicode/norm"
)

// Normalize applies Unicode NFC composition and trims surrounding whitespace.
// Spreadsheet exports frequently carry decomposed Hangul, which would
// otherwise defeat substring matching.
func Normalize(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// SearchText builds the labeled text a record is embedded from.
// The service name appears twice, once labeled and once raw, so that it
// weighs more than the other fields. Empty fields are skipped.
func SearchText(record *core.PolicyRecord) string {
	if record == nil {
		return ""
	}
	parts := make([]string, 0, 7)
	if name := Normalize(record.ServiceName); name != "" {
		parts = append(parts, "service: "+name, name)
	}
	parts = appendLabeled(parts, "target", record.TargetDescription)
	parts = appendLabeled(parts, "content", record.SupportContent)
	parts = appendLabeled(parts, "agency", record.AgencyName)
	parts = appendLabeled(parts, "application", record.ApplicationMethod)
	if label := record.Category.Label(); label != "" {
		parts = append(parts, "category: "+label)
	}
	return strings.Join(parts, " ")
}

// MatchText is the lowercase, unlabeled text used for keyword matching.
// It covers the service, agency, target and support fields.
func MatchText(record *core.PolicyRecord) string {
	if record == nil {
		return ""
	}
	return joinLower(record.ServiceName, record.AgencyName, record.TargetDescription, record.SupportContent)
}

// BonusText is the lowercase text the keyword bonus is counted against:
// service, support and target fields. The agency is not part of it.
func BonusText(record *core.PolicyRecord) string {
	if record == nil {
		return ""
	}
	return joinLower(record.ServiceName, record.SupportContent, record.TargetDescription)
}

func joinLower(fields ...string) string {
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		if v := Normalize(field); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func appendLabeled(parts []string, label, value string) []string {
	value = Normalize(value)
	if value == "" {
		return parts
	}
	return append(parts, label+": "+value)
}
