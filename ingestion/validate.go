package ingestion

import (
	"context"
	"log/slog"

	"github.com/poiesic/policymatch/core"
)

// validationProcessor drops records that fail core.ValidatePolicyRecord.
type validationProcessor struct {
	logger *slog.Logger
}

var _ processor = (*validationProcessor)(nil)

func newValidationProcessor(logger *slog.Logger) *validationProcessor {
	return &validationProcessor{logger: logger.With("processor", "validation")}
}

func (vp *validationProcessor) name() string { return "validation" }

func (vp *validationProcessor) process(_ context.Context, records []*core.PolicyRecord) ([]*core.PolicyRecord, error) {
	kept := make([]*core.PolicyRecord, 0, len(records))
	for i, record := range records {
		if err := core.ValidatePolicyRecord(record); err != nil {
			vp.logger.Warn("skipping invalid policy", "position", i, "err", err)
			continue
		}
		kept = append(kept, record)
	}
	return kept, nil
}

// dedupeProcessor keeps the first record of each fingerprint.
type dedupeProcessor struct {
	logger *slog.Logger
}

var _ processor = (*dedupeProcessor)(nil)

func newDedupeProcessor(logger *slog.Logger) *dedupeProcessor {
	return &dedupeProcessor{logger: logger.With("processor", "dedupe")}
}

func (dp *dedupeProcessor) name() string { return "dedupe" }

func (dp *dedupeProcessor) process(_ context.Context, records []*core.PolicyRecord) ([]*core.PolicyRecord, error) {
	seen := make(map[core.ID]struct{}, len(records))
	kept := make([]*core.PolicyRecord, 0, len(records))
	for _, record := range records {
		fp := record.Fingerprint()
		if _, dup := seen[fp]; dup {
			dp.logger.Debug("dropping duplicate policy", "service", record.ServiceName)
			continue
		}
		seen[fp] = struct{}{}
		kept = append(kept, record)
	}
	return kept, nil
}
