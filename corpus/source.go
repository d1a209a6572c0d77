package corpus

import (
	"context"

	"github.com/poiesic/policymatch/core"
)

// Source is one sub-source of the corpus, such as a spreadsheet sheet or a
// stored policy table.
type Source interface {
	// Name identifies the source in logs.
	Name() string
	// Load returns the source's records in their natural order.
	Load(ctx context.Context) ([]*core.PolicyRecord, error)
}

// SourceFunc adapts a function into a Source.
type SourceFunc struct {
	SourceName string
	Fn         func(ctx context.Context) ([]*core.PolicyRecord, error)
}

var _ Source = SourceFunc{}

func (s SourceFunc) Name() string { return s.SourceName }

func (s SourceFunc) Load(ctx context.Context) ([]*core.PolicyRecord, error) {
	return s.Fn(ctx)
}

// SliceSource serves a fixed set of records. Each Load returns fresh copies.
type SliceSource struct {
	SourceName string
	Records    []*core.PolicyRecord
}

var _ Source = (*SliceSource)(nil)

// NewSliceSource creates a Source backed by records.
func NewSliceSource(name string, records ...*core.PolicyRecord) *SliceSource {
	return &SliceSource{SourceName: name, Records: records}
}

func (s *SliceSource) Name() string { return s.SourceName }

func (s *SliceSource) Load(_ context.Context) ([]*core.PolicyRecord, error) {
	out := make([]*core.PolicyRecord, 0, len(s.Records))
	for _, r := range s.Records {
		if r == nil {
			continue
		}
		out = append(out, Clone(r))
	}
	return out, nil
}

// Clone returns a deep copy of record.
func Clone(record *core.PolicyRecord) *core.PolicyRecord {
	if record == nil {
		return nil
	}
	c := *record
	if record.Metadata != nil {
		c.Metadata = make(map[string]string, len(record.Metadata))
		for k, v := range record.Metadata {
			c.Metadata[k] = v
		}
	}
	return &c
}
