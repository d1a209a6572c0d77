package corpus

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/policymatch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failingSource(name string) Source {
	return SourceFunc{SourceName: name, Fn: func(context.Context) ([]*core.PolicyRecord, error) {
		return nil, errors.New("unreadable")
	}}
}

func TestNewLoader_RequiresSources(t *testing.T) {
	_, err := NewLoader(nil)
	assert.ErrorIs(t, err, ErrNoSources)
}

func TestLoader_PreservesSourceOrder(t *testing.T) {
	central := NewSliceSource("central",
		&core.PolicyRecord{ServiceName: "c1"},
		&core.PolicyRecord{ServiceName: "c2"})
	local := NewSliceSource("local", &core.PolicyRecord{ServiceName: "l1"})
	private := NewSliceSource("private", &core.PolicyRecord{ServiceName: "p1"}, nil)

	loader, err := NewLoader([]Source{central, local, private}, WithConcurrency(3))
	require.NoError(t, err)
	defer loader.Release()

	for range 5 {
		records, err := loader.LoadCorpus(context.Background())
		require.NoError(t, err)
		names := make([]string, len(records))
		for i, r := range records {
			names[i] = r.ServiceName
		}
		assert.Equal(t, []string{"c1", "c2", "l1", "p1"}, names)
	}
}

func TestLoader_SkipsFailingSources(t *testing.T) {
	good := NewSliceSource("good", &core.PolicyRecord{ServiceName: "kept"})
	panicky := SourceFunc{SourceName: "panicky", Fn: func(context.Context) ([]*core.PolicyRecord, error) {
		panic("boom")
	}}

	loader, err := NewLoader([]Source{failingSource("bad"), good, panicky})
	require.NoError(t, err)
	defer loader.Release()

	report, err := loader.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Records, 1)
	assert.Equal(t, "kept", report.Records[0].ServiceName)
	assert.Equal(t, []string{"good"}, report.Loaded)
	require.Len(t, report.Failed, 2)
	assert.ErrorIs(t, report.Failed["bad"], ErrSourceFailed)
	assert.ErrorIs(t, report.Failed["panicky"], ErrSourceFailed)
}

func TestLoader_AllSourcesFailing(t *testing.T) {
	loader, err := NewLoader([]Source{failingSource("a"), failingSource("b")})
	require.NoError(t, err)
	defer loader.Release()

	records, err := loader.LoadCorpus(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoader_NormalizesWithoutMutatingSource(t *testing.T) {
	original := &core.PolicyRecord{ServiceName: "  padded  ", Metadata: map[string]string{"k": "v"}}
	loader, err := NewLoader([]Source{NewSliceSource("s", original)})
	require.NoError(t, err)
	defer loader.Release()

	records, err := loader.LoadCorpus(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "padded", records[0].ServiceName)
	assert.Equal(t, "  padded  ", original.ServiceName)

	records[0].Metadata["k"] = "changed"
	assert.Equal(t, "v", original.Metadata["k"])
}

func TestLoader_CanceledContext(t *testing.T) {
	loader, err := NewLoader([]Source{NewSliceSource("s")})
	require.NoError(t, err)
	defer loader.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = loader.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
