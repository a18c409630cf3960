package sitemap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func urlSet(urls ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		set[u] = struct{}{}
	}
	return set
}

func TestDiff(t *testing.T) {
	t.Parallel()

	cs := Diff(urlSet("B", "C", "D"), urlSet("A", "B", "C"))

	require.Equal(t, []string{"D"}, cs.NewURLs)
	require.Equal(t, []string{"A"}, cs.RemovedURLs)
	require.Equal(t, []string{"B", "C"}, cs.UpdatedURLs)
	require.Zero(t, cs.URLCountChange)
}

func TestDiffAgainstEmptyPrevious(t *testing.T) {
	t.Parallel()

	cs := Diff(urlSet("A", "B"), nil)
	require.Equal(t, []string{"A", "B"}, cs.NewURLs)
	require.Empty(t, cs.RemovedURLs)
	require.Empty(t, cs.UpdatedURLs)
	require.Equal(t, 2, cs.URLCountChange)
}

func TestDiffShrinkingSite(t *testing.T) {
	t.Parallel()

	cs := Diff(urlSet("A"), urlSet("A", "B", "C"))
	require.Empty(t, cs.NewURLs)
	require.Equal(t, []string{"B", "C"}, cs.RemovedURLs)
	require.Equal(t, []string{"A"}, cs.UpdatedURLs)
	require.Equal(t, -2, cs.URLCountChange)
}

func TestDiffSlicesNeverNil(t *testing.T) {
	t.Parallel()

	// The change log is consumed as JSON; empty lists must serialize as
	// [] rather than null.
	cs := Diff(nil, nil)
	require.NotNil(t, cs.NewURLs)
	require.NotNil(t, cs.RemovedURLs)
	require.NotNil(t, cs.UpdatedURLs)
}
