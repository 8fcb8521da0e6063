package generate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leoschwarz/mbtestgen/internal/catalog"
	"github.com/leoschwarz/mbtestgen/internal/mbids"
	"github.com/leoschwarz/mbtestgen/internal/sample"
)

// seedCache writes a pre-populated cache directory so no fetch happens.
func seedCache(t *testing.T, files map[string][]string) *mbids.Store {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "mbids")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	for name, ids := range files {
		content := strings.Join(ids, "\n") + "\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return mbids.NewStore(dir, "http://unused.invalid")
}

func kinds(t *testing.T, names ...string) []catalog.Kind {
	t.Helper()
	ks, err := catalog.Resolve(names)
	require.NoError(t, err)
	return ks
}

func uuidLike(prefix byte, i int) string {
	return fmt.Sprintf("%c%07d-0000-4000-8000-%012d", prefix, i, i)
}

func TestRunProducesExpectedBlocks(t *testing.T) {
	areaIDs := []string{uuidLike('a', 1), uuidLike('a', 2), uuidLike('a', 3)}
	artistIDs := []string{uuidLike('b', 1), uuidLike('b', 2)}
	store := seedCache(t, map[string][]string{"Area": areaIDs, "Artist": artistIDs})

	output := filepath.Join(t.TempDir(), "lookup_gen_test.go")
	result, err := Run(context.Background(), store, Options{
		Kinds:     kinds(t, "Area", "Artist"),
		Num:       2,
		Seed:      1,
		Output:    output,
		UserAgent: "mbtestgen/test",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, result.Cases)
	assert.Equal(t, 2, result.PerKind["Area"])
	assert.Equal(t, 2, result.PerKind["Artist"])

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.HasPrefix(out, "// Code generated by mbtestgen. DO NOT EDIT."))
	assert.Equal(t, 2, strings.Count(out, "func TestLookup_Area_"))
	assert.Equal(t, 2, strings.Count(out, "func TestLookup_Artist_"))
	assert.Equal(t, 4, strings.Count(out, "func TestLookup_"))

	// Every rendered MBID comes from the seeded lists, distinct per kind.
	for _, id := range append(areaIDs, artistIDs...) {
		fragment := strings.ReplaceAll(id, "-", "")
		if strings.Contains(out, id) {
			assert.Equal(t, 1, strings.Count(out, "_"+fragment+"("),
				"each sampled MBID appears in exactly one test name")
		}
	}

	// Area blocks precede Artist blocks, matching the requested order.
	assert.Less(t, strings.Index(out, "TestLookup_Area_"), strings.Index(out, "TestLookup_Artist_"))
}

func TestRunDeterministicWithSeed(t *testing.T) {
	files := map[string][]string{}
	var areaIDs []string
	for i := 0; i < 40; i++ {
		areaIDs = append(areaIDs, uuidLike('a', i))
	}
	files["Area"] = areaIDs

	opts := Options{
		Kinds:     kinds(t, "Area"),
		Num:       10,
		Seed:      99,
		UserAgent: "mbtestgen/test",
	}

	var outputs [][]byte
	for i := 0; i < 2; i++ {
		store := seedCache(t, files)
		output := filepath.Join(t.TempDir(), "out_test.go")
		o := opts
		o.Output = output
		_, err := Run(context.Background(), store, o)
		require.NoError(t, err)
		data, err := os.ReadFile(output)
		require.NoError(t, err)
		outputs = append(outputs, data)
	}

	if diff := cmp.Diff(string(outputs[0]), string(outputs[1])); diff != "" {
		t.Errorf("same seed produced different output (-first +second):\n%s", diff)
	}
}

func TestRunInsufficientSamples(t *testing.T) {
	store := seedCache(t, map[string][]string{
		"Area":   {uuidLike('a', 1), uuidLike('a', 2), uuidLike('a', 3)},
		"Artist": {uuidLike('b', 1), uuidLike('b', 2)},
	})

	output := filepath.Join(t.TempDir(), "out_test.go")
	_, err := Run(context.Background(), store, Options{
		Kinds:     kinds(t, "Area", "Artist"),
		Num:       3,
		Seed:      1,
		Output:    output,
		UserAgent: "mbtestgen/test",
	})
	require.ErrorIs(t, err, sample.ErrInsufficientSamples)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr), "no output may be written on failure")
}

func TestRunMissingCacheFile(t *testing.T) {
	store := seedCache(t, map[string][]string{"Area": {uuidLike('a', 1)}})

	output := filepath.Join(t.TempDir(), "out_test.go")
	_, err := Run(context.Background(), store, Options{
		Kinds:     kinds(t, "Area", "Event"),
		Num:       1,
		Seed:      1,
		Output:    output,
		UserAgent: "mbtestgen/test",
	})
	require.ErrorIs(t, err, mbids.ErrCacheFileMissing)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunFragmentCollision(t *testing.T) {
	// Both spellings are valid UUIDs, so they pass validation, but they
	// collapse to one name fragment once hyphens are stripped.
	store := seedCache(t, map[string][]string{"Area": {
		"89a675c2-3e37-3518-b83c-418bad59a85a",
		"89a675c23e373518b83c418bad59a85a",
	}})

	output := filepath.Join(t.TempDir(), "out_test.go")
	_, err := Run(context.Background(), store, Options{
		Kinds:     kinds(t, "Area"),
		Num:       2,
		Seed:      1,
		Output:    output,
		UserAgent: "mbtestgen/test",
	})
	require.ErrorIs(t, err, ErrFragmentCollision)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr), "no output may be written on collision")
}

func TestRunInvalidMBID(t *testing.T) {
	store := seedCache(t, map[string][]string{"Area": {"definitely-not-a-uuid"}})

	output := filepath.Join(t.TempDir(), "out_test.go")
	_, err := Run(context.Background(), store, Options{
		Kinds:     kinds(t, "Area"),
		Num:       1,
		Seed:      1,
		Output:    output,
		UserAgent: "mbtestgen/test",
	})
	require.ErrorIs(t, err, mbids.ErrInvalidMBID)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunNoKinds(t *testing.T) {
	store := seedCache(t, map[string][]string{})
	_, err := Run(context.Background(), store, Options{Num: 1})
	assert.Error(t, err)
}

func TestRunOverwritesPreviousOutput(t *testing.T) {
	store := seedCache(t, map[string][]string{"Area": {uuidLike('a', 1)}})

	output := filepath.Join(t.TempDir(), "out_test.go")
	require.NoError(t, os.WriteFile(output, []byte("stale content"), 0o644))

	_, err := Run(context.Background(), store, Options{
		Kinds:     kinds(t, "Area"),
		Num:       1,
		Seed:      1,
		Output:    output,
		UserAgent: "mbtestgen/test",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale content")
}
