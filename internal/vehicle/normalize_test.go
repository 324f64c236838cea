package vehicle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeIdempotent(t *testing.T) {
	cases := []string{"Innova Crysta", "  SEDAN ", "tempo   traveller", "etios", ""}
	for _, in := range cases {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", in)
	}
}

func TestNormalizeTokenForm(t *testing.T) {
	assert.Equal(t, "innova_crysta", Normalize(" Innova   Crysta "))
	assert.Equal(t, "sedan", Normalize("SEDAN"))
	assert.Equal(t, "", Normalize("   "))
}

func TestResolveCanonicalPassthrough(t *testing.T) {
	r := DefaultResolver()
	for token := range r.vocabulary {
		got, err := r.Resolve(token)
		require.NoError(t, err, "canonical token %q must resolve", token)
		assert.Equal(t, token, got)
	}
}

func TestResolveNumericMapping(t *testing.T) {
	r := DefaultResolver()

	got, err := r.Resolve("1271")
	require.NoError(t, err)
	assert.Equal(t, "etios", got)

	_, err = r.Resolve("9999")
	require.Error(t, err, "unmapped numeric ids must be rejected, not passed through")
}

func TestResolveAliasExactTokenOnly(t *testing.T) {
	r := DefaultResolver()

	got, err := r.Resolve("Dzire")
	require.NoError(t, err)
	assert.Equal(t, "sedan", got)

	// "Swift Dzire" normalizes to swift_dzire which matches neither the
	// vocabulary nor a single-token alias entry; it must be rejected.
	_, err = r.Resolve("Swift Dzire")
	require.Error(t, err)
}

func TestResolveRejectsUnknown(t *testing.T) {
	r := DefaultResolver()
	for _, in := range []string{"", "   ", "hovercraft", "bus 52", "sedan-deluxe"} {
		_, err := r.Resolve(in)
		assert.Error(t, err, "input %q should not resolve", in)
	}
}

func TestResolveDisplayNames(t *testing.T) {
	r := DefaultResolver()

	got, err := r.Resolve("Innova Crysta")
	require.NoError(t, err)
	assert.Equal(t, "innova_crysta", got)

	got, err = r.Resolve("Tempo Traveller")
	require.NoError(t, err)
	assert.Equal(t, "tempo_traveller", got)
}

func TestNewResolverInjectedTables(t *testing.T) {
	r := NewResolver([]string{"rickshaw"}, map[string]string{"7": "rickshaw"}, map[string]string{"auto": "rickshaw"})

	got, err := r.Resolve("7")
	require.NoError(t, err)
	assert.Equal(t, "rickshaw", got)

	got, err = r.Resolve("AUTO")
	require.NoError(t, err)
	assert.Equal(t, "rickshaw", got)

	_, err = r.Resolve("sedan")
	assert.Error(t, err, "injected tables replace the defaults entirely")
}

func writeResolverAsset(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vehicle_ids.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadResolverMergesOverDefaults(t *testing.T) {
	path := writeResolverAsset(t, `{
		"vocabulary": ["maybach"],
		"numericIds": {"1274": "innova_hycross", "2000": "maybach"},
		"aliases": {"force traveller": "tempo_traveller", "benz": "maybach"}
	}`)

	r, err := LoadResolver(path)
	require.NoError(t, err)

	// asset entries
	got, err := r.Resolve("1274")
	require.NoError(t, err)
	assert.Equal(t, "innova_hycross", got)

	got, err = r.Resolve("2000")
	require.NoError(t, err)
	assert.Equal(t, "maybach", got, "asset vocabulary must back asset numeric ids")

	got, err = r.Resolve("Benz")
	require.NoError(t, err)
	assert.Equal(t, "maybach", got)

	// multi-word alias keys normalize to token form before matching
	got, err = r.Resolve("Force Traveller")
	require.NoError(t, err)
	assert.Equal(t, "tempo_traveller", got)

	// compiled-in defaults survive the merge
	got, err = r.Resolve("dzire")
	require.NoError(t, err)
	assert.Equal(t, "sedan", got)

	got, err = r.Resolve("1")
	require.NoError(t, err)
	assert.Equal(t, "sedan", got)
}

func TestLoadResolverSkipsOutOfVocabularyTargets(t *testing.T) {
	path := writeResolverAsset(t, `{
		"numericIds": {"3000": "phantom"},
		"aliases": {"ghost": "phantom"}
	}`)

	r, err := LoadResolver(path)
	require.NoError(t, err)

	_, err = r.Resolve("ghost")
	assert.Error(t, err, "alias pointing outside the vocabulary must not resolve")

	_, err = r.Resolve("3000")
	assert.Error(t, err, "numeric mapping outside the vocabulary must not resolve")
}

func TestLoadResolverErrors(t *testing.T) {
	_, err := LoadResolver(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := writeResolverAsset(t, `{"aliases": `)
	_, err = LoadResolver(path)
	assert.Error(t, err)
}
