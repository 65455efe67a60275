package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/dsanno/pkg/dsanno"
)

func TestDefault_Groups(t *testing.T) {
	s := Default()

	assert.Equal(t, []string{"source", "desc", "space", "den", "hemi", "res"}, s.Identity.Keys())
	assert.Equal(t, []string{"format", "fname", "rel_path", "checksum"}, s.Derived.Keys())
	assert.Equal(t, []string{"title", "tags", "redir", "url"}, s.Conditional.Keys())
	assert.Equal(t, []string{"space", "den"}, s.Redirection.Keys())
	assert.Equal(t, []string{"source", "refs", "comments", "demographics"}, s.InfoKeys.Keys())

	assert.Equal(t, 14, s.MinimalKeys.Len())
	assert.Equal(t, "source", s.MinimalKeys.Keys()[0])
	assert.Equal(t, "url", s.MinimalKeys.Keys()[13])
}

func TestDefault_IsSingleton(t *testing.T) {
	assert.Same(t, Default(), Default())
}

func TestKeySet_KeysReturnsCopy(t *testing.T) {
	s := Default()
	keys := s.Identity.Keys()
	keys[0] = "mutated"
	assert.Equal(t, "source", s.Identity.Keys()[0])
}

func TestKeySet_Contains(t *testing.T) {
	s := Default()
	assert.True(t, s.MinimalKeys.Contains("checksum"))
	assert.False(t, s.MinimalKeys.Contains("refs"))
	assert.True(t, s.InfoKeys.Contains("refs"))
}

func TestLookup(t *testing.T) {
	s := Default()

	minimal, err := s.Lookup(Minimal)
	require.NoError(t, err)
	assert.Equal(t, SectionAnnotations, minimal.Section)
	assert.Equal(t, s.MinimalKeys.Keys(), minimal.Keys.Keys())

	info, err := s.Lookup(Info)
	require.NoError(t, err)
	assert.Equal(t, SectionInfo, info.Section)
	assert.Equal(t, s.InfoKeys.Keys(), info.Keys.Keys())
}

func TestLookup_Unsupported(t *testing.T) {
	_, err := Default().Lookup("unsupported-schema")
	require.Error(t, err)
	assert.True(t, errors.Is(err, dsanno.ErrSchema))
	assert.Contains(t, err.Error(), "info, minimal")
}

func TestIdentityKeysFor(t *testing.T) {
	s := Default()
	assert.Equal(t, []string{"source", "desc", "space", "den", "hemi"}, s.IdentityKeysFor(dsanno.FormatSurface))
	assert.Equal(t, []string{"source", "desc", "space", "res"}, s.IdentityKeysFor(dsanno.FormatVolume))
	assert.Equal(t, s.Identity.Keys(), s.IdentityKeysFor(dsanno.FormatUnknown))
}

func TestInapplicableKeys(t *testing.T) {
	s := Default()
	assert.Equal(t, []string{"res"}, s.InapplicableKeys(dsanno.FormatSurface))
	assert.Equal(t, []string{"den", "hemi"}, s.InapplicableKeys(dsanno.FormatVolume))
	assert.Nil(t, s.InapplicableKeys(dsanno.Format("mesh")))
}
