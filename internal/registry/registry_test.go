package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nayeemjb/intelgrid/internal/intel"
)

func TestAddValidation(t *testing.T) {
	r := New()

	err := r.Add(intel.Outlet{Type: intel.OutletNational})
	require.Error(t, err, "nameless outlet must be rejected")

	err = r.Add(intel.Outlet{Name: "X", Type: "regional"})
	require.Error(t, err, "unknown type must be rejected")

	err = r.Add(intel.Outlet{
		Name:     "Daily Example",
		Type:     intel.OutletNational,
		Sections: map[string]string{"Politics": "https://example.com/politics"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())
}

func TestAddNormalizesInternationalSections(t *testing.T) {
	r := New()
	require.NoError(t, r.Add(intel.Outlet{
		Name:     "Wire Service",
		Type:     intel.OutletInternational,
		Sections: map[string]string{"World": "https://wire.example.com/world"},
	}))

	outlets := r.List()
	require.Len(t, outlets, 1)
	require.Len(t, outlets[0].Sections, 1)
	assert.Equal(t, "https://wire.example.com/world", outlets[0].Sections[intel.SectorInternational])
}

func TestListReturnsDeepCopy(t *testing.T) {
	r := Seeded()
	first := r.List()
	require.NotEmpty(t, first)
	first[0].Sections["Politics"] = "https://tampered.example.com"

	again := r.List()
	assert.Equal(t, "https://www.prothomalo.com/politics", again[0].Sections["Politics"])
}

func TestListIsSorted(t *testing.T) {
	r := New()
	for _, name := range []string{"Zeta Times", "Alpha Post", "Mid Daily"} {
		require.NoError(t, r.Add(intel.Outlet{
			Name:     name,
			Type:     intel.OutletNational,
			Sections: map[string]string{"Politics": "https://example.com"},
		}))
	}
	outlets := r.List()
	require.Len(t, outlets, 3)
	assert.Equal(t, "Alpha Post", outlets[0].Name)
	assert.Equal(t, "Mid Daily", outlets[1].Name)
	assert.Equal(t, "Zeta Times", outlets[2].Name)
}

func TestRemove(t *testing.T) {
	r := Seeded()
	r.Remove("Prothom Alo")
	assert.Equal(t, 0, r.Len())
	r.Remove("never existed")
	assert.Equal(t, 0, r.Len())
}
