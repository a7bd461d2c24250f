package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nayeemjb/intelgrid/internal/intel"
)

func sampleItems() []intel.Item {
	return []intel.Item{
		{
			Title:   "Ceasefire talks resume in the region",
			Link:    "https://wire.example.com/a",
			Source:  "Wire Service",
			Sector:  intel.SectorInternational,
			Type:    intel.OutletInternational,
			Summary: "International development summary.",
		},
		{
			Title:   "Parliament passes the national budget",
			Link:    "https://daily.example.com/b",
			Source:  "Daily Example",
			Sector:  "Politics",
			Type:    intel.OutletNational,
			Summary: "Budget summary.",
		},
		{
			Title:   "Central bank raises interest rates",
			Link:    "https://daily.example.com/c",
			Source:  "Daily Example",
			Sector:  "Economy",
			Type:    intel.OutletNational,
			Summary: "Rates summary.",
		},
	}
}

func TestWriteDossier(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dossier.docx")

	err := WriteDossier(path, sampleItems(),
		[]string{"Wire Service", "Daily Example"},
		[]string{"Politics", "Economy"})
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWriteDossierWithEmptySelection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dossier.docx")

	// No sources selected still yields a valid skeleton document.
	err := WriteDossier(path, sampleItems(), nil, nil)
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestWriteArchive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "archive.docx")

	require.NoError(t, WriteArchive(path, sampleItems()))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestFilenames(t *testing.T) {
	at := time.Date(2026, 8, 31, 9, 5, 0, 0, time.UTC)
	assert.Equal(t, "INTEL_DOSSIER_0905.docx", DossierFilename(at))
	assert.Equal(t, "ARCHIVE_20260831_0905.docx", ArchiveFilename(at))
}
