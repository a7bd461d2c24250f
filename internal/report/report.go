// Package report renders snapshots into docx documents.
package report

import (
	"fmt"
	"time"

	"github.com/gingfrederik/docx"

	"github.com/nayeemjb/intelgrid/internal/intel"
)

// DossierFilename names an on-demand briefing file.
func DossierFilename(t time.Time) string {
	return fmt.Sprintf("INTEL_DOSSIER_%s.docx", t.Format("1504"))
}

// ArchiveFilename names a periodic archive file.
func ArchiveFilename(t time.Time) string {
	return fmt.Sprintf("ARCHIVE_%s.docx", t.Format("20060102_1504"))
}

// WriteDossier renders the selected slice of a snapshot as a structured
// briefing: international items first, then national items grouped by the
// fixed sector ordering. The selection rule matches the query layer: an item
// appears when its source is selected and it is international or its sector
// is selected.
func WriteDossier(path string, items []intel.Item, sources, sectors []string) error {
	selected := toSet(sources)
	wanted := toSet(sectors)

	f := docx.NewFile()
	heading(f, "TOP SECRET // INTELLIGENCE BRIEFING", 20)
	f.AddParagraph()

	heading(f, "SECTION I: INTERNATIONAL INTELLIGENCE", 16)
	for _, item := range items {
		if item.Type != intel.OutletInternational || !selected[item.Source] {
			continue
		}
		heading(f, item.Title, 13)
		caption(f, fmt.Sprintf("SOURCE: %s | LINK: %s", item.Source, item.Link))
		f.AddParagraph().AddText(item.Summary)
	}

	heading(f, "SECTION II: NATIONAL INTELLIGENCE", 16)
	for _, sector := range intel.NationalSectors {
		if !wanted[sector] {
			continue
		}
		heading(f, fmt.Sprintf("SECTOR: %s", sector), 14)
		for _, item := range items {
			if item.Sector != sector || !selected[item.Source] {
				continue
			}
			heading(f, fmt.Sprintf("[%s] %s", item.Source, item.Title), 12)
			f.AddParagraph().AddText(item.Summary)
		}
	}

	if err := f.Save(path); err != nil {
		return fmt.Errorf("save dossier: %w", err)
	}
	return nil
}

// WriteArchive renders the whole snapshot as a flat periodic log.
func WriteArchive(path string, items []intel.Item) error {
	f := docx.NewFile()
	heading(f, "PERIODIC INTELLIGENCE LOG", 20)
	f.AddParagraph()
	for _, item := range items {
		heading(f, fmt.Sprintf("[%s] %s", item.Source, item.Title), 13)
		f.AddParagraph().AddText(item.Summary)
	}
	if err := f.Save(path); err != nil {
		return fmt.Errorf("save archive: %w", err)
	}
	return nil
}

func heading(f *docx.File, text string, size int) {
	run := f.AddParagraph().AddText(text)
	run.Size(size)
}

func caption(f *docx.File, text string) {
	run := f.AddParagraph().AddText(text)
	run.Size(9)
	run.Color("808080")
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
