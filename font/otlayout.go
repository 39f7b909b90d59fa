package font

import (
	"maps"
	"slices"

	"github.com/go-text/typesetting/font"
)

// layoutLists are the tags declared by the GSUB and GPOS tables of a font.
type layoutLists struct {
	features  []string
	scripts   []string
	languages []string
}

// layoutListsOf collects the sorted, deduplicated union of feature,
// script and language system tags from the GSUB and GPOS tables go-text
// parsed for ft. Absent or unparsable tables contribute nothing.
func layoutListsOf(ft *font.Font) layoutLists {
	features := map[string]bool{}
	scripts := map[string]bool{}
	languages := map[string]bool{}
	for _, l := range []font.Layout{ft.GSUB.Layout, ft.GPOS.Layout} {
		for _, s := range l.Scripts {
			scripts[s.Tag.String()] = true
			for _, rec := range s.LangSysRecords {
				languages[rec.Tag.String()] = true
			}
		}
		for _, f := range l.Features {
			features[f.Tag.String()] = true
		}
	}
	return layoutLists{
		features:  slices.Sorted(maps.Keys(features)),
		scripts:   slices.Sorted(maps.Keys(scripts)),
		languages: slices.Sorted(maps.Keys(languages)),
	}
}
