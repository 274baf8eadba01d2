package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/taiwoajasa245/quran-api/internal/ayah"
	"github.com/taiwoajasa245/quran-api/internal/kitab"
	"github.com/taiwoajasa245/quran-api/internal/logger"
	"github.com/taiwoajasa245/quran-api/internal/quranapi"
	"github.com/taiwoajasa245/quran-api/internal/surah"
)

// tajweedFetchers bounds concurrent chapter fetches; the client's rate limiter
// still paces the requests.
const tajweedFetchers = 4

// TajweedSource is satisfied by *quranapi.Client.
type TajweedSource interface {
	Tajweed(ctx context.Context, chapter int) ([]quranapi.TajweedVerse, error)
}

type ExportKitab struct {
	kitab.Kitab
	Surahs []ExportSurah `json:"surahs"`
}

type ExportSurah struct {
	surah.Surah
	Ayahs []ayah.Ayah `json:"ayahs"`
}

type Exporter struct {
	kitabs  kitab.KitabRepo
	surahs  surah.SurahRepo
	ayahs   ayah.AyahRepo
	tajweed TajweedSource
	log     *logger.Logger
}

// NewExporter builds an exporter. tajweed may be nil to skip the merge.
func NewExporter(kitabs kitab.KitabRepo, surahs surah.SurahRepo, ayahs ayah.AyahRepo, tajweed TajweedSource, log *logger.Logger) *Exporter {
	if log == nil {
		log = logger.NewNop()
	}
	return &Exporter{kitabs: kitabs, surahs: surahs, ayahs: ayahs, tajweed: tajweed, log: log}
}

// Build loads every kitab with its surahs and their ayahs in order.
func (e *Exporter) Build(ctx context.Context) ([]ExportKitab, error) {
	kitabs, err := e.kitabs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list kitabs: %w", err)
	}

	out := make([]ExportKitab, 0, len(kitabs))
	for _, k := range kitabs {
		surahs, err := e.surahs.List(ctx, &k.ID)
		if err != nil {
			return nil, fmt.Errorf("list surahs of kitab %d: %w", k.ID, err)
		}
		ek := ExportKitab{Kitab: k, Surahs: make([]ExportSurah, 0, len(surahs))}
		for _, s := range surahs {
			ayahs, err := e.ayahs.List(ctx, &s.ID)
			if err != nil {
				return nil, fmt.Errorf("list ayahs of surah %d: %w", s.SurahNumber, err)
			}
			if ayahs == nil {
				ayahs = []ayah.Ayah{}
			}
			ek.Surahs = append(ek.Surahs, ExportSurah{Surah: s, Ayahs: ayahs})
		}
		out = append(out, ek)
	}

	if e.tajweed != nil {
		if err := e.mergeTajweed(ctx, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Export writes the tree built by Build as indented JSON.
func (e *Exporter) Export(ctx context.Context, w io.Writer) error {
	tree, err := e.Build(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tree)
}

// mergeTajweed fills TextTajweed per surah. A chapter whose fetch fails keeps
// its stored text and is logged.
func (e *Exporter) mergeTajweed(ctx context.Context, tree []ExportKitab) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(tajweedFetchers)

	for ki := range tree {
		for si := range tree[ki].Surahs {
			es := &tree[ki].Surahs[si]
			g.Go(func() error {
				verses, err := e.tajweed.Tajweed(gctx, es.SurahNumber)
				if err != nil {
					if gctx.Err() != nil {
						return gctx.Err()
					}
					e.log.Error("fetch tajweed failed", "surah", es.SurahNumber, "error", err)
					return nil
				}
				mergeSurah(es, verses)
				return nil
			})
		}
	}
	return g.Wait()
}

func mergeSurah(es *ExportSurah, verses []quranapi.TajweedVerse) {
	byAyah := make(map[int]string, len(verses))
	for _, v := range verses {
		chapter, n, err := v.Ayah()
		if err != nil || chapter != es.SurahNumber {
			continue
		}
		byAyah[n] = v.Text
	}
	for i := range es.Ayahs {
		if text, ok := byAyah[es.Ayahs[i].AyahNumber]; ok {
			es.Ayahs[i].TextTajweed = &text
		}
	}
}
