package ingest

import (
	"context"
	"strings"

	"github.com/taiwoajasa245/quran-api/internal/ayah"
	"github.com/taiwoajasa245/quran-api/internal/logger"
	"github.com/taiwoajasa245/quran-api/internal/quran"
	"github.com/taiwoajasa245/quran-api/internal/quranapi"
)

// TranslationSource is satisfied by *quranapi.Client.
type TranslationSource interface {
	Translations(ctx context.Context, resourceID, chapter int) ([]quranapi.Translation, error)
}

type TranslationImport struct {
	ResourceID int
	Language   string
	Translator string
}

type ImportReport struct {
	Created        int   `json:"created"`
	Existing       int   `json:"existing"`
	MissingAyahs   int   `json:"missing_ayahs"`
	FailedChapters []int `json:"failed_chapters"`
}

type TranslationImporter struct {
	source TranslationSource
	ayahs  ayah.AyahRepo
	log    *logger.Logger
}

func NewTranslationImporter(source TranslationSource, ayahs ayah.AyahRepo, log *logger.Logger) *TranslationImporter {
	if log == nil {
		log = logger.NewNop()
	}
	return &TranslationImporter{source: source, ayahs: ayahs, log: log}
}

// Import walks all 114 chapters. The API returns a chapter's verses in order,
// so the n-th entry belongs to ayah n. A chapter that fails is logged and
// recorded in the report; the walk only stops when ctx is done.
func (t *TranslationImporter) Import(ctx context.Context, req TranslationImport) (*ImportReport, error) {
	report := &ImportReport{FailedChapters: []int{}}
	log := t.log.With("resource_id", req.ResourceID, "language", req.Language)

	for chapter := quran.FirstSurah; chapter <= quran.LastSurah; chapter++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		verses, err := t.source.Translations(ctx, req.ResourceID, chapter)
		if err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			log.Error("fetch chapter failed", "surah", chapter, "error", err)
			report.FailedChapters = append(report.FailedChapters, chapter)
			continue
		}
		if len(verses) == 0 {
			log.Warn("no translations returned", "surah", chapter)
			continue
		}

		ids, err := t.ayahs.AyahIDs(ctx, chapter)
		if err != nil {
			log.Error("load ayah ids failed", "surah", chapter, "error", err)
			report.FailedChapters = append(report.FailedChapters, chapter)
			continue
		}

		if err := t.importChapter(ctx, req, chapter, verses, ids, report); err != nil {
			log.Error("save chapter failed", "surah", chapter, "error", err)
			report.FailedChapters = append(report.FailedChapters, chapter)
			continue
		}
		log.Debug("chapter imported", "surah", chapter, "verses", len(verses))
	}

	log.Info("translation import finished",
		"created", report.Created, "existing", report.Existing, "failed", len(report.FailedChapters))
	return report, nil
}

func (t *TranslationImporter) importChapter(ctx context.Context, req TranslationImport, chapter int, verses []quranapi.Translation, ids map[int]int, report *ImportReport) error {
	for i, v := range verses {
		id, ok := ids[i+1]
		if !ok {
			report.MissingAyahs++
			continue
		}
		created, err := t.ayahs.UpsertTranslation(ctx, ayah.Translation{
			AyahID:     id,
			Language:   req.Language,
			Translator: req.Translator,
			Text:       strings.TrimSpace(v.Text),
		})
		if err != nil {
			return err
		}
		if created {
			report.Created++
		} else {
			report.Existing++
		}
	}
	return nil
}
