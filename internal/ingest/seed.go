// Package ingest holds the bulk maintenance jobs run by quranctl: seeding the
// catalog from a JSON dump, importing translations from api.quran.com and
// exporting the catalog for offline clients.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/taiwoajasa245/quran-api/internal/ayah"
	"github.com/taiwoajasa245/quran-api/internal/kitab"
	"github.com/taiwoajasa245/quran-api/internal/logger"
	"github.com/taiwoajasa245/quran-api/internal/quran"
	"github.com/taiwoajasa245/quran-api/internal/surah"
)

// SeedTranslator is credited for the English text carried by the seed file.
const SeedTranslator = "Dr. Mustafa Khattab"

// SeedSurah is one chapter of the quran-data.json dump.
type SeedSurah struct {
	ID              int         `json:"id"`
	Name            string      `json:"name"`
	Transliteration string      `json:"transliteration"`
	Type            string      `json:"type"`
	Verses          []SeedVerse `json:"verses"`
}

type SeedVerse struct {
	ID            int    `json:"id"`
	Text          string `json:"text"`
	Translation   string `json:"translation"`
	TranslationEn string `json:"translation_en"`
	Juz           int    `json:"juz"`
	Ruku          int    `json:"ruku"`
}

func (v SeedVerse) english() string {
	if v.TranslationEn != "" {
		return v.TranslationEn
	}
	return v.Translation
}

type SeedReport struct {
	KitabID      int `json:"kitab_id"`
	Surahs       int `json:"surahs"`
	Ayahs        int `json:"ayahs"`
	Translations int `json:"translations_created"`
}

// ReadSeedFile decodes the dump and checks every chapter and verse number.
func ReadSeedFile(r io.Reader) ([]SeedSurah, error) {
	var data []SeedSurah
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	for _, s := range data {
		if s.ID < quran.FirstSurah || s.ID > quran.LastSurah {
			return nil, fmt.Errorf("seed file: surah number %d out of range", s.ID)
		}
		for _, v := range s.Verses {
			if !quran.ValidAyah(s.ID, v.ID) {
				return nil, fmt.Errorf("seed file: ayah %d:%d does not exist", s.ID, v.ID)
			}
		}
	}
	return data, nil
}

type Seeder struct {
	kitabs kitab.KitabRepo
	surahs surah.SurahRepo
	ayahs  ayah.AyahRepo
	log    *logger.Logger
}

func NewSeeder(kitabs kitab.KitabRepo, surahs surah.SurahRepo, ayahs ayah.AyahRepo, log *logger.Logger) *Seeder {
	if log == nil {
		log = logger.NewNop()
	}
	return &Seeder{kitabs: kitabs, surahs: surahs, ayahs: ayahs, log: log}
}

// Seed upserts the Quran kitab, then every surah and ayah in data. Rows that
// already exist are kept as they are, so the job can be re-run.
func (s *Seeder) Seed(ctx context.Context, data []SeedSurah) (*SeedReport, error) {
	k, err := s.kitabs.Upsert(ctx, kitab.Quran)
	if err != nil {
		return nil, fmt.Errorf("upsert kitab: %w", err)
	}
	report := &SeedReport{KitabID: k.ID}

	for _, sd := range data {
		name := sd.Transliteration
		if name == "" {
			name = sd.Name
		}
		sr, err := s.surahs.Upsert(ctx, surah.CreateSurahRequest{
			KitabID:     k.ID,
			SurahNumber: sd.ID,
			Name:        name,
			NameArabic:  sd.Name,
			VersesCount: len(sd.Verses),
			Revelation:  strings.ToLower(sd.Type),
		})
		if err != nil {
			return report, fmt.Errorf("upsert surah %d: %w", sd.ID, err)
		}
		report.Surahs++

		for _, v := range sd.Verses {
			id, err := s.ayahs.UpsertSeedAyah(ctx, ayah.SeedAyah{
				KitabID:     k.ID,
				SurahID:     &sr.ID,
				SurahNumber: sd.ID,
				AyahNumber:  v.ID,
				TextArabic:  v.Text,
				ParaNumber:  positive(v.Juz),
				RukuNumber:  positive(v.Ruku),
			})
			if err != nil {
				return report, fmt.Errorf("upsert ayah %d:%d: %w", sd.ID, v.ID, err)
			}
			report.Ayahs++

			text := v.english()
			if text == "" {
				continue
			}
			created, err := s.ayahs.UpsertTranslation(ctx, ayah.Translation{
				AyahID: id, Language: ayah.DefaultLanguage, Translator: SeedTranslator, Text: text,
			})
			if err != nil {
				return report, fmt.Errorf("translation for %d:%d: %w", sd.ID, v.ID, err)
			}
			if created {
				report.Translations++
			}
		}
		s.log.Debug("surah seeded", "surah", sd.ID, "ayahs", len(sd.Verses))
	}

	s.log.Info("seed finished", "surahs", report.Surahs, "ayahs", report.Ayahs, "translations", report.Translations)
	return report, nil
}

func positive(n int) *int {
	if n <= 0 {
		return nil
	}
	return &n
}
