package surah

import "github.com/taiwoajasa245/quran-api/internal/ayah"

type Surah struct {
	ID          int    `json:"id"`
	KitabID     int    `json:"kitab_id"`
	SurahNumber int    `json:"surah_number"`
	Name        string `json:"name"`
	NameArabic  string `json:"name_arabic"`
	VersesCount int    `json:"verses_count"`
	Revelation  string `json:"revelation"`
}

// SurahDetail is a surah with its ayahs in order, each carrying its
// translations and tafsirs.
type SurahDetail struct {
	Surah
	Ayahs []ayah.Ayah `json:"ayahs"`
}

type CreateSurahRequest struct {
	KitabID     int    `json:"kitab_id" validate:"required,min=1"`
	SurahNumber int    `json:"surah_number" validate:"required,min=1,max=114"`
	Name        string `json:"name" validate:"required"`
	NameArabic  string `json:"name_arabic"`
	VersesCount int    `json:"verses_count" validate:"min=0,max=286"`
	Revelation  string `json:"revelation" validate:"omitempty,oneof=meccan medinan"`
}

type UpdateSurahRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1"`
	NameArabic  *string `json:"name_arabic,omitempty"`
	VersesCount *int    `json:"verses_count,omitempty" validate:"omitempty,min=0,max=286"`
	Revelation  *string `json:"revelation,omitempty" validate:"omitempty,oneof=meccan medinan"`
}
