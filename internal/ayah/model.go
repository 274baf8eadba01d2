package ayah

// Default translation attributes used when an ayah is written with a bare
// translation text.
const (
	DefaultLanguage   = "en"
	DefaultTranslator = "Default"
)

type Ayah struct {
	ID           int           `json:"id"`
	KitabID      int           `json:"kitab_id"`
	SurahID      *int          `json:"surah_id"`
	SurahNumber  int           `json:"surah_number"`
	AyahNumber   int           `json:"ayah_number"`
	VerseMarker  string        `json:"verse_marker"`
	TextArabic   string        `json:"text_arabic"`
	TextTajweed  *string       `json:"text_tajweed"`
	ParaNumber   *int          `json:"para_number"`
	ParaID       *int          `json:"para_id"`
	RukuNumber   *int          `json:"ruku_number"`
	AudioURL     *string       `json:"audio_url"`
	Translations []Translation `json:"translations"`
	Tafsirs      []Tafsir      `json:"tafsirs"`
}

type Translation struct {
	ID         int    `json:"id"`
	AyahID     int    `json:"ayah_id"`
	Language   string `json:"language"`
	Translator string `json:"translator"`
	Text       string `json:"text"`
}

type Tafsir struct {
	ID      int    `json:"id"`
	AyahID  int    `json:"ayah_id"`
	Scholar string `json:"scholar"`
	Text    string `json:"text"`
}

type CreateAyahRequest struct {
	KitabID     int     `json:"kitab_id" validate:"required,min=1"`
	SurahID     *int    `json:"surah_id,omitempty" validate:"omitempty,min=1"`
	SurahNumber int     `json:"surah_number" validate:"required,min=1,max=114"`
	AyahNumber  int     `json:"ayah_number" validate:"required,min=1,max=286"`
	TextArabic  string  `json:"text_arabic" validate:"required"`
	TextTajweed *string `json:"text_tajweed,omitempty"`
	ParaNumber  *int    `json:"para_number,omitempty" validate:"omitempty,min=1,max=30"`
	RukuNumber  *int    `json:"ruku_number,omitempty" validate:"omitempty,min=1"`
	AudioURL    *string `json:"audio_url,omitempty" validate:"omitempty,url"`
	// Translation, when set, is stored under the default language and translator.
	Translation *string `json:"translation,omitempty"`
}

type UpdateAyahRequest struct {
	SurahID     *int    `json:"surah_id,omitempty" validate:"omitempty,min=1"`
	SurahNumber *int    `json:"surah_number,omitempty" validate:"omitempty,min=1,max=114"`
	AyahNumber  *int    `json:"ayah_number,omitempty" validate:"omitempty,min=1,max=286"`
	TextArabic  *string `json:"text_arabic,omitempty" validate:"omitempty,min=1"`
	TextTajweed *string `json:"text_tajweed,omitempty"`
	ParaNumber  *int    `json:"para_number,omitempty" validate:"omitempty,min=1,max=30"`
	RukuNumber  *int    `json:"ruku_number,omitempty" validate:"omitempty,min=1"`
	AudioURL    *string `json:"audio_url,omitempty" validate:"omitempty,url"`
	// Translation replaces the text of the ayah's first translation, or adds
	// a default one.
	Translation *string `json:"translation,omitempty"`
}

type CreateTafsirRequest struct {
	AyahID  int    `json:"ayah_id" validate:"required,min=1"`
	Scholar string `json:"scholar" validate:"required"`
	Text    string `json:"text" validate:"required"`
}

type UpdateTafsirRequest struct {
	Scholar *string `json:"scholar,omitempty" validate:"omitempty,min=1"`
	Text    *string `json:"text,omitempty" validate:"omitempty,min=1"`
}

// SeedAyah is one row written by the bulk importer.
type SeedAyah struct {
	KitabID     int
	SurahID     *int
	SurahNumber int
	AyahNumber  int
	TextArabic  string
	ParaNumber  *int
	RukuNumber  *int
}
