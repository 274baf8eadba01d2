package para

type Para struct {
	ID         int    `json:"id"`
	KitabID    int    `json:"kitab_id"`
	ParaNumber int    `json:"para_number"`
	Name       string `json:"name"`
	AyahCount  int    `json:"ayah_count"`
}

// Verse is the slice of an ayah row the assigner needs.
type Verse struct {
	ID          int
	SurahNumber int
	AyahNumber  int
	ParaNumber  *int
	ParaID      *int
}

type ParaAyah struct {
	ID          int    `json:"id"`
	SurahNumber int    `json:"surah_number"`
	AyahNumber  int    `json:"ayah_number"`
	TextArabic  string `json:"text_arabic"`
}

type SkipReason string

const (
	ReasonLookupMiss   SkipReason = "lookup-miss"
	ReasonLookupError  SkipReason = "lookup-error"
	ReasonWriteFailure SkipReason = "write-failure"
)

type SkippedVerse struct {
	VerseID     int        `json:"verse_id"`
	SurahNumber int        `json:"surah_number"`
	AyahNumber  int        `json:"ayah_number"`
	ParaNumber  int        `json:"para_number"`
	Reason      SkipReason `json:"reason"`
	Error       string     `json:"error,omitempty"`
}

// Report summarises one assignment pass.
type Report struct {
	Scanned   int            `json:"scanned"`
	Updated   int            `json:"updated"`
	Unchanged int            `json:"unchanged"`
	Skipped   []SkippedVerse `json:"skipped"`
}

func (r *Report) SkippedCount() int {
	return len(r.Skipped)
}
