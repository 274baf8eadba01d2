package playback

// State is the controller's playback state.
type State string

const (
	StateIdle            State = "idle"
	StatePlayingPreamble State = "playing_preamble"
	StatePlayingVerse    State = "playing_verse"
	StatePaused          State = "paused"
)

func (s State) playing() bool {
	return s == StatePlayingPreamble || s == StatePlayingVerse
}

// Verse is one playable ayah of a chapter.
type Verse struct {
	Number   int    `json:"verse_number"`
	Text     string `json:"text"`
	AudioURL string `json:"audio_url,omitempty"`
}

// Chapter is a surah as the reader has it loaded.
type Chapter struct {
	Number     int     `json:"chapter_number"`
	VerseCount int     `json:"verse_count"`
	Verses     []Verse `json:"verses"`
}

// Verse returns verse n, or nil if the chapter does not carry it.
func (c *Chapter) Verse(n int) *Verse {
	if n >= 1 && n <= len(c.Verses) && c.Verses[n-1].Number == n {
		return &c.Verses[n-1]
	}
	for i := range c.Verses {
		if c.Verses[i].Number == n {
			return &c.Verses[i]
		}
	}
	return nil
}

// Catalog supplies already-loaded chapters.
type Catalog interface {
	Chapter(number int) (*Chapter, bool)
}

// Player is the media collaborator. Load may report failures synchronously;
// players that learn of a failure later call Controller.OnLoadFailed.
type Player interface {
	Load(uri string) error
	Play() error
	Pause() error
	Seek(seconds float64) error
}

// Position identifies the clip the controller is on. Verse is 0 on the preamble.
type Position struct {
	Chapter  int  `json:"chapter"`
	Verse    int  `json:"verse"`
	Preamble bool `json:"preamble"`
}

// Status is a read-only snapshot of a controller.
type Status struct {
	State       State   `json:"state"`
	Chapter     int     `json:"chapter,omitempty"`
	Verse       *int    `json:"verse"`
	VerseMarker string  `json:"verse_marker,omitempty"`
	Preamble    bool    `json:"is_playing_preamble"`
	IsPlaying   bool    `json:"is_playing"`
	AutoAdvance bool    `json:"auto_advance"`
	URI         string  `json:"uri,omitempty"`
	Elapsed     float64 `json:"elapsed"`
	Duration    float64 `json:"duration"`
	Notice      string  `json:"notice,omitempty"`
}
