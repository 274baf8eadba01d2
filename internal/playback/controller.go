package playback

import (
	"errors"
	"fmt"

	"github.com/taiwoajasa245/quran-api/internal/logger"
	"github.com/taiwoajasa245/quran-api/internal/quran"
	"github.com/taiwoajasa245/quran-api/pkg/util"
)

var (
	ErrUnknownChapter    = errors.New("chapter is not loaded")
	ErrUnknownVerse      = errors.New("verse is not in chapter")
	ErrInvalidTransition = errors.New("command not valid in current state")
	ErrInvalidSeek       = errors.New("seek position out of range")
)

// Controller sequences preamble and verse clips through a Player. It is not
// safe for concurrent use; callers serialise commands and events.
type Controller struct {
	catalog  Catalog
	player   Player
	resolver Resolver
	log      *logger.Logger

	state State
	// held is the playing state a Paused controller returns to.
	held        State
	chapter     *Chapter
	pos         Position
	autoAdvance bool

	uri      string
	atEnd    bool
	elapsed  float64
	duration float64
	notice   string
}

func NewController(catalog Catalog, player Player, resolver Resolver, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.NewNop()
	}
	return &Controller{
		catalog:  catalog,
		player:   player,
		resolver: resolver,
		log:      log,
		state:    StateIdle,
	}
}

// Open loads a chapter into the reader. With autoplay the controller enters
// the chapter's first clip: the verse 1 clip for chapter 1, the preamble for
// every other chapter.
func (c *Controller) Open(chapter int, autoplay bool) error {
	ch, ok := c.catalog.Chapter(chapter)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownChapter, chapter)
	}

	c.halt()
	c.chapter = ch
	c.autoAdvance = autoplay
	if autoplay {
		c.enterChapter(ch)
	}
	return nil
}

// OnFinished handles the player's completion event for the current clip.
func (c *Controller) OnFinished() {
	if !c.state.playing() {
		c.log.Debug("finished event ignored", "state", c.state)
		return
	}
	c.atEnd = true
	if !c.autoAdvance {
		c.held = c.state
		c.state = StatePaused
		return
	}
	c.advance()
}

func (c *Controller) OnPositionUpdate(elapsed, duration float64) {
	if c.state == StateIdle {
		return
	}
	c.elapsed = elapsed
	if duration > 0 {
		c.duration = duration
	}
}

// OnLoadFailed is the asynchronous counterpart of a failing Player.Load.
// Events for a clip the controller has moved away from are dropped.
func (c *Controller) OnLoadFailed(uri string, err error) {
	if c.state == StateIdle || uri != c.uri {
		return
	}
	c.loadFailed(uri, err)
}

// Next is an explicit "next" request. It re-arms auto-advance.
func (c *Controller) Next() error {
	if c.chapter == nil {
		return ErrInvalidTransition
	}
	c.autoAdvance = true
	if c.state == StateIdle {
		c.enterChapter(c.chapter)
		return nil
	}
	c.advance()
	return nil
}

// Previous steps back one clip. From verse 1 of a chapter other than 1 it
// goes to the preamble. The preamble and chapter 1 verse 1 have nothing
// before them.
func (c *Controller) Previous() error {
	if c.state == StateIdle {
		return ErrInvalidTransition
	}

	var target Position
	switch {
	case c.pos.Preamble:
		return ErrInvalidTransition
	case c.pos.Verse > 1:
		target = Position{Chapter: c.pos.Chapter, Verse: c.pos.Verse - 1}
	case c.pos.Chapter != quran.FirstSurah:
		target = Position{Chapter: c.pos.Chapter, Preamble: true}
	default:
		return ErrInvalidTransition
	}

	c.autoAdvance = true
	c.playAt(target)
	return nil
}

func (c *Controller) Pause() error {
	if !c.state.playing() {
		return ErrInvalidTransition
	}
	if err := c.player.Pause(); err != nil {
		c.log.Warn("player pause failed", "error", err)
	}
	c.held = c.state
	c.state = StatePaused
	return nil
}

// Resume continues a paused clip. A clip that finished or failed to load is
// started again from the beginning.
func (c *Controller) Resume() error {
	if c.state != StatePaused {
		return ErrInvalidTransition
	}
	if c.uri == "" || c.atEnd {
		c.playAt(c.pos)
		return nil
	}
	if err := c.player.Play(); err != nil {
		c.loadFailed(c.uri, err)
		return nil
	}
	c.state = c.held
	return nil
}

// Stop returns to Idle. The chapter stays loaded.
func (c *Controller) Stop() error {
	if c.state == StateIdle {
		return ErrInvalidTransition
	}
	c.halt()
	return nil
}

func (c *Controller) Seek(seconds float64) error {
	if c.state == StateIdle {
		return ErrInvalidTransition
	}
	if seconds < 0 || (c.duration > 0 && seconds > c.duration) {
		return ErrInvalidSeek
	}
	if err := c.player.Seek(seconds); err != nil {
		c.log.Warn("player seek failed", "error", err)
		return nil
	}
	c.elapsed = seconds
	c.atEnd = false
	return nil
}

// Select plays a specific clip of a chapter. The preamble of chapter 1 is the
// verse 1 clip and is followed by verse 2.
func (c *Controller) Select(chapter, verse int, preamble, autoAdvance bool) error {
	ch, ok := c.catalog.Chapter(chapter)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownChapter, chapter)
	}
	target := Position{Chapter: chapter, Preamble: true}
	if !preamble {
		if verse < 1 || verse > ch.VerseCount {
			return fmt.Errorf("%w: %d:%d", ErrUnknownVerse, chapter, verse)
		}
		target = Position{Chapter: chapter, Verse: verse}
	}

	if c.chapter != ch {
		c.halt()
		c.chapter = ch
	}
	c.autoAdvance = autoAdvance
	c.playAt(target)
	return nil
}

// NextChapter loads the following chapter and starts it.
func (c *Controller) NextChapter() error {
	if c.chapter == nil || c.chapter.Number >= quran.LastSurah {
		return ErrInvalidTransition
	}
	return c.Open(c.chapter.Number+1, true)
}

func (c *Controller) PreviousChapter() error {
	if c.chapter == nil || c.chapter.Number <= quran.FirstSurah {
		return ErrInvalidTransition
	}
	return c.Open(c.chapter.Number-1, true)
}

// Close releases the player and forgets the chapter.
func (c *Controller) Close() {
	c.halt()
	c.chapter = nil
}

func (c *Controller) Status() Status {
	st := Status{
		State:       c.state,
		AutoAdvance: c.autoAdvance,
		IsPlaying:   c.state.playing(),
		Elapsed:     c.elapsed,
		Duration:    c.duration,
		Notice:      c.notice,
	}
	if c.chapter != nil {
		st.Chapter = c.chapter.Number
	}
	if c.state == StateIdle {
		return st
	}
	st.URI = c.uri
	st.Preamble = c.pos.Preamble
	if !c.pos.Preamble {
		v := c.pos.Verse
		st.Verse = &v
		st.VerseMarker = util.ToArabicNumerals(v)
	}
	return st
}

// Position reports the current clip. ok is false when Idle.
func (c *Controller) Position() (Position, bool) {
	if c.state == StateIdle {
		return Position{}, false
	}
	return c.pos, true
}

func (c *Controller) enterChapter(ch *Chapter) {
	if ch.Number == quran.FirstSurah {
		c.playAt(Position{Chapter: ch.Number, Verse: 1})
		return
	}
	c.playAt(Position{Chapter: ch.Number, Preamble: true})
}

// advance moves to whatever follows the current clip.
func (c *Controller) advance() {
	from := c.pos
	switch {
	case from.Preamble && from.Chapter == quran.FirstSurah:
		c.playAt(Position{Chapter: from.Chapter, Verse: 2})
		return
	case from.Preamble:
		c.playAt(Position{Chapter: from.Chapter, Verse: 1})
		return
	case from.Verse < c.chapter.VerseCount:
		c.playAt(Position{Chapter: from.Chapter, Verse: from.Verse + 1})
		return
	case from.Chapter >= quran.LastSurah:
		c.log.Info("reached end of the last chapter")
		c.halt()
		return
	}

	next, ok := c.catalog.Chapter(from.Chapter + 1)
	if !ok {
		c.halt()
		c.notice = fmt.Sprintf("chapter %d is not available", from.Chapter+1)
		c.log.Warn("next chapter not loaded", "chapter", from.Chapter+1)
		return
	}
	c.chapter = next
	c.enterChapter(next)
}

func (c *Controller) playAt(pos Position) {
	uri := c.resolve(pos)

	c.pos = pos
	c.state = stateFor(pos)
	c.notice = ""
	c.atEnd = false
	c.elapsed = 0

	if uri != c.uri {
		c.duration = 0
		if err := c.player.Load(uri); err != nil {
			c.loadFailed(uri, err)
			return
		}
		c.uri = uri
	} else if err := c.player.Seek(0); err != nil {
		c.log.Warn("player rewind failed", "error", err)
	}

	if err := c.player.Play(); err != nil {
		c.loadFailed(uri, err)
	}
}

func (c *Controller) loadFailed(uri string, err error) {
	c.held = stateFor(c.pos)
	c.state = StatePaused
	c.uri = ""
	c.notice = fmt.Sprintf("could not play %s: %v", label(c.pos), err)
	c.log.Warn("audio load failed", "uri", uri, "chapter", c.pos.Chapter, "verse", c.pos.Verse, "error", err)
}

// halt stops any audio and returns to Idle.
func (c *Controller) halt() {
	if c.state.playing() {
		if err := c.player.Pause(); err != nil {
			c.log.Warn("player pause failed", "error", err)
		}
	}
	c.state = StateIdle
	c.held = ""
	c.pos = Position{}
	c.autoAdvance = false
	c.atEnd = false
	c.elapsed = 0
	c.duration = 0
	c.notice = ""
}

func (c *Controller) resolve(pos Position) string {
	if pos.Preamble {
		var override string
		if first, ok := c.catalog.Chapter(quran.FirstSurah); ok {
			if v := first.Verse(1); v != nil {
				override = v.AudioURL
			}
		}
		return c.resolver.Resolve(quran.FirstSurah, 1, override)
	}

	var override string
	if ch, ok := c.catalog.Chapter(pos.Chapter); ok {
		if v := ch.Verse(pos.Verse); v != nil {
			override = v.AudioURL
		}
	}
	return c.resolver.Resolve(pos.Chapter, pos.Verse, override)
}

func stateFor(pos Position) State {
	if pos.Preamble {
		return StatePlayingPreamble
	}
	return StatePlayingVerse
}

func label(pos Position) string {
	if pos.Preamble {
		return fmt.Sprintf("the preamble of chapter %d", pos.Chapter)
	}
	return fmt.Sprintf("%d:%d", pos.Chapter, pos.Verse)
}
