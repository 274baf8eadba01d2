package playback

import "sort"

// MemoryCatalog is a Catalog over chapters held in memory.
type MemoryCatalog struct {
	chapters map[int]*Chapter
}

func NewMemoryCatalog(chapters []Chapter) *MemoryCatalog {
	m := &MemoryCatalog{chapters: make(map[int]*Chapter, len(chapters))}
	for i := range chapters {
		ch := chapters[i]
		sort.Slice(ch.Verses, func(a, b int) bool { return ch.Verses[a].Number < ch.Verses[b].Number })
		if ch.VerseCount == 0 {
			ch.VerseCount = len(ch.Verses)
		}
		m.chapters[ch.Number] = &ch
	}
	return m
}

func (m *MemoryCatalog) Chapter(number int) (*Chapter, bool) {
	ch, ok := m.chapters[number]
	return ch, ok
}

func (m *MemoryCatalog) Len() int {
	return len(m.chapters)
}
