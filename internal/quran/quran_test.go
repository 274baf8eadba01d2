package quran

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerseCounts(t *testing.T) {
	total := 0
	for s := 1; s <= SurahCount; s++ {
		total += VerseCount(s)
	}
	assert.Equal(t, AyahCount, total)

	assert.Equal(t, 7, VerseCount(1))
	assert.Equal(t, 286, VerseCount(2))
	assert.Equal(t, 6, VerseCount(114))
	assert.Zero(t, VerseCount(0))
	assert.Zero(t, VerseCount(115))
}

func TestValidAyah(t *testing.T) {
	assert.True(t, ValidAyah(2, 286))
	assert.False(t, ValidAyah(2, 287))
	assert.False(t, ValidAyah(1, 0))
	assert.False(t, ValidAyah(115, 1))
}
