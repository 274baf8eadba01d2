package para

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taiwoajasa245/quran-api/internal/quran"
)

func TestCanonicalBoundariesAreValid(t *testing.T) {
	require.NoError(t, ValidateBoundaries(CanonicalBoundaries))
	require.Len(t, CanonicalBoundaries, ParaCount)

	for _, b := range CanonicalBoundaries {
		assert.True(t, quran.ValidAyah(b.SurahNumber, b.AyahNumber),
			"para %d starts at non-existent ayah %d:%d", b.ParaNumber, b.SurahNumber, b.AyahNumber)
	}
}

func TestValidateBoundaries_Rejects(t *testing.T) {
	tests := []struct {
		name       string
		boundaries []Boundary
	}{
		{"empty", nil},
		{"does not start at 1:1", []Boundary{{1, 1, 2}}},
		{"first para is not 1", []Boundary{{2, 1, 1}}},
		{"para numbers repeat", []Boundary{{1, 1, 1}, {1, 2, 1}}},
		{"position goes backwards", []Boundary{{1, 1, 1}, {2, 2, 142}, {3, 2, 100}}},
		{"same position twice", []Boundary{{1, 1, 1}, {2, 2, 142}, {3, 2, 142}}},
		{"zero ayah", []Boundary{{1, 1, 1}, {2, 2, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ValidateBoundaries(tt.boundaries))
		})
	}
}

func TestAssign_BoundaryExactness(t *testing.T) {
	verses := []Verse{
		{SurahNumber: 1, AyahNumber: 1},
		{SurahNumber: 2, AyahNumber: 141},
		{SurahNumber: 2, AyahNumber: 142},
		{SurahNumber: 2, AyahNumber: 252},
		{SurahNumber: 2, AyahNumber: 253},
		{SurahNumber: 77, AyahNumber: 50},
		{SurahNumber: 78, AyahNumber: 1},
		{SurahNumber: 114, AyahNumber: 6},
	}

	got := Assign(verses, CanonicalBoundaries)
	assert.Equal(t, []int{1, 1, 2, 2, 3, 29, 30, 30}, got)
}

func TestAssign_SkipsSeveralBoundariesAtOnce(t *testing.T) {
	// A sparse verse set jumps over several boundaries between consecutive verses.
	verses := []Verse{
		{SurahNumber: 1, AyahNumber: 1},
		{SurahNumber: 18, AyahNumber: 75},
		{SurahNumber: 100, AyahNumber: 1},
	}
	assert.Equal(t, []int{1, 16, 30}, Assign(verses, CanonicalBoundaries))
}

func TestAssign_FullQuran(t *testing.T) {
	var verses []Verse
	for s := 1; s <= quran.SurahCount; s++ {
		for a := 1; a <= quran.VerseCount(s); a++ {
			verses = append(verses, Verse{SurahNumber: s, AyahNumber: a})
		}
	}

	got := Assign(verses, CanonicalBoundaries)
	require.Len(t, got, quran.AyahCount)

	firstOf := map[int]Verse{}
	prev := 0
	for i, p := range got {
		require.GreaterOrEqual(t, p, 1)
		require.LessOrEqual(t, p, ParaCount)
		require.GreaterOrEqual(t, p, prev, "para decreased at %d:%d", verses[i].SurahNumber, verses[i].AyahNumber)
		if _, seen := firstOf[p]; !seen {
			firstOf[p] = verses[i]
		}
		prev = p
	}

	require.Len(t, firstOf, ParaCount)
	for _, b := range CanonicalBoundaries {
		v := firstOf[b.ParaNumber]
		assert.Equal(t, b.SurahNumber, v.SurahNumber, "para %d", b.ParaNumber)
		assert.Equal(t, b.AyahNumber, v.AyahNumber, "para %d", b.ParaNumber)
	}
}

func TestAssign_EmptyInputs(t *testing.T) {
	assert.Empty(t, Assign(nil, CanonicalBoundaries))
	assert.Equal(t, []int{0}, Assign([]Verse{{SurahNumber: 1, AyahNumber: 1}}, nil))
}

func TestLocate(t *testing.T) {
	assert.Equal(t, 1, Locate(2, 141, CanonicalBoundaries))
	assert.Equal(t, 2, Locate(2, 142, CanonicalBoundaries))
	assert.Equal(t, 30, Locate(78, 1, CanonicalBoundaries))
	assert.Equal(t, 29, Locate(77, 50, CanonicalBoundaries))
}
