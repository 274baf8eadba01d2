package para

import "fmt"

// Boundary marks the first ayah of a para.
type Boundary struct {
	ParaNumber  int `json:"para_number"`
	SurahNumber int `json:"surah_number"`
	AyahNumber  int `json:"ayah_number"`
}

const ParaCount = 30

// CanonicalBoundaries is the standard 30-juz division in scripture order.
var CanonicalBoundaries = []Boundary{
	{1, 1, 1},
	{2, 2, 142},
	{3, 2, 253},
	{4, 3, 93},
	{5, 4, 24},
	{6, 4, 148},
	{7, 5, 82},
	{8, 6, 111},
	{9, 7, 88},
	{10, 8, 41},
	{11, 9, 93},
	{12, 11, 6},
	{13, 12, 53},
	{14, 15, 1},
	{15, 17, 1},
	{16, 18, 75},
	{17, 21, 1},
	{18, 23, 1},
	{19, 25, 21},
	{20, 27, 56},
	{21, 29, 46},
	{22, 33, 31},
	{23, 36, 28},
	{24, 39, 32},
	{25, 41, 47},
	{26, 46, 1},
	{27, 51, 31},
	{28, 58, 1},
	{29, 67, 1},
	{30, 78, 1},
}

// before reports whether (surah, ayah) comes strictly before b in scripture order.
func before(surah, ayah int, b Boundary) bool {
	return surah < b.SurahNumber || (surah == b.SurahNumber && ayah < b.AyahNumber)
}

// ValidateBoundaries checks that the table starts at 1:1 with para 1 and is
// strictly increasing in both para number and scripture position.
func ValidateBoundaries(boundaries []Boundary) error {
	if len(boundaries) == 0 {
		return fmt.Errorf("boundary table is empty")
	}
	first := boundaries[0]
	if first.ParaNumber != 1 || first.SurahNumber != 1 || first.AyahNumber != 1 {
		return fmt.Errorf("boundary table must start at para 1, 1:1, got para %d at %d:%d",
			first.ParaNumber, first.SurahNumber, first.AyahNumber)
	}
	for i := 1; i < len(boundaries); i++ {
		prev, cur := boundaries[i-1], boundaries[i]
		if cur.ParaNumber <= prev.ParaNumber {
			return fmt.Errorf("para numbers not increasing at index %d (%d after %d)", i, cur.ParaNumber, prev.ParaNumber)
		}
		if cur.SurahNumber < 1 || cur.AyahNumber < 1 {
			return fmt.Errorf("invalid position %d:%d for para %d", cur.SurahNumber, cur.AyahNumber, cur.ParaNumber)
		}
		if !before(prev.SurahNumber, prev.AyahNumber, cur) {
			return fmt.Errorf("para %d starts at %d:%d which is not after para %d at %d:%d",
				cur.ParaNumber, cur.SurahNumber, cur.AyahNumber, prev.ParaNumber, prev.SurahNumber, prev.AyahNumber)
		}
	}
	return nil
}

// Assign labels verses, which must be sorted by (surah, ayah) ascending, with
// the para each one falls in. Single forward pass over verses and boundaries.
func Assign(verses []Verse, boundaries []Boundary) []int {
	out := make([]int, len(verses))
	if len(boundaries) == 0 {
		return out
	}

	idx := 0
	for i, v := range verses {
		for idx < len(boundaries)-1 && !before(v.SurahNumber, v.AyahNumber, boundaries[idx+1]) {
			idx++
		}
		out[i] = boundaries[idx].ParaNumber
	}
	return out
}

// Locate returns the para containing a single ayah.
func Locate(surah, ayah int, boundaries []Boundary) int {
	para := 0
	for _, b := range boundaries {
		if before(surah, ayah, b) {
			break
		}
		para = b.ParaNumber
	}
	return para
}
