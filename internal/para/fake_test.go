package para

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/taiwoajasa245/quran-api/internal/quran"
)

// fakeRepo is an in-memory Repository.
type fakeRepo struct {
	mu sync.Mutex

	kitabs     map[string]int
	paras      map[int]*Para
	verses     map[int]*Verse
	failWrites map[int]bool
	lookupErr  map[int]error

	writes  int
	lookups int
	nextID  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		kitabs:     map[string]int{QuranKitab: 1},
		paras:      map[int]*Para{},
		verses:     map[int]*Verse{},
		failWrites: map[int]bool{},
		lookupErr:  map[int]error{},
		nextID:     1,
	}
}

// withFullQuran adds one verse row per ayah of every surah.
func (f *fakeRepo) withFullQuran() *fakeRepo {
	for s := 1; s <= quran.SurahCount; s++ {
		for a := 1; a <= quran.VerseCount(s); a++ {
			f.addVerse(s, a)
		}
	}
	return f
}

func (f *fakeRepo) addVerse(surah, ayah int) *Verse {
	v := &Verse{ID: f.nextID, SurahNumber: surah, AyahNumber: ayah}
	f.verses[v.ID] = v
	f.nextID++
	return v
}

func (f *fakeRepo) withParas(numbers ...int) *fakeRepo {
	for _, n := range numbers {
		f.paras[n] = &Para{ID: 100 + n, KitabID: 1, ParaNumber: n, Name: "Juz"}
	}
	return f
}

func (f *fakeRepo) allParas() *fakeRepo {
	for n := 1; n <= ParaCount; n++ {
		f.withParas(n)
	}
	return f
}

func (f *fakeRepo) sortedVerses() []*Verse {
	out := make([]*Verse, 0, len(f.verses))
	for _, v := range f.verses {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SurahNumber != out[j].SurahNumber {
			return out[i].SurahNumber < out[j].SurahNumber
		}
		return out[i].AyahNumber < out[j].AyahNumber
	})
	return out
}

func (f *fakeRepo) ListVerses(_ context.Context) ([]Verse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []Verse
	for _, v := range f.sortedVerses() {
		cp := *v
		out = append(out, cp)
	}
	return out, nil
}

func (f *fakeRepo) FindParaByNumber(_ context.Context, number int) (*Para, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lookups++
	if err, ok := f.lookupErr[number]; ok {
		return nil, err
	}
	p, ok := f.paras[number]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	for _, v := range f.verses {
		if v.ParaNumber != nil && *v.ParaNumber == number {
			cp.AyahCount++
		}
	}
	return &cp, nil
}

func (f *fakeRepo) UpdateVerseParaAssignment(_ context.Context, verseID, paraNumber, paraID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWrites[verseID] {
		return errors.New("connection reset")
	}
	v, ok := f.verses[verseID]
	if !ok {
		return ErrNotFound
	}
	n, id := paraNumber, paraID
	v.ParaNumber = &n
	v.ParaID = &id
	f.writes++
	return nil
}

func (f *fakeRepo) KitabIDByName(_ context.Context, name string) (int, error) {
	id, ok := f.kitabs[name]
	if !ok {
		return 0, ErrNotFound
	}
	return id, nil
}

func (f *fakeRepo) UpsertPara(_ context.Context, kitabID, number int, name string) (*Para, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if p, ok := f.paras[number]; ok {
		cp := *p
		return &cp, nil
	}
	p := &Para{ID: 100 + number, KitabID: kitabID, ParaNumber: number, Name: name}
	f.paras[number] = p
	cp := *p
	return &cp, nil
}

func (f *fakeRepo) ListParas(_ context.Context) ([]Para, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []Para
	for n := 1; n <= ParaCount; n++ {
		if p, ok := f.paras[n]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetAyahsByPara(_ context.Context, number int) ([]ParaAyah, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []ParaAyah
	for _, v := range f.sortedVerses() {
		if v.ParaNumber != nil && *v.ParaNumber == number {
			out = append(out, ParaAyah{ID: v.ID, SurahNumber: v.SurahNumber, AyahNumber: v.AyahNumber})
		}
	}
	return out, nil
}

func (f *fakeRepo) paraOf(surah, ayah int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.verses {
		if v.SurahNumber == surah && v.AyahNumber == ayah {
			if v.ParaNumber == nil {
				return 0
			}
			return *v.ParaNumber
		}
	}
	return -1
}
