package surah_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taiwoajasa245/quran-api/internal/ayah"
	"github.com/taiwoajasa245/quran-api/internal/database/dbtest"
	"github.com/taiwoajasa245/quran-api/internal/surah"
)

func TestSurahAndAyahRepos_Postgres(t *testing.T) {
	db := dbtest.New(t)
	kitabID := dbtest.SeedKitab(t, db)
	ctx := context.Background()

	surahs := surah.NewSurahRepo(db)
	ayahs := ayah.NewAyahRepo(db)
	svc := surah.NewSurahService(surahs, ayahs)

	fatiha, err := surahs.Upsert(ctx, surah.CreateSurahRequest{
		KitabID: kitabID, SurahNumber: 1, Name: "Al-Fatihah", NameArabic: "الفاتحة", VersesCount: 7, Revelation: "meccan",
	})
	require.NoError(t, err)
	again, err := surahs.Upsert(ctx, surah.CreateSurahRequest{KitabID: kitabID, SurahNumber: 1, Name: "changed"})
	require.NoError(t, err)
	assert.Equal(t, fatiha.ID, again.ID)
	assert.Equal(t, "Al-Fatihah", again.Name)

	_, err = surahs.Create(ctx, surah.CreateSurahRequest{KitabID: kitabID, SurahNumber: 1, Name: "dup"})
	assert.ErrorIs(t, err, surah.ErrAlreadyExists)
	_, err = surahs.Create(ctx, surah.CreateSurahRequest{KitabID: 9999, SurahNumber: 2, Name: "orphan"})
	assert.ErrorIs(t, err, surah.ErrInvalidRelation)

	// Seeded without a surah relation, then fixed up.
	for n := 1; n <= 7; n++ {
		_, err := ayahs.UpsertSeedAyah(ctx, ayah.SeedAyah{KitabID: kitabID, SurahNumber: 1, AyahNumber: n, TextArabic: "ayah"})
		require.NoError(t, err)
	}
	fixed, err := ayahs.FixSurahRelations(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), fixed)
	fixed, err = ayahs.FixSurahRelations(ctx)
	require.NoError(t, err)
	assert.Zero(t, fixed)

	ids, err := ayahs.AyahIDs(ctx, 1)
	require.NoError(t, err)
	require.Len(t, ids, 7)

	created, err := ayahs.UpsertTranslation(ctx, ayah.Translation{AyahID: ids[1], Language: "gu", Translator: "Rabila Al-Umry", Text: "..."})
	require.NoError(t, err)
	assert.True(t, created)
	created, err = ayahs.UpsertTranslation(ctx, ayah.Translation{AyahID: ids[1], Language: "gu", Translator: "Rabila Al-Umry", Text: "other"})
	require.NoError(t, err)
	assert.False(t, created)

	// A bare translation on update lands on the first existing translation.
	text := "In the name of Allah"
	updated, err := ayahs.Update(ctx, ids[1], ayah.UpdateAyahRequest{Translation: &text})
	require.NoError(t, err)
	require.Len(t, updated.Translations, 1)
	assert.Equal(t, text, updated.Translations[0].Text)

	updated, err = ayahs.Update(ctx, ids[2], ayah.UpdateAyahRequest{Translation: &text})
	require.NoError(t, err)
	require.Len(t, updated.Translations, 1)
	assert.Equal(t, ayah.DefaultTranslator, updated.Translations[0].Translator)

	tafsir, err := ayahs.CreateTafsir(ctx, ayah.CreateTafsirRequest{AyahID: ids[1], Scholar: "Ibn Kathir", Text: "..."})
	require.NoError(t, err)
	_, err = ayahs.CreateTafsir(ctx, ayah.CreateTafsirRequest{AyahID: 999999, Scholar: "x", Text: "y"})
	assert.ErrorIs(t, err, ayah.ErrNotFound)

	detail, err := svc.GetSurah(ctx, fatiha.ID)
	require.NoError(t, err)
	require.Len(t, detail.Ayahs, 7)
	assert.Equal(t, 1, detail.Ayahs[0].AyahNumber)
	assert.Equal(t, "١", detail.Ayahs[0].VerseMarker)
	require.Len(t, detail.Ayahs[0].Tafsirs, 1)
	assert.Equal(t, tafsir.ID, detail.Ayahs[0].Tafsirs[0].ID)
	assert.Empty(t, detail.Ayahs[6].Translations)

	audio := "https://cdn.example.com/001007.mp3"
	created2, err := ayahs.Create(ctx, ayah.CreateAyahRequest{
		KitabID: kitabID, SurahID: &fatiha.ID, SurahNumber: 2, AyahNumber: 1, TextArabic: "الٓمٓ", AudioURL: &audio,
	})
	require.NoError(t, err)
	require.NotNil(t, created2.AudioURL)
	_, err = ayahs.Create(ctx, ayah.CreateAyahRequest{KitabID: kitabID, SurahNumber: 2, AyahNumber: 1, TextArabic: "dup"})
	assert.ErrorIs(t, err, ayah.ErrAlreadyExists)

	n, err := ayahs.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	first, err := ayahs.First(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first.SurahNumber)
	assert.Equal(t, 1, first.AyahNumber)

	all, err := ayahs.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 8)

	require.NoError(t, surahs.Delete(ctx, fatiha.ID))
	_, err = svc.GetSurah(ctx, fatiha.ID)
	assert.ErrorIs(t, err, surah.ErrNotFound)
}
