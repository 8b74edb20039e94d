package lex

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ornolfur/greina"
)

// A small but realistic slice of the inflection tables: two nouns, one
// adjective and one verb.
func testEntries() []Entry {
	return []Entry{
		// hestur (horse), masculine noun
		{Form: "hestur", Lemma: "hestur", ID: 1, Cat: "kk", Fl: "alm", Inflection: "NFET"},
		{Form: "hest", Lemma: "hestur", ID: 1, Cat: "kk", Fl: "alm", Inflection: "ÞFET"},
		{Form: "hesti", Lemma: "hestur", ID: 1, Cat: "kk", Fl: "alm", Inflection: "ÞGFET"},
		{Form: "hests", Lemma: "hestur", ID: 1, Cat: "kk", Fl: "alm", Inflection: "EFET"},
		{Form: "hestar", Lemma: "hestur", ID: 1, Cat: "kk", Fl: "alm", Inflection: "NFFT"},
		{Form: "hesta", Lemma: "hestur", ID: 1, Cat: "kk", Fl: "alm", Inflection: "ÞFFT"},
		{Form: "hestum", Lemma: "hestur", ID: 1, Cat: "kk", Fl: "alm", Inflection: "ÞGFFT"},
		// sól (sun), feminine noun
		{Form: "sól", Lemma: "sól", ID: 2, Cat: "kvk", Fl: "alm", Inflection: "NFET"},
		{Form: "sól", Lemma: "sól", ID: 2, Cat: "kvk", Fl: "alm", Inflection: "ÞFET"},
		{Form: "sólu", Lemma: "sól", ID: 2, Cat: "kvk", Fl: "alm", Inflection: "ÞGFET"},
		{Form: "sólar", Lemma: "sól", ID: 2, Cat: "kvk", Fl: "alm", Inflection: "EFET"},
		// gulur (yellow), adjective
		{Form: "gulur", Lemma: "gulur", ID: 3, Cat: "lo", Fl: "alm", Inflection: "FSB-KK-NFET"},
		{Form: "gula", Lemma: "gulur", ID: 3, Cat: "lo", Fl: "alm", Inflection: "FVB-KVK-NFET"},
		// sjá (to see), verb
		{Form: "sjá", Lemma: "sjá", ID: 4, Cat: "so", Fl: "alm", Inflection: "GM-NH"},
		{Form: "sá", Lemma: "sjá", ID: 4, Cat: "so", Fl: "alm", Inflection: "GM-FH-ÞT-3P-ET"},
	}
}

func testLexicon(t *testing.T) *Lexicon {
	t.Helper()
	img, err := Pack(testEntries())
	require.NoError(t, err)
	l, err := OpenBuffer(img)
	require.NoError(t, err)
	return l
}

func TestLookup(t *testing.T) {
	l := testLexicon(t)
	m := l.Lookup("hestur")
	require.Len(t, m, 1)
	require.Equal(t, "hestur", m[0].Lemma)
	require.Equal(t, "kk", m[0].Cat)
	require.Equal(t, "NFET", m[0].Inflection)

	m = l.Lookup("sól")
	require.Len(t, m, 2, "sól is both NF and ÞF")
	require.Equal(t, "sól", m[0].Lemma)

	m = l.Lookup("sá")
	require.Len(t, m, 1)
	require.Equal(t, "sjá", m[0].Lemma)
	require.Equal(t, "so", m[0].Cat)
}

func TestLookupUnknown(t *testing.T) {
	l := testLexicon(t)
	require.Empty(t, l.Lookup("hvergiland"))
	require.Empty(t, l.Lookup(""))
	require.Empty(t, l.Lookup("hest "), "trailing space is outside the alphabet")
	require.False(t, l.Contains("hestu"), "interim node must not report a value")
	require.True(t, l.Contains("hestum"))
}

func TestLookupIsPure(t *testing.T) {
	l := testLexicon(t)
	first := l.Lookup("hesta")
	for i := 0; i < 10; i++ {
		require.Equal(t, first, l.Lookup("hesta"))
	}
}

func TestLookupCat(t *testing.T) {
	l := testLexicon(t)
	require.Len(t, l.LookupCat("hestur", "no"), 1)
	require.Empty(t, l.LookupCat("hestur", "so"))
	require.Len(t, l.LookupCat("gula", "lo"), 1)
}

func TestCaseVariants(t *testing.T) {
	l := testLexicon(t)
	acc := l.Accusative("hestur", CaseOptions{Cat: "no"})
	require.Len(t, acc, 1)
	require.Equal(t, "hest", acc[0].Form)

	dat := l.Dative("hestar", CaseOptions{Cat: "no"})
	require.Len(t, dat, 1)
	require.Equal(t, "hestum", dat[0].Form, "plurality must survive re-casing")

	sg := l.Dative("hestar", CaseOptions{Cat: "no", Singular: true})
	require.Len(t, sg, 1)
	require.Equal(t, "hesti", sg[0].Form)
}

func TestFuzzLookup(t *testing.T) {
	l := testLexicon(t)
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10000; i++ {
		n := rng.Intn(24)
		b := make([]rune, n)
		for j := range b {
			b[j] = rune(rng.Intn(0x300)) // includes runes far outside the alphabet
		}
		_ = l.Lookup(string(b)) // must not panic nor read out of bounds
	}
}

func TestCorruptImage(t *testing.T) {
	_, err := OpenBuffer([]byte("way too short"))
	require.ErrorIs(t, err, greina.ErrCorruptLexicon)

	img, err := Pack(testEntries())
	require.NoError(t, err)
	img[0] ^= 0xFF // clobber the signature
	_, err = OpenBuffer(img)
	require.ErrorIs(t, err, greina.ErrCorruptLexicon)
}

func TestClose(t *testing.T) {
	l := testLexicon(t)
	require.NotEmpty(t, l.Lookup("hestur"))
	require.NoError(t, l.Close())
	require.NoError(t, l.Close(), "Close is idempotent")
	require.Empty(t, l.Lookup("hestur"))
}
