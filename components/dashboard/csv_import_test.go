package dashboard

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, content string) *CSVDocument {
	t.Helper()
	doc, err := ParseCSV(strings.NewReader(content))
	require.NoError(t, err)
	return doc
}

func TestParseCSVSkipsBlankRowsAndPads(t *testing.T) {
	doc := parse(t, "\xEF\xBB\xBFkey,en,es\nhello,Hello\n,,\n\nbye,Bye,Adiós,extra\n")

	assert.Equal(t, []string{"key", "en", "es"}, doc.Headers)
	require.Len(t, doc.Rows, 2)
	assert.Equal(t, []string{"hello", "Hello", ""}, doc.Rows[0])
	assert.Equal(t, []string{"bye", "Bye", "Adiós"}, doc.Rows[1])
}

func TestParseCSVEmpty(t *testing.T) {
	for _, content := range []string{"", ",,\n"} {
		_, err := ParseCSV(strings.NewReader(content))
		if !errors.Is(err, ErrCSVEmpty) {
			t.Fatalf("expected ErrCSVEmpty for %q, got %v", content, err)
		}
	}
}

func TestParseCSVSurfacesMalformedQuotes(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("key,en\n\"broken,value\n"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrCSVEmpty))
}

func TestValidColumnsResolveCaseInsensitive(t *testing.T) {
	valid := ValidColumnsFor([]Language{
		{Locale: "en", ProjectID: "p1"},
		{Locale: "pt-BR", ProjectID: "p1"},
		{Locale: "fr", ProjectID: "p2"},
		{Locale: "de"},
	}, "p1")

	name, ok := valid.Resolve(" PT-br ")
	assert.True(t, ok)
	assert.Equal(t, "pt-BR", name)

	name, ok = valid.Resolve("KEY")
	assert.True(t, ok)
	assert.Equal(t, KeyColumn, name)

	_, ok = valid.Resolve("fr")
	assert.False(t, ok, "languages of other projects are rejected")

	assert.Equal(t, []string{"key", "de", "en", "pt-BR"}, valid.Names())
}

func TestImportSessionColumnsDropDuplicatesAndUnknown(t *testing.T) {
	session := NewImportSession(parse(t, "Key,EN,en,klingon\nhello,Hello,Hi,nuqneH\n"))
	valid := ValidColumnsFor([]Language{{Locale: "en"}}, "")

	columns := session.Columns(valid)

	require.Len(t, columns, 4)
	assert.True(t, columns[0].Kept)
	assert.True(t, columns[1].Kept)
	assert.Equal(t, "en", columns[1].Column)
	assert.Equal(t, "duplicate", columns[2].Reason)
	assert.Equal(t, "unrecognized", columns[3].Reason)

	body, err := session.Build(valid)
	require.NoError(t, err)
	assert.Equal(t, "key,en\nhello,Hello\n", string(body))
}

func TestImportSessionMappingKeepsColumnOrder(t *testing.T) {
	session := NewImportSession(parse(t, "Name,English,Spanish\nhello,Hello,Hola\n"))

	renamed := session.ApplyMapping(map[string]string{"name": "key", "SPANISH": "es", "english": "en"})

	assert.Equal(t, 3, renamed)
	assert.Equal(t, []string{"key", "en", "es"}, session.Headers())
	assert.Equal(t, []string{"Name", "English", "Spanish"}, session.OriginalHeaders())

	require.Error(t, session.Rename(5, "fr"))
	require.Error(t, session.RenameAll([]string{"one"}))
	require.NoError(t, session.Rename(2, "fr"))
	assert.Equal(t, "fr", session.Headers()[2])
}

func TestImportSessionBuildWithoutColumns(t *testing.T) {
	session := NewImportSession(parse(t, "foo,bar\n1,2\n"))

	_, err := session.Build(ValidColumnsFor([]Language{{Locale: "en"}}, ""))

	require.ErrorIs(t, err, ErrNoColumns)
	assert.Contains(t, err.Error(), "key, en")
}

func TestImportSessionPreviewLimit(t *testing.T) {
	var b strings.Builder
	b.WriteString("key,en\n")
	for range 60 {
		b.WriteString("k,v\n")
	}
	session := NewImportSession(parse(t, b.String()))

	preview := session.Preview(0)
	assert.Len(t, preview.Rows, DefaultPreviewRows)
	assert.Equal(t, 60, preview.Total)
	assert.Len(t, session.Preview(3).Rows, 3)
}

func TestSuggestMapping(t *testing.T) {
	session := NewImportSession(parse(t, "Key Name,Spanish,Deutsch,en,Unknown\nk,a,b,c,d\n"))
	languages := []Language{
		{Locale: "en", Name: "English"},
		{Locale: "es", Name: "Spanish"},
		{Locale: "de", Name: "German"},
	}

	got := session.SuggestMapping(languages)

	assert.Equal(t, map[int]string{0: "key", 1: "es", 2: "de"}, got)
}

func TestRecordsRightMostDuplicateWins(t *testing.T) {
	doc := parse(t, "key,en,en\nhello,first,second\n")
	records := doc.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "second", records[0]["en"])
}
