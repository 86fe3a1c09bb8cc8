package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dmitrijs2005/billed/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func display(id, raw string, amount float64) models.DisplayBill {
	return models.DisplayBill{Bill: models.Bill{ID: id, Date: raw, Amount: amount}, RawDate: raw}
}

func ids(bills []models.DisplayBill) []string {
	out := make([]string, 0, len(bills))
	for _, b := range bills {
		out = append(out, b.ID)
	}
	return out
}

func TestSortByDateDesc(t *testing.T) {
	in := []models.DisplayBill{
		display("a", "2004-04-04", 1),
		display("b", "2001-01-01", 1),
		display("c", "bogus", 1),
		display("d", "2003-03-03", 1),
		display("e", "", 1),
		display("f", "2002-02-02", 1),
	}

	got := SortByDateDesc(in)
	assert.Equal(t, []string{"a", "d", "f", "b", "c", "e"}, ids(got))
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, ids(in), "input must not be reordered")
}

func TestSortByDateDesc_Empty(t *testing.T) {
	assert.Empty(t, SortByDateDesc(nil))
}

func TestTotal(t *testing.T) {
	bills := []models.DisplayBill{display("a", "", 0.1), display("b", "", 0.2), display("c", "", 348)}
	assert.Equal(t, "348.30 €", FormatAmount(Total(bills)))
}

func TestWriteTable(t *testing.T) {
	name := "receipt.jpg"
	b := display("a", "2004-04-04", 400)
	b.Date = "4 Avr. 04"
	b.Name = "encore"
	b.Type = "Hôtel et logement"
	b.StatusLabel = "En attente"
	b.FileName = &name

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, []models.DisplayBill{b, display("b", "2001-01-01", 100)}, "fr"))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Montant")
	assert.Contains(t, lines[1], "4 Avr. 04")
	assert.Contains(t, lines[1], "400.00 €")
	assert.Contains(t, lines[1], "receipt.jpg")
	assert.True(t, strings.HasPrefix(lines[2], "2 "))
	assert.Contains(t, lines[3], "500.00 €")
}

func TestWriteTable_EnglishHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, nil, "en"))
	assert.Contains(t, buf.String(), "Amount")
}
