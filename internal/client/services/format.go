package services

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/billed/internal/client/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Supported display locales.
const (
	LocaleFR = "fr"
	LocaleEN = "en"
)

const storeDateLayout = "2006-01-02"

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

func localeTag(locale string) language.Tag {
	if locale == LocaleEN {
		return language.English
	}
	return language.French
}

func monthAbbrev(m time.Month, locale string) string {
	name := frenchMonths[m-1]
	if locale == LocaleEN {
		name = m.String()
	}
	r := []rune(name)
	if len(r) > 3 {
		r = r[:3]
	}
	return cases.Title(localeTag(locale)).String(string(r))
}

// NormalizeDate turns a stored YYYY-MM-DD date into its display form,
// e.g. "2004-04-04" becomes "4 Avr. 04" in French. When raw cannot be parsed
// it is returned as is with ok set to false.
func NormalizeDate(raw, locale string) (string, bool) {
	d, err := time.Parse(storeDateLayout, raw)
	if err != nil {
		return raw, false
	}
	return fmt.Sprintf("%d %s. %02d", d.Day(), monthAbbrev(d.Month(), locale), d.Year()%100), true
}

var frenchStatus = map[models.BillStatus]string{
	models.BillStatusPending:  "En attente",
	models.BillStatusAccepted: "Accepté",
	models.BillStatusRefused:  "Refused",
}

// FormatStatus returns the label shown for status.
func FormatStatus(status models.BillStatus, locale string) string {
	if locale != LocaleEN {
		if l, ok := frenchStatus[status]; ok {
			return l
		}
	}
	return cases.Title(localeTag(locale)).String(string(status))
}
