package dashboard

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brl = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders a value as Brazilian reais, e.g. 1234.5 → "R$ 1.234,50".
func FormatBRL(v float64) string {
	return brl.Sprintf("R$ %.2f", v)
}
