package catalog

import "BankCatalog/internal/locale"

var categoryLabels = map[string]map[locale.Locale]string{
	"Cuentas":     {locale.ES: "Cuentas", locale.EN: "Accounts"},
	"Tarjetas":    {locale.ES: "Tarjetas", locale.EN: "Cards"},
	"Préstamos":   {locale.ES: "Préstamos", locale.EN: "Loans"},
	"Ahorros":     {locale.ES: "Ahorros", locale.EN: "Savings"},
	"Inversiones": {locale.ES: "Inversiones", locale.EN: "Investments"},
	"Seguros":     {locale.ES: "Seguros", locale.EN: "Insurance"},
}

// Localize returns a copy of p whose Category is the label of
// p.CategoryKey in l. Unknown keys pass through unchanged. The lookup never
// reads Category, so it can be applied any number of times.
func Localize(p Product, l locale.Locale) Product {
	out := p
	out.Category = CategoryLabel(p.CategoryKey, l)
	return out
}

func LocalizeAll(products []Product, l locale.Locale) []Product {
	out := make([]Product, len(products))
	for i, p := range products {
		out[i] = Localize(p, l)
	}
	return out
}

func CategoryLabel(key string, l locale.Locale) string {
	labels, ok := categoryLabels[key]
	if !ok {
		return key
	}
	if label, ok := labels[l]; ok {
		return label
	}
	return key
}
