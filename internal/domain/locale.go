package domain

// Language codes supported by the catalog. English is the canonical
// fallback for every user-facing field.
const (
	LocaleEN = "en"
	LocaleCS = "cs"
	LocaleIT = "it"
)

// localeOrder fixes the scan order used when both the requested locale
// and the fallback are missing.
var localeOrder = [...]string{LocaleEN, LocaleCS, LocaleIT}

// LocaleText maps a language code to a translated string.
type LocaleText map[string]string

// Resolve returns the value for locale, falling back to fallback, then to
// the first non-empty value in canonical order, then to "". It never fails.
func (t LocaleText) Resolve(locale, fallback string) string {
	if len(t) == 0 {
		return ""
	}
	if v := t[locale]; v != "" {
		return v
	}
	if v := t[fallback]; v != "" {
		return v
	}
	for _, code := range localeOrder {
		if v := t[code]; v != "" {
			return v
		}
	}
	for _, v := range t {
		if v != "" {
			return v
		}
	}
	return ""
}

// Set writes a single locale entry, leaving every other entry untouched.
// A nil map is allocated so translated fields can be merged into zero values.
func (t LocaleText) Set(locale, value string) LocaleText {
	if t == nil {
		t = make(LocaleText, 1)
	}
	t[locale] = value
	return t
}

func (t LocaleText) IsEmpty() bool {
	for _, v := range t {
		if v != "" {
			return false
		}
	}
	return true
}

func (t LocaleText) Clone() LocaleText {
	if t == nil {
		return nil
	}
	out := make(LocaleText, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
