package util

import "golang.org/x/text/language"

// NormalizeLangCode parses an ISO-ish language code and returns its canonical
// base form ("EN-us" -> "en"). Returns ok=false for unparseable codes.
func NormalizeLangCode(code string) (string, bool) {
	tag, err := language.Parse(code)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	return base.String(), true
}
