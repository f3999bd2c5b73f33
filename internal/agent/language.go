package agent

import (
	"strings"
	"unicode"
)

// Language is the detected register of a scammer message.
type Language string

const (
	LanguageEnglish  Language = "english"
	LanguageHinglish Language = "hinglish"
	LanguageHindi    Language = "hindi"
)

// hinglishMarkers are common romanized Hindi words that mark code-mixed text.
var hinglishMarkers = map[string]bool{
	"bhai": true, "yaar": true, "kya": true, "hai": true, "haan": true,
	"nahi": true, "theek": true, "accha": true, "arre": true, "beta": true,
	"ji": true, "aapka": true, "mera": true, "karo": true, "bolo": true,
	"suno": true, "abhi": true, "phir": true, "kab": true, "kahan": true,
	"kyun": true, "kaise": true, "aap": true, "aapne": true, "mujhe": true,
	"mere": true, "tumhara": true, "humara": true, "wala": true, "wali": true,
	"kar": true, "ho": true, "main": true, "se": true, "raha": true,
	"hoon": true, "jayega": true,
}

// DetectLanguage classifies text as english, hinglish, or hindi using the
// Devanagari character ratio plus a romanized-marker lexicon.
func DetectLanguage(text string) Language {
	var devanagari, latin int
	for _, r := range text {
		switch {
		case r >= 0x0900 && r <= 0x097F:
			devanagari++
		case unicode.IsLetter(r) && r < 128:
			latin++
		}
	}

	total := devanagari + latin
	if total == 0 {
		return LanguageEnglish
	}
	ratio := float64(devanagari) / float64(total)
	if ratio > 0.8 {
		return LanguageHindi
	}

	markerHits := 0
	for _, word := range tokenizeLatin(text) {
		if hinglishMarkers[word] {
			markerHits++
		}
	}
	if markerHits > 0 || (ratio > 0.1 && ratio <= 0.8) {
		return LanguageHinglish
	}
	return LanguageEnglish
}

// tokenizeLatin splits lowercased text into alphanumeric word runs.
func tokenizeLatin(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
