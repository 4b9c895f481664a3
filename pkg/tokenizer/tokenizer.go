// Package tokenizer estimates token counts for prompt sizing. The counts
// are an approximation (no exact BPE vocabulary ships with the binary);
// they track real tokenizer output closely enough for budget decisions.
package tokenizer

import (
	"strings"
	"unicode"
)

// Encoding identifies a tokenizer family used for counting and model info.
type Encoding string

const (
	EncodingCl100k   Encoding = "cl100k"
	EncodingO200k    Encoding = "o200k"
	EncodingP50k     Encoding = "p50k"
	EncodingP50kEdit Encoding = "p50k_edit"
	EncodingR50k     Encoding = "r50k"
)

var descriptions = map[Encoding]string{
	EncodingCl100k:   "ChatGPT models, text-embedding-ada-002",
	EncodingO200k:    "GPT-4o models, o1 models",
	EncodingP50k:     "Code models, text-davinci-002, text-davinci-003",
	EncodingP50kEdit: "Edit models like text-davinci-edit-001, code-davinci-edit-001",
	EncodingR50k:     "GPT-3 models like davinci",
}

// Description returns the model family the encoding is used by.
func (e Encoding) Description() string {
	if d, ok := descriptions[e]; ok {
		return d
	}
	return descriptions[EncodingCl100k]
}

// ParseEncoding maps a user-supplied name to an Encoding, defaulting to
// cl100k for unknown names.
func ParseEncoding(name string) Encoding {
	switch Encoding(strings.ToLower(name)) {
	case EncodingO200k:
		return EncodingO200k
	case EncodingP50k:
		return EncodingP50k
	case EncodingP50kEdit:
		return EncodingP50kEdit
	case EncodingR50k, "gpt2":
		return EncodingR50k
	default:
		return EncodingCl100k
	}
}

// CountTokens estimates the number of tokens in text. Words contribute
// roughly one token per four characters (minimum one), and every
// punctuation or symbol rune counts on its own, which mirrors how BPE
// vocabularies split source code.
func CountTokens(text string, _ Encoding) int {
	if text == "" {
		return 0
	}

	count := 0
	wordLen := 0

	flush := func() {
		if wordLen > 0 {
			count += (wordLen + 3) / 4
			wordLen = 0
		}
	}

	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			wordLen++
		case unicode.IsSpace(r):
			flush()
		default:
			flush()
			count++
		}
	}
	flush()

	return count
}
