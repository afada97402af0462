package textseg

import "github.com/rivo/uniseg"

// Sentences splits text into sentences using Unicode sentence boundaries.
// Trailing whitespace stays with the sentence it follows, so joining the
// result reproduces text exactly.
func Sentences(text string) []string {
	var out []string
	state := -1
	for len(text) > 0 {
		var sentence string
		sentence, text, state = uniseg.FirstSentenceInString(text, state)
		out = append(out, sentence)
	}
	return out
}

// Tokens splits a sentence into tokens: words, single punctuation marks,
// whitespace runs and newlines. Joining the result reproduces s exactly.
func Tokens(s string) []string {
	var out []string
	state := -1
	for len(s) > 0 {
		var word string
		word, s, state = uniseg.FirstWordInString(s, state)
		out = appendToken(out, word)
	}
	return out
}

// appendToken adds a word-boundary segment, folding adjacent whitespace
// segments together and splitting runs of punctuation into single marks.
func appendToken(out []string, seg string) []string {
	switch ClassOf(seg) {
	case ClassSpace:
		if n := len(out); n > 0 && ClassOf(out[n-1]) == ClassSpace {
			out[n-1] += seg
			return out
		}
		return append(out, seg)
	case ClassPunct:
		state := -1
		for len(seg) > 0 {
			var cluster string
			cluster, seg, _, state = uniseg.StepString(seg, state)
			out = append(out, cluster)
		}
		return out
	default:
		return append(out, seg)
	}
}
