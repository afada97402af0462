package testutil

import "testing"

// ItIs builds a single paragraph holding the sentence "It is.\n".
func ItIs(t testing.TB) *Fixture {
	t.Helper()
	return NewBuilder(t).
		Sentence(Tokens("It", " ", "is", ".", "\n")).
		Build()
}

// CatDog builds one sentence where a single-character token sits between
// "cat" and "dog".
func CatDog(t testing.TB) *Fixture {
	t.Helper()
	return NewBuilder(t).
		Sentence(Tokens("cat", "-", "dog", "\n")).
		Build()
}

// TwoParagraphs builds two adjacent paragraphs of one sentence each.
//
//	paragraph
//	  sentence: "First" " " "one" "." "\n"
//	paragraph
//	  sentence: "Second" " " "one" "." "\n"
func TwoParagraphs(t testing.TB) *Fixture {
	t.Helper()
	return NewBuilder(t).
		Sentence(Tokens("First", " ", "one", ".", "\n")).
		Paragraph().
		Sentence(Tokens("Second", " ", "one", ".", "\n")).
		Build()
}

// TwoSentences builds one paragraph holding two sentences.
func TwoSentences(t testing.TB) *Fixture {
	t.Helper()
	return NewBuilder(t).
		Sentence(Tokens("Hello", " ", "there", ".", " ")).
		Sentence(Tokens("World", " ", "peace", ".", "\n")).
		Build()
}

// TwoChapters builds a Book of two documents of one paragraph each.
func TwoChapters(t testing.TB) *Fixture {
	t.Helper()
	return NewBuilder(t).
		Document().
		Sentence(Tokens("Alpha", ".", "\n")).
		Document().
		Sentence(Tokens("Beta", ".", "\n")).
		Build()
}
