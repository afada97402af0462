package testutil

import "github.com/zjrosen/ezwrite/internal/document"

// tokenData holds a token to be created.
type tokenData struct {
	text  string
	style string
}

// sentenceData holds the tokens of one sentence.
type sentenceData struct {
	tokens []tokenData
}

// paragraphData holds the sentences of one paragraph.
type paragraphData struct {
	sentences []sentenceData
}

// documentData holds the paragraphs of one document.
type documentData struct {
	paragraphs []paragraphData
}

// SentenceOption configures a sentence added with Sentence.
type SentenceOption func(*sentenceData)

// Style sets the style of every token of the sentence.
func Style(style string) SentenceOption {
	return func(s *sentenceData) {
		for i := range s.tokens {
			s.tokens[i].style = style
		}
	}
}

// Tokens appends tokens to the sentence.
func Tokens(texts ...string) SentenceOption {
	return func(s *sentenceData) {
		for _, text := range texts {
			s.tokens = append(s.tokens, tokenData{text: text})
		}
	}
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// Subjects replaces the default sequential subject allocator.
func Subjects(a document.SubjectAllocator) BuilderOption {
	return func(b *Builder) {
		b.subjects = a
	}
}

// InBook makes the builder wrap its documents in a Book, even if there is
// only one.
func InBook() BuilderOption {
	return func(b *Builder) {
		b.book = true
	}
}
