package port

// Tokenizer splits text into word tokens and stray punctuation tokens.
type Tokenizer interface {
	Tokenize(text string) (words []string, punctuation []string)
}
