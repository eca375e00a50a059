package textproc

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	urlPattern        = regexp.MustCompile(`https?://\S+|www\.\S+`)
	invalidPattern    = regexp.MustCompile(`[^a-zA-Z#]`)
	shortWordPattern  = regexp.MustCompile(`\b\w{1,2}\b`)
	whitespacePattern = regexp.MustCompile(`\s+`)

	// NFKD fold followed by combining-mark removal, so accented words
	// degrade to their base letters before the ASCII filter.
	deaccent = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Cleaner is the deterministic text normalization pipeline. It is pure
// and idempotent: cleaning an already clean string is a no-op.
type Cleaner struct{}

// NewCleaner creates a new Cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Clean runs the base normalization pipeline. The stage order is fixed:
// lowercase, strip links, replace emoticons, strip invalid characters,
// collapse repeated characters, drop short words, strip digit runs and
// collapse whitespace.
func (c *Cleaner) Clean(text string) string {
	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, "")
	text = replaceEmoticons(text)
	text = foldToASCII(text)
	text = invalidPattern.ReplaceAllString(text, " ")
	text = collapseRepeats(text)
	text = shortWordPattern.ReplaceAllString(text, " ")
	text = stripAdjacentDigits(text)
	text = whitespacePattern.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// CleanStrict runs the base pipeline plus contraction stripping and
// English stopword removal. Contractions are stripped first, while the
// apostrophes still exist; stopwords are removed from the cleaned output.
func (c *Cleaner) CleanStrict(text string) string {
	text = contractionPattern.ReplaceAllString(text, "")
	text = c.Clean(text)
	return removeStopwords(text)
}

var contractionPattern = regexp.MustCompile(`'\w+|\w+'\w+|\w+'`)

func replaceEmoticons(text string) string {
	for _, e := range emoticonTable {
		text = strings.ReplaceAll(text, e.pattern, " "+e.gloss)
	}
	return text
}

func foldToASCII(text string) string {
	folded, _, err := transform.String(deaccent, text)
	if err != nil {
		return text
	}
	return folded
}

// collapseRepeats reduces any run of 3 or more identical characters to a
// single one. Runs of exactly 2 are kept.
func collapseRepeats(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	runes := []rune(text)
	for i := 0; i < len(runes); {
		j := i
		for j < len(runes) && runes[j] == runes[i] {
			j++
		}
		if j-i >= 3 {
			b.WriteRune(runes[i])
		} else {
			for k := i; k < j; k++ {
				b.WriteRune(runes[k])
			}
		}
		i = j
	}

	return b.String()
}

// stripAdjacentDigits removes digit runs that touch a word character on
// either side. Standalone numbers are left to the invalid-character stage.
func stripAdjacentDigits(text string) string {
	isWord := func(r rune) bool {
		return r == '_' || unicode.IsLetter(r)
	}

	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(runes); {
		if !unicode.IsDigit(runes[i]) {
			b.WriteRune(runes[i])
			i++
			continue
		}

		j := i
		for j < len(runes) && unicode.IsDigit(runes[j]) {
			j++
		}

		adjacent := (i > 0 && isWord(runes[i-1])) || (j < len(runes) && isWord(runes[j]))
		if !adjacent {
			for k := i; k < j; k++ {
				b.WriteRune(runes[k])
			}
		}
		i = j
	}

	return b.String()
}

func removeStopwords(text string) string {
	words := strings.Fields(text)
	kept := words[:0]
	for _, w := range words {
		if _, ok := stopwords[strings.ToLower(w)]; !ok {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}
