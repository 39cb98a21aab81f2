package stats

import (
	"sort"
	"strings"
	"unicode"

	"commitscope/models"
)

// stopwords are dropped from the word-cloud input. Covers common English
// filler plus git boilerplate that would otherwise dominate every cloud.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "but": {}, "by": {}, "for": {}, "from": {}, "has": {},
	"have": {}, "in": {}, "into": {}, "is": {}, "it": {}, "its": {},
	"of": {}, "on": {}, "or": {}, "that": {}, "the": {}, "this": {},
	"to": {}, "via": {}, "was": {}, "were": {}, "with": {},
	"merge": {}, "branch": {}, "pull": {}, "request": {}, "master": {}, "main": {},
}

// WordFrequencies tokenizes the messages of the given commits and returns
// up to limit terms ordered by descending frequency, then ascending term.
// Tokens are lowercased, split on anything that is not a letter or digit,
// and single-rune tokens and stopwords are dropped. A limit <= 0 means
// no cap.
func WordFrequencies(commits []models.Commit, limit int) []models.WordCount {
	counts := make(map[string]int)
	for _, c := range commits {
		tokens := strings.FieldsFunc(strings.ToLower(c.Message), func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		for _, tok := range tokens {
			if len([]rune(tok)) < 2 {
				continue
			}
			if _, skip := stopwords[tok]; skip {
				continue
			}
			counts[tok]++
		}
	}

	words := make([]models.WordCount, 0, len(counts))
	for word, count := range counts {
		words = append(words, models.WordCount{Word: word, Count: count})
	}
	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return words[i].Word < words[j].Word
	})

	if limit > 0 && len(words) > limit {
		words = words[:limit]
	}
	return words
}
