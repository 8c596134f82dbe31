// Package message implements commit message cleanup and tokenisation into
// terms, bigrams and trigrams, global and per-author, per spec.md §4.7.
package message

import (
	"regexp"
	"strings"
)

var svnIDLine = regexp.MustCompile(`^\s*git-svn-id`)

// IgnorePatterns is the compile-time, embedded list of regexes stripped
// (substituted with the empty string, in order) from every message line
// before tokenisation. Beyond the git-svn-id prefix strip, it carries the
// handful of commit-trailer conventions common to the era of history the
// original implementation was built against.
var IgnorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^Signed-off-by:.*$`),
	regexp.MustCompile(`(?i)^Change-Id:.*$`),
}

var tokenPattern = regexp.MustCompile(`[A-Za-z0-9_]+|[^A-Za-z0-9_\s]+`)

// Clean strips every line whose left-trimmed prefix is git-svn-id and joins
// what remains with newline separators.
func Clean(raw string) string {
	lines := strings.Split(raw, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if svnIDLine.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// Tokens splits a single already-cleaned line into word-or-punctuation
// tokens after applying every IgnorePatterns substitution in order,
// discarding tokens of length <= 1.
func Tokens(line string) []string {
	for _, pattern := range IgnorePatterns {
		line = pattern.ReplaceAllString(line, "")
	}
	raw := tokenPattern.FindAllString(line, -1)
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if len(t) > 1 {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// Bigram is an adjacent pair of tokens, positional and line-scoped.
type Bigram [2]string

// Trigram is an adjacent triple of tokens, positional and line-scoped.
type Trigram [3]string

// Stats holds term/bigram/trigram frequency counts.
type Stats struct {
	Term    map[string]int
	Bigram  map[Bigram]int
	Trigram map[Trigram]int
}

func newStats() *Stats {
	return &Stats{Term: map[string]int{}, Bigram: map[Bigram]int{}, Trigram: map[Trigram]int{}}
}

// Indexer tokenises cleaned commit messages and accumulates global and
// per-author MessageStats.
type Indexer struct {
	Global *Stats
	Author map[string]*Stats
}

// New returns an empty Indexer.
func New() *Indexer {
	return &Indexer{Global: newStats(), Author: map[string]*Stats{}}
}

// IsEmpty reports whether a cleaned message is empty once whitespace is
// trimmed, the `no_msg` trigger condition in spec.md §4.5.
func IsEmpty(cleaned string) bool {
	return strings.TrimSpace(cleaned) == ""
}

// Index tokenises cleaned (already produced by Clean) line by line and
// increments global and author-scoped term/bigram/trigram counts. N-grams
// never span line boundaries.
func (idx *Indexer) Index(author, cleaned string) {
	authorStats, ok := idx.Author[author]
	if !ok {
		authorStats = newStats()
		idx.Author[author] = authorStats
	}

	for _, line := range strings.Split(cleaned, "\n") {
		tokens := Tokens(line)
		for i, t := range tokens {
			idx.Global.Term[t]++
			authorStats.Term[t]++
			if i+1 < len(tokens) {
				bg := Bigram{t, tokens[i+1]}
				idx.Global.Bigram[bg]++
				authorStats.Bigram[bg]++
			}
			if i+2 < len(tokens) {
				tg := Trigram{t, tokens[i+1], tokens[i+2]}
				idx.Global.Trigram[tg]++
				authorStats.Trigram[tg]++
			}
		}
	}
}
