// Package sanitizer turns raw upstream items into render-safe items.
// Free text is stripped of markup and brand names are rewritten, media urls are
// accepted only when they point to the allowed media host.
package sanitizer

import (
	"regexp"
	"strings"
)

// Replacement is a single case-insensitive text substitution
type Replacement struct {
	From string
	To   string
}

// Rewriter applies an ordered list of replacements.
// At every position the first matching replacement in list order wins, so a more
// specific key listed before a broader one is never split. A replacement may join
// the text next to it into a new key ("coderzolex" -> "smarterolex"), so passes are
// repeated until the text stops changing.
type Rewriter struct {
	re *regexp.Regexp
	to map[string]string // lowercased key -> replacement
}

// NewRewriter compiles the replacement list, empty keys are ignored
func NewRewriter(replacements []Replacement) *Rewriter {
	res := &Rewriter{to: map[string]string{}}
	alts := make([]string, 0, len(replacements))
	for _, r := range replacements {
		key := strings.ToLower(r.From)
		if key == "" {
			continue
		}
		if _, ok := res.to[key]; ok {
			continue // first one wins
		}
		res.to[key] = r.To
		alts = append(alts, regexp.QuoteMeta(key))
	}
	if len(alts) > 0 {
		res.re = regexp.MustCompile("(?i)" + strings.Join(alts, "|"))
	}
	return res
}

// Rewrite returns text with all replacements applied. The result is a fixed point,
// rewriting it again returns it unchanged. Passes are bounded by the number of keys
// plus one; a table that keeps producing new keys beyond that returns the last pass.
func (r *Rewriter) Rewrite(text string) string {
	if r.re == nil || text == "" {
		return text
	}
	for range len(r.to) + 1 {
		next := r.pass(text)
		if next == text {
			break
		}
		text = next
	}
	return text
}

func (r *Rewriter) pass(text string) string {
	return r.re.ReplaceAllStringFunc(text, func(m string) string {
		if to, ok := r.to[strings.ToLower(m)]; ok {
			return to
		}
		return m
	})
}
