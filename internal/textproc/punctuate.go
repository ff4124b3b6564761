package textproc

import (
	"regexp"
	"strings"
)

// PunctuationRule is one ordered substitution step of Punctuate. When
// Rewrite is set it replaces each match instead of the Replacement template.
// Repeat reapplies the rule until the text stops changing.
type PunctuationRule struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
	Rewrite     func(match string) string
	Repeat      bool
}

func (r PunctuationRule) apply(s string) string {
	// Each repeat pass converts at least one sentence, so len(s)+1 bounds it.
	for i := 0; i <= len(s); i++ {
		var out string
		if r.Rewrite != nil {
			out = r.Pattern.ReplaceAllStringFunc(s, r.Rewrite)
		} else {
			out = r.Pattern.ReplaceAllString(s, r.Replacement)
		}
		if !r.Repeat || out == s {
			return out
		}
		s = out
	}
	return s
}

var (
	listChainRe = regexp.MustCompile(`(?i)\b[\w']+(?:, [\w']+)*(?:,? and [\w']+)+\b`)
	listSepRe   = regexp.MustCompile(`(?i),? (and) |, `)
)

// punctuationRules run in this exact order; later rules see text
// inserted by earlier ones.
var punctuationRules = []PunctuationRule{
	{
		Name:        "temporal-period",
		Pattern:     regexp.MustCompile(`(?i)\b(today|yesterday|tonight|this morning|this afternoon|this evening|last night)\b(\s+|$)`),
		Replacement: "${1}.${2}",
	},
	{
		Name:        "opener-comma",
		Pattern:     regexp.MustCompile(`(?i)\b(i (?:think|feel|hope|believe|guess|wish|know|wonder|suppose))\s+`),
		Replacement: "${1}, ",
	},
	{
		Name:        "connective-break",
		Pattern:     regexp.MustCompile(`(?i)([^\s.!?,;])\s+(however|therefore|meanwhile|moreover|furthermore|nevertheless|consequently|otherwise|besides)\b`),
		Replacement: "${1}. ${2}",
	},
	{
		Name:        "filler-comma",
		Pattern:     regexp.MustCompile(`(?i)(^|[.!?]\s+)(you know|i mean|well|so|um|uh|like|okay|actually|basically|anyway)\s+`),
		Replacement: "${1}${2}, ",
	},
	{
		Name:        "vocal-filler-comma",
		Pattern:     regexp.MustCompile(`(?i)\b(um+|uh+|er|hmm+)\s+`),
		Replacement: "${1}, ",
	},
	{
		Name:        "conjunction-comma",
		Pattern:     regexp.MustCompile(`(?i)([^\s,.;:!?])\s+(and|but|or|so|yet|for|nor)\s+`),
		Replacement: "${1}, ${2} ",
	},
	{
		Name:    "list-normalize",
		Pattern: listChainRe,
		Rewrite: normalizeList,
	},
	{
		Name:        "relative-comma",
		Pattern:     regexp.MustCompile(`(?i)([^\s,.;:!?])\s+(who|which|that|where|when|why)\s+`),
		Replacement: "${1}, ${2} ",
	},
	{
		Name:        "question-mark",
		Pattern:     regexp.MustCompile(`(?i)(^|[.!?]\s+)((?:what|why|how|where|when|who|did|does|could|would|should|can|will|do you|are you|is it|have you)\b[^.!?]*?)\s*(?:\.|$)`),
		Replacement: "${1}${2}?",
		Repeat:      true,
	},
	{
		Name:        "exclamation",
		Pattern:     regexp.MustCompile(`(?i)\b(wow|amazing|awesome|incredible|terrible|horrible|fantastic|wonderful|unbelievable|awful)\b\.?(\s|$)`),
		Replacement: "${1}!${2}",
	},
	{Name: "collapse-periods", Pattern: regexp.MustCompile(`\.{2,}`), Replacement: "."},
	{Name: "collapse-commas", Pattern: regexp.MustCompile(`,{2,}`), Replacement: ","},
	{Name: "collapse-space", Pattern: regexp.MustCompile(`\s+`), Replacement: " "},
}

// normalizeList rewrites a chain of single words joined by "and": two items
// read "A and B", three or more get a comma before every separator.
func normalizeList(chain string) string {
	seps := listSepRe.FindAllStringSubmatchIndex(chain, -1)
	if len(seps) == 1 {
		and := chain[seps[0][2]:seps[0][3]]
		return chain[:seps[0][0]] + " " + and + " " + chain[seps[0][1]:]
	}
	var b strings.Builder
	prev := 0
	for _, sep := range seps {
		b.WriteString(chain[prev:sep[0]])
		if sep[2] >= 0 {
			b.WriteString(", " + chain[sep[2]:sep[3]] + " ")
		} else {
			b.WriteString(", ")
		}
		prev = sep[1]
	}
	b.WriteString(chain[prev:])
	return b.String()
}

// Rules returns a copy of the ordered substitution table.
func Rules() []PunctuationRule {
	out := make([]PunctuationRule, len(punctuationRules))
	copy(out, punctuationRules)
	return out
}

// Punctuate adds punctuation and capitalization to a finalized speech
// transcript fragment. It only inserts punctuation or whitespace and adjusts
// casing; letters and digits are never removed. Punctuate(Punctuate(s)) may
// differ from Punctuate(s).
func Punctuate(transcript string) string {
	s := strings.TrimSpace(transcript)
	if s == "" {
		return transcript
	}
	for _, r := range punctuationRules {
		s = r.apply(s)
	}
	s = strings.TrimSpace(s)
	if !strings.ContainsAny(s[len(s)-1:], ".!?") {
		s = strings.TrimRight(s, ",;: ") + "."
	}
	return capitalizeFirst(s)
}
