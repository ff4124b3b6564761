package textproc

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxAnchorLen is the longest anchor phrase kept in a title, ellipsis included.
const MaxAnchorLen = 50

const fallbackPrefix = "Journal: "

// TitlePattern is one row of the static topic table used by DeriveTitle.
type TitlePattern struct {
	Match  *regexp.Regexp
	Prefix string
	Weight int
}

func keywords(words ...string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// Declaration order matters: equal weights resolve to the earlier row.
var titlePatterns = []TitlePattern{
	{Match: keywords("grateful", "thankful", "gratitude", "appreciate", "appreciative", "blessed"), Prefix: "Gratitude: ", Weight: 10},
	{Match: keywords("anxious", "anxiety", "stressed", "stress", "overwhelmed", "depressed", "struggling", "lonely", "sad"), Prefix: "Struggles: ", Weight: 9},
	{Match: keywords("goal", "goals", "plan to", "resolution", "want to achieve", "aspire"), Prefix: "Goals: ", Weight: 8},
	{Match: keywords("celebrate", "celebrated", "excited", "achievement", "promoted", "promotion", "won", "proud"), Prefix: "Celebration: ", Weight: 8},
	{Match: keywords("work", "meeting", "project", "boss", "deadline", "office", "colleague", "coworker"), Prefix: "Work: ", Weight: 6},
	{Match: keywords("friend", "friends", "partner", "relationship", "boyfriend", "girlfriend", "wife", "husband", "date night"), Prefix: "Relationships: ", Weight: 6},
	{Match: keywords("family", "mom", "dad", "mother", "father", "kids", "children", "sister", "brother", "parents"), Prefix: "Family: ", Weight: 5},
	{Match: keywords("exercise", "workout", "gym", "run", "running", "sleep", "doctor", "health", "yoga"), Prefix: "Health: ", Weight: 5},
	{Match: keywords("trip", "travel", "traveling", "vacation", "flight", "journey"), Prefix: "Travel: ", Weight: 5},
	{Match: keywords("learned", "learning", "studied", "book", "course", "class", "lesson"), Prefix: "Learning: ", Weight: 4},
	{Match: keywords("dream", "dreamt", "dreamed", "nightmare"), Prefix: "Dreams: ", Weight: 4},
	{Match: keywords("reflect", "reflecting", "thinking about", "realized", "wonder"), Prefix: "Reflection: ", Weight: 3},
	{Match: keywords("today", "this morning", "tonight", "this afternoon", "this evening"), Prefix: "Today: ", Weight: 2},
}

var (
	whitespaceRe    = regexp.MustCompile(`\s+`)
	sentenceSplitRe = regexp.MustCompile(`[.!?]+`)
	leadingFillerRe = regexp.MustCompile(`(?i)^(?:you know|i mean|so|well|um|uh|like|okay|basically|actually)\b[,\s]*`)
	wordRe          = regexp.MustCompile(`[\p{L}\p{N}']+`)
)

var stopWords = map[string]bool{
	"about": true, "after": true, "again": true, "also": true, "always": true, "because": true,
	"been": true, "before": true, "being": true, "could": true, "didn't": true, "does": true,
	"doing": true, "don't": true, "each": true, "even": true, "every": true, "from": true,
	"have": true, "having": true, "here": true, "i'm": true, "into": true, "it's": true,
	"just": true, "know": true, "like": true, "made": true, "make": true, "many": true,
	"more": true, "most": true, "much": true, "really": true, "some": true, "still": true,
	"such": true, "than": true, "that": true, "that's": true, "their": true, "them": true,
	"then": true, "there": true, "these": true, "they": true, "thing": true, "things": true,
	"think": true, "this": true, "those": true, "through": true, "very": true, "want": true,
	"was": true, "were": true, "what": true, "when": true, "where": true, "which": true,
	"while": true, "will": true, "with": true, "would": true, "your": true, "yours": true,
	"went": true, "feel": true, "felt": true, "today": true, "yesterday": true, "kind": true,
}

// Patterns returns a copy of the topic table in evaluation order.
func Patterns() []TitlePattern {
	out := make([]TitlePattern, len(titlePatterns))
	copy(out, titlePatterns)
	return out
}

// DeriveTitle builds a short label for journal content. It is a pure
// function of content and the static pattern table. Callers must reject
// blank content first; for it DeriveTitle returns "".
func DeriveTitle(content string) string {
	normalized := normalizeSpace(content)
	if normalized == "" {
		return ""
	}
	anchor := formatAnchor(anchorPhrase(normalized))

	if p, ok := bestPattern(normalized); ok {
		return p.Prefix + anchor
	}
	if words := topWords(normalized, 3); len(words) > 0 {
		return truncate(strings.Join(words, " "), MaxAnchorLen)
	}
	return fallbackPrefix + anchor
}

func normalizeSpace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

func anchorPhrase(normalized string) string {
	for _, frag := range sentenceSplitRe.Split(normalized, -1) {
		if f := strings.TrimSpace(frag); f != "" {
			return f
		}
	}
	return normalized
}

func bestPattern(content string) (TitlePattern, bool) {
	var best TitlePattern
	found := false
	for _, p := range titlePatterns {
		if !p.Match.MatchString(content) {
			continue
		}
		if !found || p.Weight > best.Weight {
			best = p
			found = true
		}
	}
	return best, found
}

func formatAnchor(anchor string) string {
	if stripped := strings.TrimSpace(leadingFillerRe.ReplaceAllString(anchor, "")); stripped != "" {
		anchor = stripped
	}
	return truncate(capitalizeFirst(anchor), MaxAnchorLen)
}

// topWords returns up to n of the most frequent qualifying words, title-cased.
// Equal counts keep first-occurrence order.
func topWords(content string, n int) []string {
	counts := map[string]int{}
	var order []string
	for _, w := range wordRe.FindAllString(strings.ToLower(content), -1) {
		w = strings.Trim(w, "'")
		if utf8.RuneCountInString(w) <= 3 || stopWords[w] {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > n {
		order = order[:n]
	}
	for i, w := range order {
		order[i] = capitalizeFirst(w)
	}
	return order
}

func capitalizeFirst(s string) string {
	for i, r := range s {
		if unicode.IsLetter(r) {
			return s[:i] + string(unicode.ToUpper(r)) + s[i+utf8.RuneLen(r):]
		}
	}
	return s
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:max-3]), " ") + "..."
}
