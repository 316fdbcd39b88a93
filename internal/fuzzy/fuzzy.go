package fuzzy

import "unicode"

// Scoring weights. Contiguous runs and anchored term starts dominate, gaps
// and candidate length pull the score down, so a tight match in a short path
// always outranks a scattered match in a long one.
const (
	bonusConsecutive = 12
	bonusAnchor      = 72
	bonusCaseEqual   = 8
	penaltyDistance  = 4
	penaltyLength    = 1
)

// Score matches terms against candidate as a case-insensitive ordered
// subsequence and reports the match quality. The boolean is false when the
// candidate does not contain every term character in order. Spaces in terms
// separate terms and are never matched literally. An empty terms string
// matches everything with score zero.
func Score(candidate, terms string) (int, bool) {
	pattern, starts := compile(terms)
	if len(pattern) == 0 {
		return 0, true
	}

	text := []rune(candidate)
	if !subsequence(text, pattern) {
		return 0, false
	}

	memo := newMemo(len(pattern), len(text))
	best := score(text, pattern, starts, 0, 0, memo)

	return best - penaltyLength*len(text), true
}

// Match reports whether terms match candidate, ignoring the score.
func Match(candidate, terms string) bool {
	_, ok := Score(candidate, terms)
	return ok
}

// compile lowers the terms into the rune pattern to match, dropping spaces
// and remembering which pattern positions begin a term.
func compile(terms string) ([]rune, []bool) {
	pattern := make([]rune, 0, len(terms))
	starts := make([]bool, 0, len(terms))

	atStart := true
	for _, r := range terms {
		if unicode.IsSpace(r) {
			atStart = true
			continue
		}
		pattern = append(pattern, r)
		starts = append(starts, atStart)
		atStart = false
	}

	return pattern, starts
}

func subsequence(text, pattern []rune) bool {
	pi := 0
	for _, r := range text {
		if pi < len(pattern) && unicode.ToLower(r) == unicode.ToLower(pattern[pi]) {
			pi++
		}
	}

	return pi == len(pattern)
}

const (
	unset      = -1 << 30
	uncomputed = unset - 1
)

// score finds the best placement of pattern[qi:] within text[ti:], where ti
// is the position immediately after the previous match. Memoized on (qi, ti);
// the recursion mirrors the matcher the search scoring was tuned against.
func score(text, pattern []rune, starts []bool, qi, ti int, memo [][]int) int {
	if qi == len(pattern) {
		return 0
	}
	if got := memo[qi][ti]; got != uncomputed {
		return got
	}

	best := unset
	want := unicode.ToLower(pattern[qi])
	for p := ti; p <= len(text)-(len(pattern)-qi); p++ {
		if unicode.ToLower(text[p]) != want {
			continue
		}

		rest := score(text, pattern, starts, qi+1, p+1, memo)
		if rest == unset {
			// No room left for the remaining pattern; later
			// positions only shrink the tail.
			break
		}

		total := rest - penaltyDistance*(p-ti)
		if text[p] == pattern[qi] {
			total += bonusCaseEqual
		}
		if qi > 0 && p == ti {
			total += bonusConsecutive
		}
		if starts[qi] && wordStart(text, p) {
			total += bonusAnchor
		}

		if total > best {
			best = total
		}
	}

	memo[qi][ti] = best
	return best
}

// wordStart reports whether position p begins a word: start of string, after
// a separator or other non-alphanumeric rune, or a camelCase lower-to-upper
// boundary.
func wordStart(text []rune, p int) bool {
	if p == 0 {
		return true
	}

	prev := text[p-1]
	if !unicode.IsLetter(prev) && !unicode.IsDigit(prev) {
		return true
	}

	return unicode.IsLower(prev) && unicode.IsUpper(text[p])
}

func newMemo(rows, cols int) [][]int {
	memo := make([][]int, rows)
	for i := range memo {
		row := make([]int, cols+1)
		for j := range row {
			row[j] = uncomputed
		}
		memo[i] = row
	}

	return memo
}
