package query

import (
	"path/filepath"
	"strings"
	"unicode"
)

// Type restricts which entry kinds a search may return.
type Type int

const (
	Any Type = iota
	FileOnly
	DirOnly
)

func (t Type) String() string {
	switch t {
	case FileOnly:
		return "files"
	case DirOnly:
		return "dirs"
	default:
		return "any"
	}
}

// Constraints is the structured form of a raw query string. Values are
// immutable once parsed; a new query means a new Parse call.
type Constraints struct {
	Raw        string
	Type       Type
	Extensions []string
	Phrase     string
	HasPhrase  bool
	Terms      []string
}

// Parse tokenizes a raw query into Constraints. It never fails: malformed
// input degrades to fuzzy terms, and an unterminated quote consumes the rest
// of the input as the exact phrase. Identical input always yields identical
// Constraints.
//
// Token rules, applied left to right:
//
//	--file / -f        restrict to files; --dir / -d restrict to
//	                   directories; the last flag wins
//	.<ext>             adds a lowercased extension filter and implies --file
//	                   unless --dir is already in effect
//	"phrase"           case-folded exact substring requirement; only the
//	                   first quoted phrase is honored
//	anything else      appended to the fuzzy terms in input order
func Parse(raw string) Constraints {
	c := Constraints{Raw: raw, Type: Any}

	i := 0
	for i < len(raw) {
		for i < len(raw) && isSpace(raw[i]) {
			i++
		}
		if i >= len(raw) {
			break
		}

		if raw[i] == '"' {
			phrase, next := scanQuoted(raw, i+1)
			i = next
			if !c.HasPhrase {
				c.Phrase = strings.ToLower(phrase)
				c.HasPhrase = true
			} else if trimmed := strings.TrimSpace(phrase); trimmed != "" {
				// Later quoted segments are ordinary fuzzy text.
				c.Terms = append(c.Terms, strings.Fields(trimmed)...)
			}
			continue
		}

		start := i
		for i < len(raw) && !isSpace(raw[i]) {
			i++
		}
		c.applyToken(raw[start:i])
	}

	// Directories have no extension, so an explicit --dir discards any
	// collected extension filters.
	if c.Type == DirOnly {
		c.Extensions = nil
	}

	return c
}

func (c *Constraints) applyToken(tok string) {
	switch tok {
	case "--file", "-f":
		c.Type = FileOnly
		return
	case "--dir", "-d":
		c.Type = DirOnly
		return
	}

	if ext, ok := extensionToken(tok); ok {
		if c.Type == DirOnly {
			return
		}
		c.Type = FileOnly
		c.addExtension(ext)
		return
	}

	c.Terms = append(c.Terms, tok)
}

func (c *Constraints) addExtension(ext string) {
	for _, existing := range c.Extensions {
		if existing == ext {
			return
		}
	}
	c.Extensions = append(c.Extensions, ext)
}

// extensionToken matches ".<alnum+>" tokens such as ".rs" or ".toml".
func extensionToken(tok string) (string, bool) {
	if len(tok) < 2 || tok[0] != '.' {
		return "", false
	}

	for _, r := range tok[1:] {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return "", false
		}
	}

	return strings.ToLower(tok[1:]), true
}

// scanQuoted consumes characters starting just after an opening quote and
// returns the phrase plus the index after the closing quote. A backslash
// escapes an embedded quote. Missing closers consume to end of input.
func scanQuoted(raw string, start int) (string, int) {
	var b strings.Builder
	i := start
	for i < len(raw) {
		ch := raw[i]
		if ch == '\\' && i+1 < len(raw) && raw[i+1] == '"' {
			b.WriteByte('"')
			i += 2
			continue
		}
		if ch == '"' {
			return b.String(), i + 1
		}
		b.WriteByte(ch)
		i++
	}

	return b.String(), i
}

// FuzzyText joins the fuzzy terms with single spaces, forming the string the
// matcher scores candidates against.
func (c Constraints) FuzzyText() string {
	return strings.Join(c.Terms, " ")
}

// Allows reports whether an entry of the given kind passes the type filter.
func (c Constraints) Allows(isDir bool) bool {
	switch c.Type {
	case FileOnly:
		return !isDir
	case DirOnly:
		return isDir
	default:
		return true
	}
}

// AllowsExt reports whether a file name passes the extension filter. An empty
// filter allows everything.
func (c Constraints) AllowsExt(name string) bool {
	if len(c.Extensions) == 0 {
		return true
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		return false
	}

	for _, want := range c.Extensions {
		if ext == want {
			return true
		}
	}

	return false
}

// MatchesPhrase reports whether the candidate satisfies the exact-phrase
// requirement, case-insensitively. Absent phrase matches everything.
func (c Constraints) MatchesPhrase(candidate string) bool {
	if !c.HasPhrase {
		return true
	}

	return strings.Contains(strings.ToLower(candidate), c.Phrase)
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
