// parser.go extracts structured beats from the legacy free-text markdown
// script. It is a fallback scraper, not a grammar: every extraction failure
// degrades to a named placeholder so the canonical record is always complete.
package script

import (
	"regexp"
	"strings"
)

// Placeholder text used when a section header cannot be located in the
// markdown. An absent beat is a recoverable condition, not an error.
const (
	PlaceholderHook     = "Hook generado por Knowledge Pack"
	PlaceholderProblem  = "Problema generado por Knowledge Pack"
	PlaceholderSolution = "Solución generada por Knowledge Pack"
	PlaceholderProof    = "Prueba generada por Knowledge Pack"
	DefaultCTA          = "Comparte este video con alguien que lo necesite"
)

// Defaults applied when the caption section yields nothing.
var (
	defaultHashtags = []string{"#contenido", "#marketing"}
	defaultKeywords = []string{"contenido", "estrategia", "video"}
)

// beatMarkers is the ordered list of recognized section headers. A single
// left-to-right scan over this list produces non-overlapping, order-stable
// sections; a header that never matches simply yields no section.
var beatMarkers = []struct {
	name string
	re   *regexp.Regexp
}{
	{"hook", regexp.MustCompile(`(?i)\[0-3s\]\s*HOOK:`)},
	{"problem", regexp.MustCompile(`(?i)\[3-8s\]\s*PROBLEMA:`)},
	{"solution", regexp.MustCompile(`(?i)\[8-\d+s\]\s*SOLUCI[ÓO]N:`)},
	{"closing", regexp.MustCompile(`(?i)\[\d+-\d+s\]\s*(?:PRUEBA\s*\+\s*CTA|CIERRE):`)},
}

// captionSplitRe detects the trailing caption/SEO section: a horizontal rule
// followed by a Caption heading. Everything before it is the script part.
var captionSplitRe = regexp.MustCompile(`(?i)\n\s*(?:---+|\*\*\*+|___+)\s*\n+\s*(?:#+\s*)?caption`)

var (
	// Heading matchers tolerate markdown/emoji prefixes and an optional
	// inline remainder after the colon ("CAPTION: text here").
	captionHeadingRe  = regexp.MustCompile(`(?i)^[^\p{L}\n]*caption[^:\n]*:?[ \t]*(.*)$`)
	keywordsHeadingRe = regexp.MustCompile(`(?i)^[^\p{L}\n]*(?:seo[ \t]+)?keywords[^:\n]*:?[ \t]*(.*)$`)
	hashtagRe         = regexp.MustCompile(`#[\p{L}\p{N}_]+`)
	bulletPrefixRe    = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+`)
	whitespaceRunRe   = regexp.MustCompile(`\s+`)
	proofCTALabelRe   = regexp.MustCompile(`(?i)Prueba:\s*(.+?)\s*CTA:\s*(.+)$`)
	sentenceSplitRe   = regexp.MustCompile(`[.!?]+\s*`)
)

// Keyword sets for the proof/CTA sentence classifier. A sentence carrying an
// action/sharing verb is a call to action; one carrying evidentiary language
// is proof.
var (
	ctaWords   = []string{"comparte", "envía", "escribe", "dm", "mensaje", "guarda", "manda", "pasa"}
	proofWords = []string{"observado", "marcas", "diferencia", "nota", "cuando", "porque", "resultado"}
)

// ParsedScript is the raw text extracted per beat, before placeholder
// substitution. Empty fields mean the corresponding header was not found.
type ParsedScript struct {
	Hook     string
	Problem  string
	Solution string
	Proof    string
	CTA      string

	Caption  string
	Hashtags []string
	Keywords []string
}

// ParseLegacyScript scrapes the four beats and the caption/SEO metadata out
// of a loosely-formatted markdown script. Beats come from the script part
// (everything before the caption split); hashtags are collected from the
// whole text, wherever they appear.
func ParseLegacyScript(markdown string) ParsedScript {
	text := normalizeMarkdown(markdown)

	scriptPart := text
	if loc := captionSplitRe.FindStringIndex(text); loc != nil {
		scriptPart = text[:loc[0]]
	}

	sections := scanSections(scriptPart)

	p := ParsedScript{
		Hook:     cleanBeatText(sections["hook"]),
		Problem:  cleanBeatText(sections["problem"]),
		Solution: cleanBeatText(sections["solution"]),
	}
	p.Proof, p.CTA = splitProofCTA(cleanBeatText(sections["closing"]))

	// Caption metadata is parsed from the full original text, not just the
	// caption section; the service sometimes sprinkles hashtags mid-script.
	p.Caption = extractCaption(text)
	p.Hashtags = hashtagRe.FindAllString(text, -1)
	p.Keywords = extractKeywords(text)

	return p
}

// normalizeMarkdown strips bold markers, normalizes line endings and trims.
func normalizeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.TrimSpace(s)
}

// scanSections performs one left-to-right scan over the ordered beat markers.
// Each found section's text runs from just after its header to just before
// the next found header (or end of text). Missing headers are skipped, which
// makes the "header not found" case an ordinary map miss for the caller.
func scanSections(text string) map[string]string {
	type found struct {
		name        string
		headerStart int
		textStart   int
	}

	var founds []found
	pos := 0
	for _, m := range beatMarkers {
		loc := m.re.FindStringIndex(text[pos:])
		if loc == nil {
			continue
		}
		founds = append(founds, found{m.name, pos + loc[0], pos + loc[1]})
		pos += loc[1]
	}

	sections := make(map[string]string, len(founds))
	for i, f := range founds {
		end := len(text)
		if i+1 < len(founds) {
			end = founds[i+1].headerStart
		}
		sections[f.name] = text[f.textStart:end]
	}
	return sections
}

// cleanBeatText strips per-line bullet markers, collapses all embedded
// newlines and whitespace runs into single spaces, trims, and removes
// wrapping curly quotes.
func cleanBeatText(s string) string {
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = bulletPrefixRe.ReplaceAllString(line, "")
	}
	s = strings.Join(lines, " ")
	s = whitespaceRunRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "“”‘’")
	return strings.TrimSpace(s)
}

// splitProofCTA separates the closing beat into proof and call-to-action.
// Explicit "Prueba: ... CTA: ..." labels win; otherwise sentences are
// classified by keyword membership, with the first unclassified sentence
// defaulting to proof when no proof has been found yet and everything else
// defaulting to CTA. The single-sentence ambiguity of that fallback rule is
// known and preserved.
func splitProofCTA(text string) (proof, cta string) {
	if text == "" {
		return "", ""
	}

	if m := proofCTALabelRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}

	var proofs, ctas []string
	for _, sentence := range splitSentences(text) {
		lower := strings.ToLower(sentence)
		switch {
		case containsAny(lower, ctaWords):
			ctas = append(ctas, sentence)
		case containsAny(lower, proofWords) || len(proofs) == 0:
			proofs = append(proofs, sentence)
		default:
			ctas = append(ctas, sentence)
		}
	}

	proof = strings.Join(proofs, " ")
	cta = strings.Join(ctas, " ")
	if cta == "" {
		cta = DefaultCTA
	}
	return proof, cta
}

// splitSentences breaks text on sentence-ending punctuation, dropping the
// punctuation and empty fragments.
func splitSentences(text string) []string {
	parts := sentenceSplitRe.Split(text, -1)
	sentences := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// extractCaption locates a caption heading and returns only the first line
// of the captured block. Multi-line captions are not supported: first line
// wins.
func extractCaption(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		m := captionHeadingRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		// Inline form: "CAPTION: first line here".
		if inline := strings.TrimSpace(m[1]); inline != "" {
			return inline
		}
		for j := i + 1; j < len(lines); j++ {
			candidate := strings.TrimSpace(lines[j])
			if candidate == "" {
				continue // skip blank lines between heading and text
			}
			if keywordsHeadingRe.MatchString(lines[j]) {
				return ""
			}
			return candidate
		}
		return ""
	}
	return ""
}

// extractKeywords captures the comma-separated list following a Keywords
// heading, up to the next blank line. Tokens that are empty or implausibly
// long (50+ characters) are discarded.
func extractKeywords(text string) []string {
	lines := strings.Split(text, "\n")
	var block []string
	for i, line := range lines {
		m := keywordsHeadingRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if inline := strings.TrimSpace(m[1]); inline != "" {
			block = append(block, inline)
		}
		for j := i + 1; j < len(lines); j++ {
			candidate := strings.TrimSpace(lines[j])
			if candidate == "" {
				break
			}
			block = append(block, candidate)
		}
		break
	}
	if len(block) == 0 {
		return nil
	}

	var keywords []string
	for _, token := range strings.Split(strings.Join(block, ","), ",") {
		token = strings.TrimSpace(token)
		// Length in characters, not bytes — accented Spanish words would
		// otherwise hit the cap early.
		if token == "" || len([]rune(token)) >= 50 {
			continue
		}
		keywords = append(keywords, token)
	}
	return keywords
}
