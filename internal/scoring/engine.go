package scoring

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/hirescope/hirescope/internal/model"
	"github.com/hirescope/hirescope/internal/rag"
)

// Component weights; they sum to 1.0.
const (
	weightSkills     = 0.50
	weightExperience = 0.35
	weightEducation  = 0.15

	// Experience blends a years-of-experience signal with lexical overlap
	// between the resume's experience sections and the JD text.
	yearsBlend   = 0.6
	overlapBlend = 0.4

	maxListedSkills = 10
	maxBullets      = 8
	maxInsights     = 5
)

var yearsPattern = regexp.MustCompile(`(\d+)\s*\+?\s*years?`)

var educationKeywords = []string{
	"bachelor", "bsc", "b.s.", "master", "msc", "m.s.", "mba", "phd",
	"doctorate", "degree", "university", "college", "diploma",
}

// Engine computes a resume-to-JD match analysis. It is a pure function of
// its inputs: no embeddings, no generation, no state.
type Engine struct {
	vocab []Skill
}

type Option func(*Engine)

// WithVocabulary replaces the skill vocabulary.
func WithVocabulary(vocab []Skill) Option {
	return func(e *Engine) {
		e.vocab = vocab
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{vocab: DefaultVocabulary()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Score computes the weighted match analysis. Malformed or empty inputs
// degrade to neutral sub-scores instead of failing; the result is always a
// fully-formed MatchAnalysis with match_score in [0,100].
func (e *Engine) Score(resumeText, jdText string) model.MatchAnalysis {
	resumeSkills := e.extractSkills(resumeText)
	jdSkills := e.extractSkills(jdText)

	overlap := make([]string, 0, len(jdSkills))
	missing := make([]string, 0, len(jdSkills))
	resumeHas := make(map[string]bool, len(resumeSkills))
	for _, name := range resumeSkills {
		resumeHas[name] = true
	}
	for _, name := range jdSkills {
		if resumeHas[name] {
			overlap = append(overlap, name)
		} else {
			missing = append(missing, name)
		}
	}

	// Nothing required means nothing failed to match.
	skillScore := 1.0
	if len(jdSkills) > 0 {
		skillScore = float64(len(overlap)) / float64(len(jdSkills))
	}

	resumeSections := sectionTexts(resumeText)
	expScore := experienceScore(resumeText, resumeSections["experience"], jdText)
	eduScore := educationScore(resumeText, jdText)

	total := skillScore*weightSkills + expScore*weightExperience + eduScore*weightEducation
	matchScore := math.Round(clamp01(total)*1000) / 10

	return model.MatchAnalysis{
		MatchScore:    matchScore,
		Strengths:     buildStrengths(overlap, resumeSections),
		Gaps:          buildGaps(missing, resumeText, jdText),
		KeyInsights:   buildInsights(matchScore, resumeSkills, jdSkills, overlap),
		SkillOverlap:  capList(overlap, maxListedSkills),
		MissingSkills: capList(missing, maxListedSkills),
	}
}

// extractSkills returns the canonical names of vocabulary skills mentioned
// in the text, ordered by first mention.
func (e *Engine) extractSkills(text string) []string {
	lower := strings.ToLower(text)
	type mention struct {
		name string
		at   int
	}
	var mentions []mention
	for _, skill := range e.vocab {
		best := -1
		for _, alias := range append([]string{skill.Name}, skill.Aliases...) {
			at := findWord(lower, strings.ToLower(alias))
			if at >= 0 && (best < 0 || at < best) {
				best = at
			}
		}
		if best >= 0 {
			mentions = append(mentions, mention{name: skill.Name, at: best})
		}
	}
	// Insertion order is vocabulary order; re-rank by position in the text
	// so rendered lists follow the document, not the vocabulary.
	for i := 1; i < len(mentions); i++ {
		for j := i; j > 0 && mentions[j].at < mentions[j-1].at; j-- {
			mentions[j], mentions[j-1] = mentions[j-1], mentions[j]
		}
	}
	names := make([]string, 0, len(mentions))
	for _, m := range mentions {
		names = append(names, m.name)
	}
	return names
}

// findWord locates needle in haystack at a word boundary: the neighboring
// characters must not be letters or digits. Handles names like "c++" and
// "node.js" that regexp word boundaries get wrong.
func findWord(haystack, needle string) int {
	if needle == "" {
		return -1
	}
	from := 0
	for {
		at := strings.Index(haystack[from:], needle)
		if at < 0 {
			return -1
		}
		at += from
		before := at == 0 || !isWordRune(rune(haystack[at-1]))
		afterIdx := at + len(needle)
		after := afterIdx >= len(haystack) || !isWordRune(rune(haystack[afterIdx]))
		if before && after {
			return at
		}
		from = at + 1
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func experienceScore(resumeText string, experienceSections []string, jdText string) float64 {
	jdLower := strings.ToLower(jdText)
	resumeLower := strings.ToLower(resumeText)

	yearsSignal := 1.0
	if required := requiredYears(jdLower); required > 0 {
		stated := maxYears(resumeLower)
		if stated >= required {
			yearsSignal = 1.0
		} else {
			yearsSignal = float64(stated) / float64(required)
		}
	}

	expText := strings.ToLower(strings.Join(experienceSections, " "))
	if expText == "" {
		expText = resumeLower
	}
	overlapSignal := wordOverlap(expText, jdLower)

	return clamp01(yearsBlend*yearsSignal + overlapBlend*overlapSignal)
}

func requiredYears(jdLower string) int {
	match := yearsPattern.FindStringSubmatch(jdLower)
	if match == nil {
		return 0
	}
	years, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return years
}

func maxYears(textLower string) int {
	best := 0
	for _, match := range yearsPattern.FindAllStringSubmatch(textLower, -1) {
		if years, err := strconv.Atoi(match[1]); err == nil && years > best {
			best = years
		}
	}
	return best
}

// wordOverlap is the fraction of the JD's distinct words (4+ characters)
// that also appear in the candidate text.
func wordOverlap(candidate, jd string) float64 {
	jdWords := significantWords(jd)
	if len(jdWords) == 0 {
		return 1.0
	}
	candidateWords := significantWords(candidate)
	matched := 0
	for word := range jdWords {
		if candidateWords[word] {
			matched++
		}
	}
	return float64(matched) / float64(len(jdWords))
}

func significantWords(text string) map[string]bool {
	words := make(map[string]bool)
	for _, field := range strings.FieldsFunc(text, func(r rune) bool {
		return !isWordRune(r)
	}) {
		if len(field) >= 4 {
			words[field] = true
		}
	}
	return words
}

func educationScore(resumeText, jdText string) float64 {
	jdLower := strings.ToLower(jdText)
	var required []string
	for _, keyword := range educationKeywords {
		if strings.Contains(jdLower, keyword) {
			required = append(required, keyword)
		}
	}
	if len(required) == 0 {
		return 1.0
	}
	resumeLower := strings.ToLower(resumeText)
	found := 0
	for _, keyword := range required {
		if strings.Contains(resumeLower, keyword) {
			found++
		}
	}
	return clamp01(float64(found) / float64(len(required)))
}

// sectionTexts reuses the retrieval chunker so scoring sees the same section
// boundaries retrieval does.
func sectionTexts(text string) map[string][]string {
	sections := make(map[string][]string)
	for _, chunk := range rag.ChunkDocument(model.Document{Text: text}) {
		if chunk.Section == "" {
			continue
		}
		sections[chunk.Section] = append(sections[chunk.Section], chunk.Text)
	}
	return sections
}

func buildStrengths(overlap []string, resumeSections map[string][]string) []string {
	strengths := make([]string, 0, maxBullets)
	for _, name := range overlap {
		if len(strengths) == maxBullets {
			return strengths
		}
		strengths = append(strengths, "Has required skill: "+name)
	}
	if len(resumeSections["experience"]) > 0 && len(strengths) < maxBullets {
		strengths = append(strengths, "Has relevant work experience listed")
	}
	if len(resumeSections["education"]) > 0 && len(strengths) < maxBullets {
		strengths = append(strengths, "Has education or qualifications listed")
	}
	return strengths
}

func buildGaps(missing []string, resumeText, jdText string) []string {
	gaps := make([]string, 0, maxBullets)
	for _, name := range missing {
		if len(gaps) == maxBullets {
			return gaps
		}
		gaps = append(gaps, "Missing skill: "+name)
	}
	required := requiredYears(strings.ToLower(jdText))
	if required > 0 && len(gaps) < maxBullets {
		if stated := maxYears(strings.ToLower(resumeText)); stated < required {
			gaps = append(gaps, fmt.Sprintf("States %d years of experience, role asks for %d", stated, required))
		}
	}
	return gaps
}

func buildInsights(matchScore float64, resumeSkills, jdSkills, overlap []string) []string {
	insights := make([]string, 0, maxInsights)
	insights = append(insights, fmt.Sprintf("Overall match: %.1f%%", matchScore))
	if len(jdSkills) > 0 {
		insights = append(insights, fmt.Sprintf("Matched %d of %d required skills", len(overlap), len(jdSkills)))
	}
	if len(resumeSkills) > 0 {
		insights = append(insights, fmt.Sprintf("Resume mentions %d recognized skills", len(resumeSkills)))
	}
	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	return insights
}

func capList(list []string, n int) []string {
	if len(list) <= n {
		return list
	}
	return list[:n]
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
