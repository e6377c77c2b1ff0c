package model

// MatchAnalysis is recomputed on demand; nothing in the core caches it.
type MatchAnalysis struct {
	MatchScore    float64  `json:"match_score"`
	Strengths     []string `json:"strengths"`
	Gaps          []string `json:"gaps"`
	KeyInsights   []string `json:"key_insights"`
	SkillOverlap  []string `json:"skill_overlap"`
	MissingSkills []string `json:"missing_skills"`
}
