package domain

// SkillCount is one row of the popular-skills aggregation.
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}
