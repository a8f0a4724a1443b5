package skill

// Skill is a single entry on the skills page. Level is a 0-100
// proficiency figure; Ord controls display order within a category.
type Skill struct {
	ID       int    `json:"skill_id"`
	Name     string `json:"name"`
	Level    int    `json:"level"`
	Category string `json:"category"`
	Ord      int    `json:"ord"`
}
