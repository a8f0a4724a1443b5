package project

// Project is a portfolio entry shown on the public site, ordered by Ord.
type Project struct {
	ID          int     `json:"project_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	RepoURL     *string `json:"repo_url"`
	LiveURL     *string `json:"live_url"`
	ImageURL    *string `json:"image_url"`
	Ord         int     `json:"ord"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}
