package post

// Post is a blog entry. Unpublished posts are visible to admins only.
type Post struct {
	ID         int    `json:"post_id"`
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	Body       string `json:"body"`
	CoverImage string `json:"cover_image"`
	Published  bool   `json:"published"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}
