package todo

// Todo is a private task owned by one user. Every repository call is
// scoped by owner so one user can never read or touch another's list.
type Todo struct {
	ID        int    `json:"todo_id"`
	UserID    int    `json:"user_id"`
	Title     string `json:"title"`
	Done      bool   `json:"done"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
