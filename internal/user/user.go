package user

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        int     `json:"userId"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Password  string  `json:"password,omitempty"`
	Role      string  `json:"role"`
	FirstName string  `json:"firstName,omitempty"`
	LastName  string  `json:"lastName,omitempty"`
	Phone     string  `json:"phone,omitempty"`
	AvatarPic *string `json:"avatarPic,omitempty"`
	CreatedAt string  `json:"createdAt,omitempty"`
	UpdatedAt string  `json:"updatedAt,omitempty"`
}
