package address

// Address is a saved shipping destination in a user's address book.
type Address struct {
	ID        int    `json:"address_id"`
	UserID    int    `json:"user_id"`
	Label     string `json:"label"`
	Recipient string `json:"recipient"`
	Phone     string `json:"phone"`
	Detail    string `json:"detail"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
