package entity

// User is the signed-in operator as reported by the identity provider.
// Users are owned by the remote API; this service never persists them.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// DisplayName returns the name shown in "Received By" columns
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// Warehouse is a stock location the operator works in
type Warehouse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DefaultWarehouse is used when the warehouse list cannot be fetched
var DefaultWarehouse = Warehouse{ID: 1, Name: "Default Warehouse"}
