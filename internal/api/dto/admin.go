package dto

// CreateUserRequest is the privileged add-user call: a new confirmed
// account with at least one role.
type CreateUserRequest struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Name     string   `json:"name,omitempty"`
	Roles    []string `json:"roles"`
}

func (r CreateUserRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Email == "" {
		errors["email"] = "Email is required"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	}
	if len(r.Roles) == 0 {
		errors["roles"] = "At least one role is required"
	}

	return errors
}

// ReplaceRolesRequest swaps a user's whole role set.
type ReplaceRolesRequest struct {
	Roles []string `json:"roles"`
}

func (r ReplaceRolesRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if len(r.Roles) == 0 {
		errors["roles"] = "At least one role is required"
	}
	return errors
}
