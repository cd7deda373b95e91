package handler

// --- Request types ---

type registerUserRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role"  validate:"required,oneof=normal admin superadmin"`
}

type loginRequest struct {
	Email       string `json:"email"       validate:"required,email"`
	SecretToken string `json:"secretToken" validate:"required"`
}

type searchUsersRequest struct {
	Name string `json:"name"`
}

// updateUserRequest carries the mutable profile fields. A role field in the
// body is ignored on this path; roles change only via the dedicated route.
type updateUserRequest struct {
	Name  string `json:"name"  validate:"omitempty"`
	Email string `json:"email" validate:"omitempty,email"`
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=normal admin superadmin"`
}

// --- Response types ---

type registeredUserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
	Ref   string `json:"ref"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Ref   string `json:"ref"`
}

type loginResponse struct {
	Token string `json:"token"`
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type deletedUserResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
