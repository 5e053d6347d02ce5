package dto

// AccountCreateRequest captures a new store login.
type AccountCreateRequest struct {
	Name     string `json:"name" validate:"required,max=63"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// AccountGrantRequest lists the privileges to grant on all tables.
type AccountGrantRequest struct {
	Privileges []string `json:"privileges" validate:"required,min=1,dive,required"`
}

// AccountResponse describes a store login.
type AccountResponse struct {
	Name       string   `json:"name"`
	Privileges []string `json:"privileges,omitempty"`
}
