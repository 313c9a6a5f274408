package model

// Principal is the authenticated caller every record operation is scoped to
type Principal struct {
	UserID string `json:"userId"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
}
