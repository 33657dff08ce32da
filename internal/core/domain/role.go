package domain

// Roles carried in API bearer tokens.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)
