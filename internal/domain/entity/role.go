package entity

// Roles válidos en el claim "role" del token.
const (
	RoleAdmin     = "admin"
	RoleEncargado = "encargado"
	RoleCocinero  = "cocinero"
)
