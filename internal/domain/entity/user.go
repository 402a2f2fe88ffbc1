package entity

// User representa un usuario de la aplicación tal como lo devuelve el login.
type User struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Permission Permission `json:"permission"`
}

// Credential usuario con hash de contraseña; solo lo usa la API de referencia.
type Credential struct {
	User
	PasswordHash string `json:"-"` // bcrypt
}
