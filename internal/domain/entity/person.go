package entity

import "time"

// Géneros válidos para Person.
const (
	GenderMasculino = "MASCULINO"
	GenderFemenino  = "FEMENINO"
)

// Person datos de identidad ligados 1:1 a un User.
type Person struct {
	ID        string
	FirstName string
	LastName  string
	DNI       string // único
	BirthDate *time.Time
	Gender    string
	Address   string
	Phone     string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName nombre completo para listados.
func (p *Person) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// Admin marcador del administrador de arranque, asociado a su Person.
type Admin struct {
	ID       string
	PersonID string
}
