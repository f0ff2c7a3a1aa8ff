package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sairmh/libreria-api/internal/domain"
	"github.com/sairmh/libreria-api/internal/domain/entity"
	"github.com/sairmh/libreria-api/internal/domain/repository"
)

var (
	_ repository.UserRepository   = (*UserRepo)(nil)
	_ repository.PersonRepository = (*PersonRepo)(nil)
)

const userColumns = `id, username, email, password_hash, active, role_id, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.Active,
		user.RoleID, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID. Devuelve nil si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetByUsername obtiene un usuario por username. Devuelve nil si no existe.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, username))
}

// ExistsByUsername indica si existe un usuario con ese username.
func (r *UserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists user: %w", err)
	}
	return exists, nil
}

// List lista todos los usuarios ordenados por username.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY username`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Active, &u.RoleID, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

// Update actualiza un usuario existente.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET username = $2, email = $3, password_hash = $4, active = $5, role_id = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.Active, user.RoleID, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Delete elimina un usuario. Devuelve false si no existía.
func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, fmt.Errorf("%w: el usuario tiene ventas asociadas", domain.ErrInvalidInput)
		}
		return false, fmt.Errorf("delete user: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *UserRepo) scanOne(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Active, &u.RoleID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

const personColumns = `id, first_name, last_name, dni, birth_date, gender, address, phone, user_id, created_at, updated_at`

// PersonRepo implementación del puerto PersonRepository sobre PostgreSQL.
type PersonRepo struct {
	q Querier
}

// NewPersonRepository construye el adaptador de persistencia para personas.
func NewPersonRepository(q Querier) *PersonRepo {
	return &PersonRepo{q: q}
}

// Create persiste una persona.
func (r *PersonRepo) Create(ctx context.Context, person *entity.Person) error {
	query := `
		INSERT INTO persons (` + personColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		person.ID, person.FirstName, person.LastName, person.DNI, person.BirthDate,
		person.Gender, person.Address, person.Phone, person.UserID,
		person.CreatedAt, person.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert person: %w", err)
	}
	return nil
}

// GetByID obtiene una persona por ID. Devuelve nil si no existe.
func (r *PersonRepo) GetByID(ctx context.Context, id string) (*entity.Person, error) {
	query := `SELECT ` + personColumns + ` FROM persons WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetByDNI obtiene una persona por DNI. Devuelve nil si no existe.
func (r *PersonRepo) GetByDNI(ctx context.Context, dni string) (*entity.Person, error) {
	query := `SELECT ` + personColumns + ` FROM persons WHERE dni = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, dni))
}

// GetByUsername obtiene la persona asociada al username dado. Devuelve nil si no existe.
func (r *PersonRepo) GetByUsername(ctx context.Context, username string) (*entity.Person, error) {
	query := `
		SELECT p.id, p.first_name, p.last_name, p.dni, p.birth_date, p.gender, p.address, p.phone, p.user_id, p.created_at, p.updated_at
		FROM persons p JOIN users u ON u.id = p.user_id
		WHERE u.username = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, username))
}

// GetByUserID obtiene la persona asociada al usuario dado. Devuelve nil si no existe.
func (r *PersonRepo) GetByUserID(ctx context.Context, userID string) (*entity.Person, error) {
	query := `SELECT ` + personColumns + ` FROM persons WHERE user_id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, userID))
}

// List lista todas las personas ordenadas por apellido y nombre.
func (r *PersonRepo) List(ctx context.Context) ([]*entity.Person, error) {
	query := `SELECT ` + personColumns + ` FROM persons ORDER BY last_name, first_name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	defer rows.Close()

	var persons []*entity.Person
	for rows.Next() {
		var p entity.Person
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.DNI, &p.BirthDate, &p.Gender, &p.Address, &p.Phone, &p.UserID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		persons = append(persons, &p)
	}
	return persons, rows.Err()
}

// Update actualiza una persona existente.
func (r *PersonRepo) Update(ctx context.Context, person *entity.Person) error {
	query := `
		UPDATE persons SET first_name = $2, last_name = $3, birth_date = $4, gender = $5, address = $6, phone = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		person.ID, person.FirstName, person.LastName, person.BirthDate,
		person.Gender, person.Address, person.Phone, person.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update person: %w", err)
	}
	return nil
}

// Delete elimina una persona y su marcador de admin si lo tiene. Devuelve false si no existía.
func (r *PersonRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := r.q.Exec(ctx, `DELETE FROM admins WHERE person_id = $1`, id); err != nil {
		return false, fmt.Errorf("delete admin marker: %w", err)
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM persons WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete person: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// CreateAdmin persiste el marcador de administrador.
func (r *PersonRepo) CreateAdmin(ctx context.Context, admin *entity.Admin) error {
	query := `INSERT INTO admins (id, person_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	if _, err := r.q.Exec(ctx, query, admin.ID, admin.PersonID); err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

// GetAdminByPersonID obtiene el marcador de admin de una persona. Devuelve nil si no existe.
func (r *PersonRepo) GetAdminByPersonID(ctx context.Context, personID string) (*entity.Admin, error) {
	var a entity.Admin
	err := r.q.QueryRow(ctx, `SELECT id, person_id FROM admins WHERE person_id = $1`, personID).Scan(&a.ID, &a.PersonID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return &a, nil
}

func (r *PersonRepo) scanOne(row pgx.Row) (*entity.Person, error) {
	var p entity.Person
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.DNI, &p.BirthDate, &p.Gender, &p.Address, &p.Phone, &p.UserID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get person: %w", err)
	}
	return &p, nil
}
