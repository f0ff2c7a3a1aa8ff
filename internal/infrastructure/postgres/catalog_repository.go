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
	_ repository.AuthorRepository    = (*AuthorRepo)(nil)
	_ repository.CategoryRepository  = (*CategoryRepo)(nil)
	_ repository.EditorialRepository = (*EditorialRepo)(nil)
)

// Los tres repos de catálogo comparten forma (id, name, created_at); se
// implementan sobre un repo genérico por tabla.

type namedRepo struct {
	q     Querier
	table string
}

func (r *namedRepo) create(ctx context.Context, id, name string, createdAt any) error {
	query := fmt.Sprintf(`INSERT INTO %s (id, name, created_at) VALUES ($1, $2, $3)`, r.table)
	if _, err := r.q.Exec(ctx, query, id, name, createdAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert %s: %w", r.table, err)
	}
	return nil
}

func (r *namedRepo) getByID(ctx context.Context, id string, scan func(pgx.Row) error) error {
	query := fmt.Sprintf(`SELECT id, name, created_at FROM %s WHERE id = $1`, r.table)
	if err := scan(r.q.QueryRow(ctx, query, id)); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return pgx.ErrNoRows
		}
		return fmt.Errorf("get %s: %w", r.table, err)
	}
	return nil
}

func (r *namedRepo) list(ctx context.Context, scan func(pgx.Rows) error) error {
	query := fmt.Sprintf(`SELECT id, name, created_at FROM %s ORDER BY name`, r.table)
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return fmt.Errorf("list %s: %w", r.table, err)
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("scan %s: %w", r.table, err)
		}
	}
	return rows.Err()
}

func (r *namedRepo) delete(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)
	cmd, err := r.q.Exec(ctx, query, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, fmt.Errorf("%w: hay productos que referencian este registro", domain.ErrInvalidInput)
		}
		return false, fmt.Errorf("delete %s: %w", r.table, err)
	}
	return cmd.RowsAffected() > 0, nil
}

// AuthorRepo implementación del puerto AuthorRepository sobre PostgreSQL.
type AuthorRepo struct{ namedRepo }

// NewAuthorRepository construye el adaptador de persistencia para autores.
func NewAuthorRepository(q Querier) *AuthorRepo {
	return &AuthorRepo{namedRepo{q: q, table: "authors"}}
}

func (r *AuthorRepo) Create(ctx context.Context, author *entity.Author) error {
	return r.create(ctx, author.ID, author.Name, author.CreatedAt)
}

func (r *AuthorRepo) GetByID(ctx context.Context, id string) (*entity.Author, error) {
	var a entity.Author
	err := r.getByID(ctx, id, func(row pgx.Row) error {
		return row.Scan(&a.ID, &a.Name, &a.CreatedAt)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AuthorRepo) List(ctx context.Context) ([]*entity.Author, error) {
	var authors []*entity.Author
	err := r.list(ctx, func(rows pgx.Rows) error {
		var a entity.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.CreatedAt); err != nil {
			return err
		}
		authors = append(authors, &a)
		return nil
	})
	return authors, err
}

func (r *AuthorRepo) Delete(ctx context.Context, id string) (bool, error) {
	return r.delete(ctx, id)
}

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct{ namedRepo }

// NewCategoryRepository construye el adaptador de persistencia para categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{namedRepo{q: q, table: "categories"}}
}

func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	return r.create(ctx, category.ID, category.Name, category.CreatedAt)
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	var c entity.Category
	err := r.getByID(ctx, id, func(row pgx.Row) error {
		return row.Scan(&c.ID, &c.Name, &c.CreatedAt)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	var categories []*entity.Category
	err := r.list(ctx, func(rows pgx.Rows) error {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return err
		}
		categories = append(categories, &c)
		return nil
	})
	return categories, err
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) (bool, error) {
	return r.delete(ctx, id)
}

// EditorialRepo implementación del puerto EditorialRepository sobre PostgreSQL.
type EditorialRepo struct{ namedRepo }

// NewEditorialRepository construye el adaptador de persistencia para editoriales.
func NewEditorialRepository(q Querier) *EditorialRepo {
	return &EditorialRepo{namedRepo{q: q, table: "editorials"}}
}

func (r *EditorialRepo) Create(ctx context.Context, editorial *entity.Editorial) error {
	return r.create(ctx, editorial.ID, editorial.Name, editorial.CreatedAt)
}

func (r *EditorialRepo) GetByID(ctx context.Context, id string) (*entity.Editorial, error) {
	var e entity.Editorial
	err := r.getByID(ctx, id, func(row pgx.Row) error {
		return row.Scan(&e.ID, &e.Name, &e.CreatedAt)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EditorialRepo) List(ctx context.Context) ([]*entity.Editorial, error) {
	var editorials []*entity.Editorial
	err := r.list(ctx, func(rows pgx.Rows) error {
		var e entity.Editorial
		if err := rows.Scan(&e.ID, &e.Name, &e.CreatedAt); err != nil {
			return err
		}
		editorials = append(editorials, &e)
		return nil
	})
	return editorials, err
}

func (r *EditorialRepo) Delete(ctx context.Context, id string) (bool, error) {
	return r.delete(ctx, id)
}
