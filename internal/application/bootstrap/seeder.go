// Package bootstrap siembra los datos de arranque: el catálogo cerrado de
// permisos, los roles del sistema y el administrador inicial. Todas las
// operaciones son idempotentes; el seeder corre en cada arranque.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sairmh/libreria-api/internal/application/usecase"
	"github.com/sairmh/libreria-api/internal/domain/entity"
	"github.com/sairmh/libreria-api/internal/domain/repository"
	"github.com/sairmh/libreria-api/pkg/config"
	"github.com/sairmh/libreria-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// Seeder siembra permisos, roles y el administrador inicial.
type Seeder struct {
	permRepo   repository.PermissionRepository
	roleRepo   repository.RoleRepository
	userRepo   repository.UserRepository
	personRepo repository.PersonRepository
	txRunner   usecase.PersonTxRunner
	admin      config.AdminConfig
	log        *logger.Logger
}

// NewSeeder construye el seeder.
func NewSeeder(
	permRepo repository.PermissionRepository,
	roleRepo repository.RoleRepository,
	userRepo repository.UserRepository,
	personRepo repository.PersonRepository,
	txRunner usecase.PersonTxRunner,
	admin config.AdminConfig,
	log *logger.Logger,
) *Seeder {
	return &Seeder{
		permRepo:   permRepo,
		roleRepo:   roleRepo,
		userRepo:   userRepo,
		personRepo: personRepo,
		txRunner:   txRunner,
		admin:      admin,
		log:        log,
	}
}

// Run ejecuta la siembra completa: permisos, roles ADMINISTRADOR y VENDEDOR
// con sus sets, y el usuario administrador si hay credenciales configuradas.
// Al final valida que la tabla de permisos coincida con el catálogo cerrado.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.seedPermissions(ctx); err != nil {
		return fmt.Errorf("seed permisos: %w", err)
	}
	if err := s.seedRoles(ctx); err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}
	if err := s.seedAdmin(ctx); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if err := s.validatePermissionSet(ctx); err != nil {
		return err
	}
	s.log.Info().Msg("siembra de arranque completada")
	return nil
}

// seedPermissions crea los permisos del catálogo que aún no existan.
func (s *Seeder) seedPermissions(ctx context.Context) error {
	for _, seed := range entity.AllPermissions() {
		existing, err := s.permRepo.GetByName(ctx, seed.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		perm := &entity.Permission{
			ID:        uuid.New().String(),
			Name:      seed.Name,
			Label:     seed.Label,
			CreatedAt: time.Now(),
		}
		if err := s.permRepo.Create(ctx, perm); err != nil {
			return err
		}
		s.log.Debug().Str("permission", seed.Name).Msg("permiso sembrado")
	}
	return nil
}

// seedRoles crea ADMINISTRADOR con el set completo de permisos y VENDEDOR con
// su subconjunto de operación diaria. Los roles existentes no se modifican.
func (s *Seeder) seedRoles(ctx context.Context) error {
	allNames := make([]string, 0, len(entity.AllPermissions()))
	for _, seed := range entity.AllPermissions() {
		allNames = append(allNames, seed.Name)
	}
	if err := s.ensureRole(ctx, entity.RoleAdministrador, "Administrador del sistema", allNames); err != nil {
		return err
	}
	return s.ensureRole(ctx, entity.RoleVendedor, "Vendedor de mostrador", entity.VendedorPermissions())
}

func (s *Seeder) ensureRole(ctx context.Context, name, description string, permNames []string) error {
	role, err := s.roleRepo.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if role != nil {
		return nil
	}

	now := time.Now()
	role = &entity.Role{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.roleRepo.Create(ctx, role); err != nil {
		return err
	}

	permIDs := make([]string, 0, len(permNames))
	for _, pn := range permNames {
		perm, err := s.permRepo.GetByName(ctx, pn)
		if err != nil {
			return err
		}
		if perm == nil {
			return fmt.Errorf("permiso %q no sembrado", pn)
		}
		permIDs = append(permIDs, perm.ID)
	}
	if err := s.roleRepo.SetPermissions(ctx, role.ID, permIDs); err != nil {
		return err
	}
	s.log.Info().Str("role", name).Int("permissions", len(permIDs)).Msg("rol sembrado")
	return nil
}

// seedAdmin crea el usuario administrador inicial con su persona y el marcador
// de admin. Sin ADMIN_USERNAME/ADMIN_PASSWORD configurados se omite con un
// warning: la API queda sin cuenta de entrada hasta que se siembre una.
func (s *Seeder) seedAdmin(ctx context.Context) error {
	if s.admin.Username == "" || s.admin.Password == "" {
		s.log.Warn().Msg("ADMIN_USERNAME/ADMIN_PASSWORD sin configurar: se omite el administrador inicial")
		return nil
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, s.admin.Username)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	role, err := s.roleRepo.GetByName(ctx, entity.RoleAdministrador)
	if err != nil {
		return err
	}
	if role == nil {
		return fmt.Errorf("rol %s no sembrado", entity.RoleAdministrador)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     s.admin.Username,
		Email:        s.admin.Email,
		PasswordHash: string(hash),
		Active:       true,
		RoleID:       role.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	person := &entity.Person{
		ID:        uuid.New().String(),
		FirstName: "Sair",
		LastName:  "Marquez Hidalgo",
		DNI:       "12345678",
		Gender:    entity.GenderMasculino,
		UserID:    user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Cuenta, persona y marcador de admin se confirman juntos o ninguno.
	err = s.txRunner.RunPersons(ctx, func(userRepo repository.UserRepository, personRepo repository.PersonRepository) error {
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		if err := personRepo.Create(ctx, person); err != nil {
			return err
		}
		return personRepo.CreateAdmin(ctx, &entity.Admin{ID: uuid.New().String(), PersonID: person.ID})
	})
	if err != nil {
		return err
	}
	s.log.Info().Str("username", user.Username).Msg("administrador inicial sembrado")
	return nil
}

// validatePermissionSet verifica que la tabla de permisos sea exactamente el
// catálogo cerrado: ni permisos del catálogo ausentes ni filas desconocidas.
func (s *Seeder) validatePermissionSet(ctx context.Context) error {
	stored, err := s.permRepo.List(ctx)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(entity.AllPermissions()))
	for _, seed := range entity.AllPermissions() {
		known[seed.Name] = true
	}
	seen := make(map[string]bool, len(stored))
	for _, p := range stored {
		if !known[p.Name] {
			return fmt.Errorf("permiso desconocido en BD: %q", p.Name)
		}
		seen[p.Name] = true
	}
	for name := range known {
		if !seen[name] {
			return fmt.Errorf("permiso del catálogo ausente en BD: %q", name)
		}
	}
	return nil
}
