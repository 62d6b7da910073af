package auth

import (
	"context"

	"github.com/tu-usuario/fruver-pos/internal/application/cashbox"
	"github.com/tu-usuario/fruver-pos/internal/domain"
	"github.com/tu-usuario/fruver-pos/internal/domain/entity"
	"github.com/tu-usuario/fruver-pos/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

var _ cashbox.Authorizer = (*ManagerAuthorizer)(nil)

// ManagerAuthorizer implementa el control a cuatro ojos del cierre de caja:
// valida credenciales de un segundo usuario con rol admin, distinto del que
// inicia el cierre. Reutiliza el repositorio de usuarios y bcrypt del login.
type ManagerAuthorizer struct {
	userRepo repository.UserRepository
	verify   func(hash, password string) bool
}

// NewManagerAuthorizer construye el autorizador.
func NewManagerAuthorizer(userRepo repository.UserRepository) *ManagerAuthorizer {
	return &ManagerAuthorizer{userRepo: userRepo, verify: verifyBcrypt}
}

// AuthorizeClosure devuelve el ID del autorizador si las credenciales son
// válidas, el usuario está activo, tiene rol admin y no es el iniciador.
func (a *ManagerAuthorizer) AuthorizeClosure(_ context.Context, email, password, initiatorID string) (string, error) {
	if email == "" || password == "" {
		return "", domain.ErrUnauthorized
	}
	manager, err := a.userRepo.FindByEmail(email)
	if err != nil {
		return "", err
	}
	if manager == nil || !a.verify(manager.PasswordHash, password) {
		return "", domain.ErrUnauthorized
	}
	if manager.Status != "active" || manager.Role != entity.RoleAdmin {
		return "", domain.ErrForbidden
	}
	if manager.ID == initiatorID {
		// El que cierra no puede autorizarse a sí mismo.
		return "", domain.ErrForbidden
	}
	return manager.ID, nil
}

func verifyBcrypt(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
