package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/fruver-pos/internal/application/auth"
	"github.com/tu-usuario/fruver-pos/internal/domain"
	"github.com/tu-usuario/fruver-pos/internal/domain/entity"
	"github.com/tu-usuario/fruver-pos/internal/infrastructure/memory"
	"golang.org/x/crypto/bcrypt"
)

const (
	managerEmail    = "gerente@fruver.co"
	managerPassword = "clave-super-segura"
	cashierID       = "00000000-0000-0000-0000-000000000001"
)

func seedUser(t *testing.T, store *memory.Store, id, email, password, role, status string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, store.UserRepo().Create(&entity.User{
		ID:           id,
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Usuario de prueba",
		Role:         role,
		Status:       status,
		CreatedAt:    time.Now(),
	}))
}

func TestAuthorizeClosure_AdminDistintoAprueba(t *testing.T) {
	store := memory.NewStore()
	seedUser(t, store, "manager-1", managerEmail, managerPassword, entity.RoleAdmin, "active")

	authorizer := auth.NewManagerAuthorizer(store.UserRepo())
	id, err := authorizer.AuthorizeClosure(context.Background(), managerEmail, managerPassword, cashierID)
	require.NoError(t, err)
	assert.Equal(t, "manager-1", id)
}

func TestAuthorizeClosure_Rechazos(t *testing.T) {
	store := memory.NewStore()
	seedUser(t, store, "manager-1", managerEmail, managerPassword, entity.RoleAdmin, "active")
	seedUser(t, store, "cajero-1", "cajero@fruver.co", "clave-cajero", entity.RoleCajero, "active")
	seedUser(t, store, "inactivo-1", "exgerente@fruver.co", "clave-ex", entity.RoleAdmin, "inactive")

	authorizer := auth.NewManagerAuthorizer(store.UserRepo())

	cases := []struct {
		name        string
		email       string
		password    string
		initiatorID string
		want        error
	}{
		{"password incorrecto", managerEmail, "otra-clave", cashierID, domain.ErrUnauthorized},
		{"email inexistente", "nadie@fruver.co", managerPassword, cashierID, domain.ErrUnauthorized},
		{"email vacío", "", managerPassword, cashierID, domain.ErrUnauthorized},
		{"cajero no puede autorizar", "cajero@fruver.co", "clave-cajero", cashierID, domain.ErrForbidden},
		{"admin inactivo no puede autorizar", "exgerente@fruver.co", "clave-ex", cashierID, domain.ErrForbidden},
		{"nadie se autoriza a sí mismo", managerEmail, managerPassword, "manager-1", domain.ErrForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := authorizer.AuthorizeClosure(context.Background(), tc.email, tc.password, tc.initiatorID)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
