package repository

import (
	"time"

	"github.com/tu-usuario/fruver-pos/internal/domain/entity"
)

// CashSessionRepository define el puerto de persistencia para cierres de caja.
//
// Create debe apoyarse en un constraint único sobre session_date y traducir la
// violación a domain.ErrAlreadyClosed: es la última defensa contra dos cierres
// concurrentes del mismo día.
type CashSessionRepository interface {
	Create(session *entity.CashDrawerSession) error
	GetByID(id string) (*entity.CashDrawerSession, error)
	// GetByDate devuelve la sesión del día calendario o nil si no existe.
	GetByDate(date time.Time) (*entity.CashDrawerSession, error)
}
