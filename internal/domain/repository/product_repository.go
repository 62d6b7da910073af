package repository

import "github.com/tu-usuario/fruver-pos/internal/domain/entity"

// ProductRepository define el puerto de persistencia para el catálogo de productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	List() ([]*entity.Product, error)
}
