package pedigree

import "context"

// Repository es la vista del Animal Record Store que necesita el servicio:
// lectura masiva, lectura puntual y escritura de códigos de registro.
type Repository interface {
	GetAnimal(ctx context.Context, id string) (Animal, error)
	ListAnimals(ctx context.Context) ([]Animal, error)

	// ApplyRegistrations escribe los cambios de forma atómica. Los cambios
	// con Code vacío limpian el código del animal.
	ApplyRegistrations(ctx context.Context, changes []RegistrationChange) error
}
