package pets

import (
	"time"

	"pet-pedigree/internal/domain/pedigree"
)

// Species define las especies soportadas.
// @Enum dog, cat
type Species string

const (
	SpeciesDog Species = "dog"
	SpeciesCat Species = "cat"
)

// Sex define el sexo de la mascota.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

func ParseSex(s string) (Sex, bool) {
	switch Sex(s) {
	case SexMale, SexFemale, SexUnknown:
		return Sex(s), true
	case "":
		return SexUnknown, true
	default:
		return "", false
	}
}

// Pet es el registro del animal en el criadero.
// FatherID/MotherID vacíos = pedigree desconocido.
type Pet struct {
	ID string

	Name    string
	Species Species // dog, cat
	Breed   string  // Según especie (DogBreed o CatBreed)
	Sex     Sex     // male, female, unknown
	Color   string

	BirthDate *time.Time
	Microchip string

	FatherID string
	MotherID string

	HealthCertified bool

	// Asignados por el registro de linaje; nunca se editan a mano.
	RegistrationCode       string
	RegistrationGeneration int
	RegistrationSequence   int

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Animal proyecta el registro al snapshot que consume el núcleo de pedigree.
func (p Pet) Animal() pedigree.Animal {
	return pedigree.Animal{
		ID:               p.ID,
		Name:             p.Name,
		Species:          string(p.Species),
		Sex:              string(p.Sex),
		BirthDate:        p.BirthDate,
		FatherID:         p.FatherID,
		MotherID:         p.MotherID,
		Breed:            p.Breed,
		Color:            p.Color,
		HealthCertified:  p.HealthCertified,
		RegistrationCode: p.RegistrationCode,
	}
}
