package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-pedigree/internal/domain/pedigree"
	"pet-pedigree/internal/domain/pets"
)

// PetRepo guarda animales en memoria. Sirve tanto al módulo pets como
// (vía PedigreeRepo) al motor de pedigree, sobre el mismo mapa.
type PetRepo struct {
	mu   sync.RWMutex
	byID map[string]pets.Pet
}

func NewPetRepo() *PetRepo {
	return &PetRepo{
		byID: make(map[string]pets.Pet),
	}
}

func (r *PetRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("pet already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *PetRepo) Update(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.byID[p.ID]; !exists {
		return pets.ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *PetRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *PetRepo) List(ctx context.Context, filter pets.ListFilter) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0, len(r.byID))
	for _, p := range r.byID {
		if filter.Species != "" && p.Species != filter.Species {
			continue
		}
		if filter.Sex != "" && p.Sex != filter.Sex {
			continue
		}
		out = append(out, p)
	}

	// Orden estable por created_at asc (el registrador desempata por orden de entrada)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

// PedigreeRepo adapta PetRepo al puerto pedigree.Repository.
type PedigreeRepo struct {
	pets *PetRepo
}

func NewPedigreeRepo(pets *PetRepo) *PedigreeRepo {
	return &PedigreeRepo{pets: pets}
}

func (r *PedigreeRepo) GetAnimal(ctx context.Context, id string) (pedigree.Animal, error) {
	p, err := r.pets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pets.ErrNotFound) {
			return pedigree.Animal{}, pedigree.ErrNotFound
		}
		return pedigree.Animal{}, err
	}
	return p.Animal(), nil
}

func (r *PedigreeRepo) ListAnimals(ctx context.Context) ([]pedigree.Animal, error) {
	all, err := r.pets.List(ctx, pets.ListFilter{})
	if err != nil {
		return nil, err
	}
	out := make([]pedigree.Animal, 0, len(all))
	for _, p := range all {
		out = append(out, p.Animal())
	}
	return out, nil
}

// ApplyRegistrations escribe todo el lote bajo un solo lock: los cambios
// se ven completos o no se ven. Primero limpia y después asigna.
func (r *PedigreeRepo) ApplyRegistrations(ctx context.Context, changes []pedigree.RegistrationChange) error {
	r.pets.mu.Lock()
	defer r.pets.mu.Unlock()

	for _, c := range changes {
		if _, ok := r.pets.byID[c.AnimalID]; !ok {
			return pedigree.ErrNotFound
		}
	}

	for _, clearing := range []bool{true, false} {
		for _, c := range changes {
			if (c.Code == "") != clearing {
				continue
			}
			p := r.pets.byID[c.AnimalID]
			p.RegistrationCode = c.Code
			p.RegistrationGeneration = c.Generation
			p.RegistrationSequence = c.Sequence
			r.pets.byID[c.AnimalID] = p
		}
	}
	return nil
}
