package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pet-pedigree/internal/domain/pedigree"
	"pet-pedigree/internal/domain/pets"
)

// PedigreeRepo expone la tabla pets como grafo de pedigree.
type PedigreeRepo struct {
	db   *sql.DB
	pets *PetsRepo
}

func NewPedigreeRepo(db *sql.DB) *PedigreeRepo {
	return &PedigreeRepo{db: db, pets: NewPetsRepo(db)}
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

// ApplyRegistrations aplica el lote en una transacción: primero las
// limpiezas, después las asignaciones.
func (r *PedigreeRepo) ApplyRegistrations(ctx context.Context, changes []pedigree.RegistrationChange) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		UPDATE pets
		SET
			registration_code = $2,
			registration_generation = $3,
			registration_sequence = $4
		WHERE id = $1
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, clearing := range []bool{true, false} {
		for _, c := range changes {
			if (c.Code == "") != clearing {
				continue
			}
			res, err := stmt.ExecContext(ctx, c.AnimalID, c.Code, c.Generation, c.Sequence)
			if err != nil {
				return fmt.Errorf("update %s: %w", c.AnimalID, err)
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return fmt.Errorf("update %s: %w", c.AnimalID, pedigree.ErrNotFound)
			}
		}
	}

	return tx.Commit()
}
