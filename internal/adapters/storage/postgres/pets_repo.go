package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"pet-pedigree/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, name, species, breed, sex, color,
	birth_date, microchip, father_id, mother_id,
	health_certified,
	registration_code, registration_generation, registration_sequence,
	notes, created_at, updated_at`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
	`,
		p.ID,
		p.Name,
		p.Species,
		p.Breed,
		p.Sex,
		p.Color,
		toNullDate(p.BirthDate),
		p.Microchip,
		toNullString(p.FatherID),
		toNullString(p.MotherID),
		p.HealthCertified,
		p.RegistrationCode,
		p.RegistrationGeneration,
		p.RegistrationSequence,
		p.Notes,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

// Update no toca los campos de registro: esos solo cambian vía PedigreeRepo.
func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			species = $3,
			breed = $4,
			sex = $5,
			color = $6,
			birth_date = $7,
			microchip = $8,
			father_id = $9,
			mother_id = $10,
			health_certified = $11,
			notes = $12,
			updated_at = $13
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Species,
		p.Breed,
		p.Sex,
		p.Color,
		toNullDate(p.BirthDate),
		p.Microchip,
		toNullString(p.FatherID),
		toNullString(p.MotherID),
		p.HealthCertified,
		p.Notes,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)

	p, err := scanPet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) List(ctx context.Context, filter pets.ListFilter) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE ($1 = '' OR species = $1)
		  AND ($2 = '' OR sex = $2)
		ORDER BY created_at ASC, id ASC
	`, string(filter.Species), string(filter.Sex))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(s rowScanner) (pets.Pet, error) {
	var (
		p                  pets.Pet
		bd                 sql.NullTime
		fatherID, motherID sql.NullString
	)
	if err := s.Scan(
		&p.ID,
		&p.Name,
		&p.Species,
		&p.Breed,
		&p.Sex,
		&p.Color,
		&bd,
		&p.Microchip,
		&fatherID,
		&motherID,
		&p.HealthCertified,
		&p.RegistrationCode,
		&p.RegistrationGeneration,
		&p.RegistrationSequence,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}

	if bd.Valid {
		t := bd.Time
		// ojo: birth_date es date, pgx lo mapea a time.Time midnight UTC
		p.BirthDate = &t
	}
	p.FatherID = fatherID.String
	p.MotherID = motherID.String
	return p, nil
}

// birth_date es DATE, lo pasamos como NullTime para simplificar
func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// father_id/mother_id son FK nullable: "" se guarda como NULL.
func toNullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
