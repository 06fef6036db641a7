package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	mem "pet-pedigree/internal/adapters/storage/memory"
	"pet-pedigree/internal/domain/pets"
)

// fixtureAnimal es una fila del archivo --from-file.
type fixtureAnimal struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Species          string `json:"species"`
	Breed            string `json:"breed,omitempty"`
	Sex              string `json:"sex,omitempty"`
	Color            string `json:"color,omitempty"`
	BirthDate        string `json:"birth_date,omitempty"` // YYYY-MM-DD
	FatherID         string `json:"father_id,omitempty"`
	MotherID         string `json:"mother_id,omitempty"`
	HealthCertified  bool   `json:"health_certified,omitempty"`
	RegistrationCode string `json:"registration_code,omitempty"`
}

// loadFixture carga el archivo en un store en memoria. El orden del archivo
// se conserva (created_at creciente) porque desempata el registro de linaje.
func loadFixture(path string) (*mem.PetRepo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var rows []fixtureAnimal
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}

	repo := mem.NewPetRepo()
	base := time.Unix(0, 0).UTC()
	for i, row := range rows {
		if strings.TrimSpace(row.ID) == "" {
			return nil, fmt.Errorf("fixture row %d: id is required", i)
		}
		sex, ok := pets.ParseSex(strings.ToLower(strings.TrimSpace(row.Sex)))
		if !ok {
			return nil, fmt.Errorf("fixture row %d (%s): invalid sex %q", i, row.ID, row.Sex)
		}
		p := pets.Pet{
			ID:               row.ID,
			Name:             row.Name,
			Species:          pets.Species(strings.ToLower(strings.TrimSpace(row.Species))),
			Breed:            row.Breed,
			Sex:              sex,
			Color:            row.Color,
			FatherID:         row.FatherID,
			MotherID:         row.MotherID,
			HealthCertified:  row.HealthCertified,
			RegistrationCode: row.RegistrationCode,
			CreatedAt:        base.Add(time.Duration(i) * time.Second),
		}
		// Fecha ilegible = desconocida: ordena al final y edad 0.
		if t, err := time.Parse("2006-01-02", row.BirthDate); err == nil {
			p.BirthDate = &t
		}
		p.UpdatedAt = p.CreatedAt
		if err := repo.Create(context.Background(), p); err != nil {
			return nil, fmt.Errorf("fixture row %d (%s): %w", i, row.ID, err)
		}
	}
	return repo, nil
}

func saveFixture(ctx context.Context, path string, repo *mem.PetRepo) error {
	all, err := repo.List(ctx, pets.ListFilter{})
	if err != nil {
		return err
	}
	rows := make([]fixtureAnimal, 0, len(all))
	for _, p := range all {
		row := fixtureAnimal{
			ID:               p.ID,
			Name:             p.Name,
			Species:          string(p.Species),
			Breed:            p.Breed,
			Sex:              string(p.Sex),
			Color:            p.Color,
			FatherID:         p.FatherID,
			MotherID:         p.MotherID,
			HealthCertified:  p.HealthCertified,
			RegistrationCode: p.RegistrationCode,
		}
		if p.BirthDate != nil {
			row.BirthDate = p.BirthDate.Format("2006-01-02")
		}
		rows = append(rows, row)
	}

	b, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
