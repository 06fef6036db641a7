package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-pedigree/internal/domain/pedigree"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidParent = errors.New("invalid parent")
	ErrNotFound      = errors.New("pet not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name            string
	Species         string
	Breed           string
	Sex             string
	Color           string
	BirthDate       *time.Time
	Microchip       string
	FatherID        string
	MotherID        string
	HealthCertified bool
	Notes           string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Species) == "" {
		return Pet{}, fmt.Errorf("%w: species is required", ErrInvalidInput)
	}
	sex, ok := ParseSex(strings.ToLower(strings.TrimSpace(in.Sex)))
	if !ok {
		return Pet{}, fmt.Errorf("%w: sex must be male, female or unknown", ErrInvalidInput)
	}

	now := s.now()
	p := Pet{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(in.Name),
		Species:         Species(strings.ToLower(strings.TrimSpace(in.Species))),
		Breed:           strings.TrimSpace(in.Breed),
		Sex:             sex,
		Color:           strings.TrimSpace(in.Color),
		BirthDate:       in.BirthDate,
		Microchip:       strings.TrimSpace(in.Microchip),
		FatherID:        strings.TrimSpace(in.FatherID),
		MotherID:        strings.TrimSpace(in.MotherID),
		HealthCertified: in.HealthCertified,
		Notes:           strings.TrimSpace(in.Notes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.validateParents(ctx, p); err != nil {
		return Pet{}, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Pet, error) {
	return s.repo.List(ctx, filter)
}

// PatchString distingue "no enviado" de "enviado como null".
type PatchString struct {
	Present bool
	Value   *string
}

// UpdateProfileInput: punteros nil = no tocar.
type UpdateProfileInput struct {
	Name            *string
	Species         *string
	Breed           *string
	Sex             *string
	Color           *string
	Microchip       *string
	HealthCertified *bool
	Notes           *string

	BirthDate PatchString // YYYY-MM-DD o null
	FatherID  PatchString // null = pedigree desconocido
	MotherID  PatchString
}

func (s *Service) UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (Pet, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	prevSex, prevSpecies := p.Sex, p.Species

	if in.Name != nil {
		v := strings.TrimSpace(*in.Name)
		if v == "" {
			return Pet{}, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		p.Name = v
	}
	if in.Species != nil {
		v := strings.ToLower(strings.TrimSpace(*in.Species))
		if v == "" {
			return Pet{}, fmt.Errorf("%w: species cannot be empty", ErrInvalidInput)
		}
		p.Species = Species(v)
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Sex != nil {
		sex, ok := ParseSex(strings.ToLower(strings.TrimSpace(*in.Sex)))
		if !ok {
			return Pet{}, fmt.Errorf("%w: sex must be male, female or unknown", ErrInvalidInput)
		}
		p.Sex = sex
	}
	if in.Color != nil {
		p.Color = strings.TrimSpace(*in.Color)
	}
	if in.Microchip != nil {
		p.Microchip = strings.TrimSpace(*in.Microchip)
	}
	if in.HealthCertified != nil {
		p.HealthCertified = *in.HealthCertified
	}
	if in.Notes != nil {
		p.Notes = strings.TrimSpace(*in.Notes)
	}

	if in.BirthDate.Present {
		if in.BirthDate.Value == nil || strings.TrimSpace(*in.BirthDate.Value) == "" {
			p.BirthDate = nil
		} else {
			t, err := time.Parse("2006-01-02", strings.TrimSpace(*in.BirthDate.Value))
			if err != nil {
				return Pet{}, fmt.Errorf("%w: birth_date must be YYYY-MM-DD", ErrInvalidInput)
			}
			p.BirthDate = &t
		}
	}
	if in.FatherID.Present {
		p.FatherID = patchValue(in.FatherID)
	}
	if in.MotherID.Present {
		p.MotherID = patchValue(in.MotherID)
	}

	if err := s.validateParents(ctx, p); err != nil {
		return Pet{}, err
	}
	if p.Sex != prevSex || p.Species != prevSpecies {
		if err := s.validateAsParent(ctx, p); err != nil {
			return Pet{}, err
		}
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func patchValue(ps PatchString) string {
	if ps.Value == nil {
		return ""
	}
	return strings.TrimSpace(*ps.Value)
}

// validateParents aplica las reglas de integridad de linaje sobre p:
// sin auto-referencia, padres existentes, misma especie, sexo coherente
// con el rol y sin ciclos (p no puede ser ancestro de su propio padre).
func (s *Service) validateParents(ctx context.Context, p Pet) error {
	if p.FatherID != "" && p.FatherID == p.MotherID {
		return fmt.Errorf("%w: father and mother must be different pets", ErrInvalidParent)
	}

	checks := []struct {
		role      string
		id        string
		forbidden Sex
	}{
		{"father", p.FatherID, SexFemale},
		{"mother", p.MotherID, SexMale},
	}

	needsCycleCheck := false
	for _, c := range checks {
		if c.id == "" {
			continue
		}
		if c.id == p.ID {
			return fmt.Errorf("%w: pet cannot be its own %s", ErrInvalidParent, c.role)
		}
		parent, err := s.repo.GetByID(ctx, c.id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return fmt.Errorf("%w: %s %s not found", ErrInvalidParent, c.role, c.id)
			}
			return err
		}
		if parent.Species != p.Species {
			return fmt.Errorf("%w: %s %s has mismatched species", ErrInvalidParent, c.role, c.id)
		}
		if parent.Sex == c.forbidden {
			return fmt.Errorf("%w: %s %s cannot be %s", ErrInvalidParent, c.role, c.id, c.forbidden)
		}
		needsCycleCheck = true
	}

	if !needsCycleCheck {
		return nil
	}

	all, err := s.repo.List(ctx, ListFilter{})
	if err != nil {
		return err
	}
	snapshot := make([]pedigree.Animal, 0, len(all)+1)
	snapshot = append(snapshot, p.Animal()) // la versión nueva gana en IndexByID
	for _, x := range all {
		snapshot = append(snapshot, x.Animal())
	}
	lookup := pedigree.IndexByID(snapshot)

	for _, c := range checks {
		if c.id == "" {
			continue
		}
		for _, n := range pedigree.ResolveAncestors(c.id, lookup) {
			if n.ID == p.ID {
				return fmt.Errorf("%w: %s %s descends from this pet", ErrInvalidParent, c.role, c.id)
			}
		}
	}
	return nil
}

// validateAsParent revisa los links que apuntan a p: un padre no puede pasar
// a hembra, una madre no puede pasar a macho y la especie debe seguir
// coincidiendo con la de sus hijos.
func (s *Service) validateAsParent(ctx context.Context, p Pet) error {
	all, err := s.repo.List(ctx, ListFilter{})
	if err != nil {
		return err
	}
	snapshot := make([]pedigree.Animal, 0, len(all))
	byID := make(map[string]Pet, len(all))
	for _, x := range all {
		snapshot = append(snapshot, x.Animal())
		byID[x.ID] = x
	}

	for _, childID := range pedigree.Children(snapshot)[p.ID] {
		child := byID[childID]
		if child.Species != p.Species {
			return fmt.Errorf("%w: offspring %s is %s", ErrInvalidParent, child.ID, child.Species)
		}
		if child.FatherID == p.ID && p.Sex == SexFemale {
			return fmt.Errorf("%w: pet is father of %s and cannot be female", ErrInvalidParent, child.ID)
		}
		if child.MotherID == p.ID && p.Sex == SexMale {
			return fmt.Errorf("%w: pet is mother of %s and cannot be male", ErrInvalidParent, child.ID)
		}
	}
	return nil
}
