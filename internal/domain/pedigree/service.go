package pedigree

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"pet-pedigree/internal/platform/logger"
	"pet-pedigree/internal/platform/metrics"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("animal not found")
)

// DefaultPrefix se usa cuando ni el request ni la configuración traen prefijo.
const DefaultPrefix = "PED"

type Service struct {
	repo    Repository
	scorer  Scorer
	prefix  string
	log     logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

type Options struct {
	Weights       Weights
	DefaultPrefix string
	Logger        logger.Logger
	Metrics       *metrics.Metrics
}

func NewService(repo Repository, opts Options) *Service {
	w := opts.Weights
	if w == (Weights{}) {
		w = DefaultWeights()
	}
	prefix := strings.ToUpper(strings.TrimSpace(opts.DefaultPrefix))
	if prefix == "" {
		prefix = DefaultPrefix
	}
	l := opts.Logger
	if l == nil {
		l = logger.NewNop()
	}
	return &Service{
		repo:    repo,
		scorer:  NewScorer(w),
		prefix:  prefix,
		log:     l,
		metrics: opts.Metrics,
		now:     time.Now,
	}
}

// Ancestors resuelve sobre un snapshot completo del store (una sola lectura).
// maxGeneration <= 0 devuelve todas las generaciones.
func (s *Service) Ancestors(ctx context.Context, animalID string, maxGeneration int) ([]AncestorNode, error) {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return nil, ErrInvalidInput
	}

	records, err := s.repo.ListAnimals(ctx)
	if err != nil {
		return nil, fmt.Errorf("list animals: %w", err)
	}

	nodes := ResolveAncestors(animalID, IndexByID(records))
	if len(nodes) == 0 {
		return nil, ErrNotFound
	}
	s.metrics.ObserveAncestorQuery()

	return TruncateGenerations(nodes, maxGeneration), nil
}

// Offspring devuelve los hijos directos, ordenados por fecha de nacimiento.
func (s *Service) Offspring(ctx context.Context, animalID string) ([]Animal, error) {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return nil, ErrInvalidInput
	}

	records, err := s.repo.ListAnimals(ctx)
	if err != nil {
		return nil, fmt.Errorf("list animals: %w", err)
	}

	lookup := IndexByID(records)
	if _, ok := lookup(animalID); !ok {
		return nil, ErrNotFound
	}

	out := make([]Animal, 0)
	for _, id := range Children(records)[animalID] {
		if a, ok := lookup(id); ok {
			out = append(out, a)
		}
	}
	sortByBirth(out)
	return out, nil
}

type RegistrationResult struct {
	RootID      string
	Prefix      string
	Assignments []RegistrationAssignment
	Changes     []RegistrationChange
	Applied     bool
}

func (r RegistrationResult) Counts() (set, cleared int) {
	for _, c := range r.Changes {
		if c.Code == "" {
			cleared++
		} else {
			set++
		}
	}
	return set, cleared
}

// PreviewRegistrations calcula asignaciones y cambios sin escribir.
func (s *Service) PreviewRegistrations(ctx context.Context, rootID, prefix string) (RegistrationResult, error) {
	return s.registrations(ctx, rootID, prefix, false)
}

// AssignRegistrations recalcula el linaje completo y aplica solo el diff.
func (s *Service) AssignRegistrations(ctx context.Context, rootID, prefix string) (RegistrationResult, error) {
	return s.registrations(ctx, rootID, prefix, true)
}

func (s *Service) registrations(ctx context.Context, rootID, prefix string, apply bool) (RegistrationResult, error) {
	rootID = strings.TrimSpace(rootID)
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		prefix = s.prefix
	}
	if rootID == "" || prefix == "" || strings.ContainsAny(prefix, " -") {
		return RegistrationResult{}, ErrInvalidInput
	}

	records, err := s.repo.ListAnimals(ctx)
	if err != nil {
		return RegistrationResult{}, fmt.Errorf("list animals: %w", err)
	}

	assignments := AssignRegistrationCodes(rootID, records, prefix)
	if len(assignments) == 0 {
		return RegistrationResult{}, ErrNotFound
	}

	res := RegistrationResult{
		RootID:      rootID,
		Prefix:      prefix,
		Assignments: SortedAssignments(assignments),
		Changes:     PlanRegistrationChanges(records, assignments, prefix),
	}
	if !apply {
		return res, nil
	}

	if len(res.Changes) > 0 {
		if err := s.repo.ApplyRegistrations(ctx, res.Changes); err != nil {
			s.log.Error("apply registrations failed", map[string]any{"root_id": rootID, "prefix": prefix, "err": err})
			return RegistrationResult{}, fmt.Errorf("apply registrations: %w", err)
		}
	}
	res.Applied = true

	set, cleared := res.Counts()
	s.metrics.ObserveRegistration(set, cleared)
	s.log.Info("registrations applied", map[string]any{
		"root_id":  rootID,
		"prefix":   prefix,
		"assigned": len(res.Assignments),
		"set":      set,
		"cleared":  cleared,
	})
	return res, nil
}

// Compatibility puntúa el par a la fecha del reloj del servicio.
func (s *Service) Compatibility(ctx context.Context, aID, bID string) (Verdict, error) {
	aID, bID = strings.TrimSpace(aID), strings.TrimSpace(bID)
	if aID == "" || bID == "" || aID == bID {
		return Verdict{}, ErrInvalidInput
	}

	a, err := s.repo.GetAnimal(ctx, aID)
	if err != nil {
		return Verdict{}, err
	}
	b, err := s.repo.GetAnimal(ctx, bID)
	if err != nil {
		return Verdict{}, err
	}

	v := s.scorer.Score(a, b, s.now())
	s.metrics.ObserveVerdict(string(v.Label))
	s.log.Debug("compatibility scored", map[string]any{"a_id": aID, "b_id": bID, "score": v.Score, "label": string(v.Label)})
	return v, nil
}

func sortByBirth(list []Animal) {
	sort.SliceStable(list, func(i, j int) bool {
		return birthKey(list[i]).Before(birthKey(list[j]))
	})
}
