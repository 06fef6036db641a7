package main

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pet-pedigree/internal/adapters/apiclient"
	mem "pet-pedigree/internal/adapters/storage/memory"
	pg "pet-pedigree/internal/adapters/storage/postgres"
	"pet-pedigree/internal/domain/pedigree"
)

type ancestorRow struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Label      string     `json:"label"`
	Generation int        `json:"generation"`
	BirthDate  *time.Time `json:"birth_date,omitempty"`
}

type codeRow struct {
	AnimalID string `json:"animal_id"`
	Code     string `json:"code"`
}

type registrationSummary struct {
	RootID      string    `json:"root_id"`
	Prefix      string    `json:"prefix"`
	Applied     bool      `json:"applied"`
	Set         int       `json:"set"`
	Cleared     int       `json:"cleared"`
	Assignments []codeRow `json:"assignments"`
	Changes     []codeRow `json:"changes"`
}

// backend abstrae de dónde salen los animales: store local o API remota.
type backend interface {
	Ancestors(ctx context.Context, id string, maxGeneration int) ([]ancestorRow, error)
	Registrations(ctx context.Context, rootID, prefix string, apply bool) (registrationSummary, error)
	Compatibility(ctx context.Context, aID, bID string) (pedigree.Verdict, error)
	Close() error
}

func (g *globalFlags) open(ctx context.Context, prefix string) (backend, error) {
	if g.apiURL != "" {
		c, err := apiclient.New(g.apiURL, 0)
		if err != nil {
			return nil, err
		}
		return &remoteBackend{c: c}, nil
	}

	weights, err := pedigree.LoadWeights(g.scoringConfig)
	if err != nil {
		return nil, err
	}
	opts := pedigree.Options{Weights: weights, DefaultPrefix: prefix, Logger: g.logger()}

	if g.fromFile != "" {
		repo, err := loadFixture(g.fromFile)
		if err != nil {
			return nil, err
		}
		return &localBackend{
			svc: pedigree.NewService(mem.NewPedigreeRepo(repo), opts),
			afterApply: func() error {
				return saveFixture(ctx, g.fromFile, repo)
			},
		}, nil
	}

	if g.dsn == "" {
		return nil, errors.New("no data source: pass --dsn, --from-file or --api-url (or set DB_DSN)")
	}
	db, err := pg.Open(g.dsn)
	if err != nil {
		return nil, err
	}
	return &localBackend{svc: pedigree.NewService(pg.NewPedigreeRepo(db), opts), db: db}, nil
}

type localBackend struct {
	svc        *pedigree.Service
	db         *sql.DB
	afterApply func() error
}

func (b *localBackend) Ancestors(ctx context.Context, id string, maxGeneration int) ([]ancestorRow, error) {
	nodes, err := b.svc.Ancestors(ctx, id, maxGeneration)
	if err != nil {
		return nil, err
	}
	out := make([]ancestorRow, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, ancestorRow{ID: n.ID, Name: n.Name, Label: n.Label(), Generation: n.Generation, BirthDate: n.BirthDate})
	}
	return out, nil
}

func (b *localBackend) Registrations(ctx context.Context, rootID, prefix string, apply bool) (registrationSummary, error) {
	var (
		res pedigree.RegistrationResult
		err error
	)
	if apply {
		res, err = b.svc.AssignRegistrations(ctx, rootID, prefix)
	} else {
		res, err = b.svc.PreviewRegistrations(ctx, rootID, prefix)
	}
	if err != nil {
		return registrationSummary{}, err
	}
	if apply && b.afterApply != nil && len(res.Changes) > 0 {
		if err := b.afterApply(); err != nil {
			return registrationSummary{}, err
		}
	}

	set, cleared := res.Counts()
	out := registrationSummary{
		RootID:  res.RootID,
		Prefix:  res.Prefix,
		Applied: res.Applied,
		Set:     set,
		Cleared: cleared,
	}
	for _, a := range res.Assignments {
		out.Assignments = append(out.Assignments, codeRow{AnimalID: a.AnimalID, Code: a.Code})
	}
	for _, c := range res.Changes {
		out.Changes = append(out.Changes, codeRow{AnimalID: c.AnimalID, Code: c.Code})
	}
	return out, nil
}

func (b *localBackend) Compatibility(ctx context.Context, aID, bID string) (pedigree.Verdict, error) {
	return b.svc.Compatibility(ctx, aID, bID)
}

func (b *localBackend) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

type remoteBackend struct {
	c *apiclient.Client
}

func (b *remoteBackend) Ancestors(ctx context.Context, id string, maxGeneration int) ([]ancestorRow, error) {
	nodes, err := b.c.Ancestors(ctx, id, maxGeneration)
	if err != nil {
		return nil, err
	}
	out := make([]ancestorRow, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, ancestorRow{ID: n.ID, Name: n.Name, Label: n.Label, Generation: n.Generation, BirthDate: n.BirthDate})
	}
	return out, nil
}

func (b *remoteBackend) Registrations(ctx context.Context, rootID, prefix string, apply bool) (registrationSummary, error) {
	res, err := b.c.Registrations(ctx, rootID, prefix, apply)
	if err != nil {
		return registrationSummary{}, err
	}
	out := registrationSummary{
		RootID:  res.RootID,
		Prefix:  res.Prefix,
		Applied: res.Applied,
		Set:     res.Set,
		Cleared: res.Cleared,
	}
	for _, a := range res.Assignments {
		out.Assignments = append(out.Assignments, codeRow{AnimalID: a.AnimalID, Code: a.Code})
	}
	for _, c := range res.Changes {
		out.Changes = append(out.Changes, codeRow{AnimalID: c.AnimalID, Code: c.Code})
	}
	return out, nil
}

func (b *remoteBackend) Compatibility(ctx context.Context, aID, bID string) (pedigree.Verdict, error) {
	return b.c.Compatibility(ctx, aID, bID)
}

func (b *remoteBackend) Close() error { return nil }
