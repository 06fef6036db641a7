package router

import (
	"database/sql"
	"net/http"

	_ "pet-pedigree/docs"
	mem "pet-pedigree/internal/adapters/storage/memory"
	pg "pet-pedigree/internal/adapters/storage/postgres"
	"pet-pedigree/internal/domain/pedigree"
	"pet-pedigree/internal/domain/pets"
	"pet-pedigree/internal/middleware"
	"pet-pedigree/internal/platform/logger"
	"pet-pedigree/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger  logger.Logger    // nil = nop
	Metrics *metrics.Metrics // nil = se crea uno propio

	Weights       pedigree.Weights // zero = defaults
	LineagePrefix string
}

func NewRouter(opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(opts.Logger, opts.Metrics))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var (
		petRepo      pets.Repository
		pedigreeRepo pedigree.Repository
	)

	if opts.DB != nil {
		petRepo = pg.NewPetsRepo(opts.DB)
		pedigreeRepo = pg.NewPedigreeRepo(opts.DB)
	} else {
		memPets := mem.NewPetRepo()
		petRepo = memPets
		pedigreeRepo = mem.NewPedigreeRepo(memPets)
	}

	// Services por módulo
	petsSvc := pets.NewService(petRepo)
	pedigreeSvc := pedigree.NewService(pedigreeRepo, pedigree.Options{
		Weights:       opts.Weights,
		DefaultPrefix: opts.LineagePrefix,
		Logger:        opts.Logger.With(map[string]any{"module": "pedigree"}),
		Metrics:       opts.Metrics,
	})

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc)
	pedigree.RegisterRoutes(r, pedigreeSvc)

	return r
}
