package router

import (
	"database/sql"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "livestock-pens/docs"
	mem "livestock-pens/internal/adapters/storage/memory"
	pg "livestock-pens/internal/adapters/storage/postgres"
	"livestock-pens/internal/domain/animalevents"
	"livestock-pens/internal/domain/animals"
	"livestock-pens/internal/domain/assignments"
	"livestock-pens/internal/domain/breeding"
	"livestock-pens/internal/domain/movements"
	"livestock-pens/internal/domain/penfunctions"
	"livestock-pens/internal/domain/penops"
	"livestock-pens/internal/domain/pens"
	"livestock-pens/internal/middleware"
	"livestock-pens/internal/platform/logger"
	"livestock-pens/internal/ports/auth"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.ActorContext(opts.AuthVerifier))
	r.Use(middleware.AccessLog(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		animalRepo     animals.Repository
		penRepo        pens.Repository
		assignmentRepo assignments.Repository
		periodRepo     penfunctions.Repository
		eventRepo      animalevents.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres unavailable, falling back to in-memory", "error", err.Error())
			}
		}
	}

	if db != nil {
		animalRepo = pg.NewAnimalsRepo(db)
		penRepo = pg.NewPensRepo(db)
		assignmentRepo = pg.NewAssignmentsRepo(db)
		periodRepo = pg.NewPenFunctionsRepo(db)
		eventRepo = pg.NewAnimalEventsRepo(db)
	} else {
		animalRepo = mem.NewAnimalsRepo()
		penRepo = mem.NewPensRepo()
		assignmentRepo = mem.NewAssignmentsRepo()
		periodRepo = mem.NewPenFunctionsRepo()
		eventRepo = mem.NewAnimalEventsRepo()
	}

	// Services por módulo, en orden de dependencia
	animalsSvc := animals.NewService(animalRepo)
	pensSvc := pens.NewService(penRepo)
	assignmentsSvc := assignments.NewService(assignmentRepo)
	eventsSvc := animalevents.NewService(eventRepo)
	periodsSvc := penfunctions.NewService(periodRepo, assignmentsSvc, log)

	coordinator := movements.NewCoordinator(assignmentsSvc, animalsSvc, pensSvc, periodsSvc, eventsSvc, log)
	snapshotBuilder := breeding.NewSnapshotBuilder(assignmentsSvc, animalsSvc)
	reconciler := breeding.NewReconciler(periodsSvc, assignmentsSvc, animalsSvc, eventsSvc, coordinator, log)
	editor := penops.NewEditor(periodsSvc, snapshotBuilder)

	// Rutas por módulo
	animals.RegisterRoutes(r, animalsSvc)
	pens.RegisterRoutes(r, pensSvc)
	assignments.RegisterRoutes(r, assignmentsSvc)
	animalevents.RegisterRoutes(r, eventsSvc)
	penfunctions.RegisterRoutes(r, periodsSvc)
	movements.RegisterRoutes(r, coordinator)
	breeding.RegisterRoutes(r, reconciler)
	penops.RegisterRoutes(r, editor)

	return r
}
