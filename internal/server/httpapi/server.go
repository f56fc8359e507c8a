// Package httpapi exposes the REST surface of the Reminisce server. Handlers
// decode requests, delegate to the service layer and translate sentinel
// errors to HTTP status codes; no business logic lives here.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/reminisce-care/reminisce/internal/logging"
	"github.com/reminisce-care/reminisce/internal/server/models"
	"github.com/reminisce-care/reminisce/internal/server/services"
)

// sessionCookie carries the opaque session token.
const sessionCookie = "reminisce_session"

type identityService interface {
	Register(ctx context.Context, params services.RegisterParams) (*models.Account, *models.Session, error)
	Login(ctx context.Context, username, password string) (*models.Account, *models.Session, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*models.Account, error)
	PatientsOf(ctx context.Context, caller *models.Account) ([]*models.Account, error)
}

type memoryService interface {
	Create(ctx context.Context, caller *models.Account, requestedPatientID int64, imageData, description string) (*models.Memory, error)
	List(ctx context.Context, caller *models.Account, requestedPatientID int64) ([]*models.Memory, error)
	Answer(ctx context.Context, caller *models.Account, memoryID int64, answer string) (*models.MemoryAnswer, error)
	Answers(ctx context.Context, caller *models.Account, memoryID int64) ([]*models.MemoryAnswer, error)
}

type routineService interface {
	Create(ctx context.Context, caller *models.Account, requestedPatientID int64, params services.RoutineParams) (*models.Routine, error)
	List(ctx context.Context, caller *models.Account, requestedPatientID int64) ([]*models.Routine, error)
	Toggle(ctx context.Context, caller *models.Account, id int64) (*models.Routine, error)
}

type medicationService interface {
	Create(ctx context.Context, caller *models.Account, requestedPatientID int64, params services.MedicationParams) (*models.Medication, error)
	List(ctx context.Context, caller *models.Account, requestedPatientID int64) ([]*models.Medication, error)
	Toggle(ctx context.Context, caller *models.Account, id int64) (*models.Medication, error)
}

type emergencyService interface {
	Trigger(ctx context.Context, caller *models.Account) (*models.EmergencyLog, *services.CaretakerContact, error)
	List(ctx context.Context, caller *models.Account, requestedPatientID int64) ([]*models.EmergencyLog, error)
	Resolve(ctx context.Context, caller *models.Account, id int64) (*models.EmergencyLog, error)
}

type mediaService interface {
	UploadImage(ctx context.Context, imageData string) (string, error)
	Synthesize(ctx context.Context, text string) (string, error)
}

// Server bundles the services behind the REST endpoints.
type Server struct {
	identity    identityService
	memories    memoryService
	routines    routineService
	medications medicationService
	emergency   emergencyService
	media       mediaService
	logger      logging.Logger
}

func NewServer(identity identityService, memories memoryService, routines routineService,
	medications medicationService, emergency emergencyService, media mediaService,
	logger logging.Logger) *Server {
	return &Server{
		identity:    identity,
		memories:    memories,
		routines:    routines,
		medications: medications,
		emergency:   emergency,
		media:       media,
		logger:      logger,
	}
}

// Routes builds the router. Everything under /api except register/login
// requires a valid session.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.withAccount)

			r.Post("/logout", s.handleLogout)
			r.Get("/user", s.handleCurrentUser)
			r.Get("/user/patients", s.handlePatients)

			r.Get("/memories", s.handleMemoryList)
			r.Post("/memories", s.handleMemoryCreate)
			r.Post("/memories/{id}/answer", s.handleMemoryAnswer)
			r.Get("/memories/{id}/answers", s.handleMemoryAnswers)

			r.Get("/routines", s.handleRoutineList)
			r.Post("/routines", s.handleRoutineCreate)
			r.Patch("/routines/{id}/toggle", s.handleRoutineToggle)

			r.Get("/medications", s.handleMedicationList)
			r.Post("/medications", s.handleMedicationCreate)
			r.Patch("/medications/{id}/toggle", s.handleMedicationToggle)

			r.Get("/emergency", s.handleEmergencyList)
			r.Post("/emergency", s.handleEmergencyTrigger)
			r.Patch("/emergency/{id}/resolve", s.handleEmergencyResolve)

			r.Post("/upload-image", s.handleUploadImage)
			r.Post("/text-to-speech", s.handleTextToSpeech)
		})
	})

	return r
}
