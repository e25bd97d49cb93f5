package uiapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/awaistahir/ecohome/internal/config"
	"github.com/awaistahir/ecohome/internal/engine"
	"github.com/awaistahir/ecohome/internal/store"
	"github.com/awaistahir/ecohome/internal/weather"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the thin HTTP caller around the estimation core: it resolves
// catalog and tariff configuration, invokes the pure pipeline, and serializes
// the result. It holds no estimation state of its own.
type Server struct {
	store *store.Store
	base  engine.BaseLoad
	cfg   *config.Config
}

func NewServer(store *store.Store, base engine.BaseLoad, cfg *config.Config) *Server {
	return &Server{
		store: store,
		base:  base,
		cfg:   cfg,
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// CORS for local development
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Post("/estimate", s.handleEstimate)
		r.Get("/catalog", s.handleGetCatalog)
		r.Post("/catalog", s.handleSaveAppliance)
		r.Put("/catalog/{name}", s.handleUpdateAppliance)
		r.Delete("/catalog/{name}", s.handleDeleteAppliance)
		r.Get("/tariffs", s.handleListTariffs)
		r.Get("/tariffs/{name}", s.handleGetTariff)
		r.Put("/tariffs/{name}", s.handleSaveTariff)
		r.Post("/tariffs/{name}/activate", s.handleActivateTariff)
		r.Get("/weather", s.handleGetWeather)
	})

	return r
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"version":  "1.0.0",
		"timezone": s.cfg.Timezone,
	})
}

// ApplianceState toggles one catalog entry for a single estimation. A nil
// DutyCycle keeps the catalog's stored duty cycle.
type ApplianceState struct {
	Name      string
	Active    bool
	DutyCycle *float64
}

type EstimateRequest struct {
	Weather       engine.WeatherSample
	Appliances    []ApplianceState
	DurationHours float64
	Schedule      string // named schedule; empty uses the active one
	Monthly       bool   // project over peak_hours_per_day x 30 instead of DurationHours
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var req EstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	specs, err := s.resolveCatalog(req.Appliances)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	schedule, err := s.resolveSchedule(req.Schedule)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	duration := req.DurationHours
	if req.Monthly {
		duration = s.cfg.PeakHoursPerDay * 30
	} else if duration == 0 {
		duration = 1
	}

	result, err := engine.Estimate(s.base, engine.Request{
		Weather:       req.Weather,
		Appliances:    specs,
		DurationHours: duration,
		Schedule:      *schedule,
	})
	if err != nil {
		if errors.Is(err, engine.ErrInvalidApplianceSpec) || errors.Is(err, engine.ErrInvalidBillingInput) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// resolveCatalog loads the stored catalog and applies per-request states
func (s *Server) resolveCatalog(states []ApplianceState) ([]engine.ApplianceSpec, error) {
	specs, err := s.store.GetAppliances()
	if err != nil {
		return nil, err
	}

	byName := make(map[string]int, len(specs))
	for i, spec := range specs {
		byName[spec.Name] = i
	}

	for _, state := range states {
		i, ok := byName[state.Name]
		if !ok {
			continue
		}
		specs[i].Active = state.Active
		if state.DutyCycle != nil {
			specs[i].DutyCycle = *state.DutyCycle
		}
	}

	return specs, nil
}

// resolveSchedule looks up a named schedule, or the active one when unnamed
func (s *Server) resolveSchedule(name string) (*engine.TariffSchedule, error) {
	if name != "" {
		return s.store.GetSchedule(name)
	}
	return s.store.ActiveSchedule()
}

func (s *Server) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	specs, err := s.store.GetAppliances()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, specs)
}

func (s *Server) handleSaveAppliance(w http.ResponseWriter, r *http.Request) {
	var spec engine.ApplianceSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if spec.DutyCycle == 0 {
		spec.DutyCycle = 1.0
	}

	if err := spec.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.SaveAppliance(spec); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, spec)
}

func (s *Server) handleUpdateAppliance(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var spec engine.ApplianceSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	spec.Name = name
	if spec.DutyCycle == 0 {
		spec.DutyCycle = 1.0
	}
	if err := spec.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.SaveAppliance(spec); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, spec)
}

func (s *Server) handleDeleteAppliance(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.store.DeleteAppliance(name); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "deleted", "name": name})
}

func (s *Server) handleListTariffs(w http.ResponseWriter, r *http.Request) {
	schedules, err := s.store.ListSchedules()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, schedules)
}

func (s *Server) handleGetTariff(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	schedule, err := s.store.GetSchedule(name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "schedule not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, schedule)
}

func (s *Server) handleSaveTariff(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var schedule engine.TariffSchedule
	if err := json.NewDecoder(r.Body).Decode(&schedule); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	schedule.Name = name
	if err := schedule.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.SaveSchedule(schedule); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, schedule)
}

func (s *Server) handleActivateTariff(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.store.SetActiveSchedule(name); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "activated", "name": name})
}

func (s *Server) handleGetWeather(w http.ResponseWriter, r *http.Request) {
	client := weather.NewClient(s.cfg.Latitude, s.cfg.Longitude)
	sample, err := client.Current(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch weather: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, sample)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
