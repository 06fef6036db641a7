package pedigree

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/pets/{petID}/ancestors", ancestorsHandler(svc))
	r.Get("/pets/{petID}/offspring", offspringHandler(svc))
	r.Get("/pets/{petID}/compatibility/{otherID}", pairCompatibilityHandler(svc))

	r.Route("/lineages/{rootID}/registrations", func(lr chi.Router) {
		lr.Get("/", previewRegistrationsHandler(svc))
		lr.Post("/", assignRegistrationsHandler(svc))
	})

	r.Post("/compatibility", compatibilityHandler(svc))
}

// ancestorResponse es un nodo del árbol de ancestros.
type ancestorResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Role       Role       `json:"role" enums:"SELF,SIRE,DAM"`
	Line       Line       `json:"line,omitempty" enums:"paternal,maternal"`
	Label      string     `json:"label"`
	Generation int        `json:"generation"`
	BirthDate  *time.Time `json:"birth_date,omitempty"`
}

type offspringResponse struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Sex              string     `json:"sex"`
	BirthDate        *time.Time `json:"birth_date,omitempty"`
	FatherID         string     `json:"father_id,omitempty"`
	MotherID         string     `json:"mother_id,omitempty"`
	RegistrationCode string     `json:"registration_code,omitempty"`
}

type assignRegistrationsRequest struct {
	Prefix string `json:"prefix"`
}

type assignmentResponse struct {
	AnimalID   string `json:"animal_id"`
	Generation int    `json:"generation"`
	Sequence   int    `json:"sequence"`
	Code       string `json:"code"`
}

type changeResponse struct {
	AnimalID string `json:"animal_id"`
	Code     string `json:"code"` // "" = código limpiado
}

// registrationsResponse resume un recálculo (preview o aplicado).
type registrationsResponse struct {
	RootID      string               `json:"root_id"`
	Prefix      string               `json:"prefix"`
	Applied     bool                 `json:"applied"`
	Set         int                  `json:"set"`
	Cleared     int                  `json:"cleared"`
	Assignments []assignmentResponse `json:"assignments"`
	Changes     []changeResponse     `json:"changes"`
}

type compatibilityRequest struct {
	AID string `json:"a_id"`
	BID string `json:"b_id"`
}

// ancestorsHandler godoc
// @Summary Ancestros de un animal
// @Description Devuelve el animal (generación 0) y sus ancestros por generación. Cada ancestro aparece una sola vez aunque sea alcanzable por ambos lados. Padres desconocidos simplemente cortan la rama.
// @Tags pedigree
// @Produce json
// @Param petID path string true "ID del animal"
// @Param max_generation query int false "Generación máxima (0 = todas)"
// @Success 200 {array} ancestorResponse
// @Failure 400 {string} string "max_generation inválido"
// @Failure 404 {string} string "animal not found"
// @Router /pets/{petID}/ancestors [get]
func ancestorsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		maxGen := 0
		if v := strings.TrimSpace(r.URL.Query().Get("max_generation")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				http.Error(w, "max_generation must be a non-negative integer", http.StatusBadRequest)
				return
			}
			maxGen = n
		}

		nodes, err := svc.Ancestors(r.Context(), chi.URLParam(r, "petID"), maxGen)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]ancestorResponse, 0, len(nodes))
		for _, n := range nodes {
			out = append(out, ancestorResponse{
				ID:         n.ID,
				Name:       n.Name,
				Role:       n.Role,
				Line:       n.Line,
				Label:      n.Label(),
				Generation: n.Generation,
				BirthDate:  n.BirthDate,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// offspringHandler godoc
// @Summary Hijos directos
// @Tags pedigree
// @Produce json
// @Param petID path string true "ID del animal"
// @Success 200 {array} offspringResponse
// @Failure 404 {string} string "animal not found"
// @Router /pets/{petID}/offspring [get]
func offspringHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kids, err := svc.Offspring(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]offspringResponse, 0, len(kids))
		for _, k := range kids {
			out = append(out, offspringResponse{
				ID:               k.ID,
				Name:             k.Name,
				Sex:              k.Sex,
				BirthDate:        k.BirthDate,
				FatherID:         k.FatherID,
				MotherID:         k.MotherID,
				RegistrationCode: k.RegistrationCode,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// previewRegistrationsHandler godoc
// @Summary Previsualizar códigos de registro
// @Description Calcula los códigos del linaje de rootID sin escribir nada.
// @Tags lineages
// @Produce json
// @Param rootID path string true "ID del animal raíz"
// @Param prefix query string false "Prefijo del linaje (default LINEAGE_PREFIX)"
// @Success 200 {object} registrationsResponse
// @Failure 400 {string} string "prefijo inválido"
// @Failure 404 {string} string "animal not found"
// @Router /lineages/{rootID}/registrations [get]
func previewRegistrationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.PreviewRegistrations(r.Context(), chi.URLParam(r, "rootID"), r.URL.Query().Get("prefix"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRegistrationsResponse(res))
	}
}

// assignRegistrationsHandler godoc
// @Summary Asignar códigos de registro
// @Description Recalcula todo el linaje de rootID y aplica solo las diferencias: códigos nuevos o distintos, y limpieza de códigos del mismo prefijo que ya no corresponden.
// @Tags lineages
// @Accept json
// @Produce json
// @Param rootID path string true "ID del animal raíz"
// @Param payload body assignRegistrationsRequest false "Prefijo del linaje"
// @Success 200 {object} registrationsResponse
// @Failure 400 {string} string "invalid json / prefijo inválido"
// @Failure 404 {string} string "animal not found"
// @Router /lineages/{rootID}/registrations [post]
func assignRegistrationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req assignRegistrationsRequest
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		res, err := svc.AssignRegistrations(r.Context(), chi.URLParam(r, "rootID"), req.Prefix)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRegistrationsResponse(res))
	}
}

// pairCompatibilityHandler godoc
// @Summary Compatibilidad de cría entre dos animales
// @Tags compatibility
// @Produce json
// @Param petID path string true "ID del primer animal"
// @Param otherID path string true "ID del segundo animal"
// @Success 200 {object} Verdict
// @Failure 400 {string} string "ids inválidos"
// @Failure 404 {string} string "animal not found"
// @Router /pets/{petID}/compatibility/{otherID} [get]
func pairCompatibilityHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.Compatibility(r.Context(), chi.URLParam(r, "petID"), chi.URLParam(r, "otherID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

// compatibilityHandler godoc
// @Summary Compatibilidad de cría (body)
// @Tags compatibility
// @Accept json
// @Produce json
// @Param payload body compatibilityRequest true "IDs del par"
// @Success 200 {object} Verdict
// @Failure 400 {string} string "invalid json / ids inválidos"
// @Failure 404 {string} string "animal not found"
// @Router /compatibility [post]
func compatibilityHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req compatibilityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		v, err := svc.Compatibility(r.Context(), req.AID, req.BID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

func toRegistrationsResponse(res RegistrationResult) registrationsResponse {
	set, cleared := res.Counts()
	out := registrationsResponse{
		RootID:      res.RootID,
		Prefix:      res.Prefix,
		Applied:     res.Applied,
		Set:         set,
		Cleared:     cleared,
		Assignments: make([]assignmentResponse, 0, len(res.Assignments)),
		Changes:     make([]changeResponse, 0, len(res.Changes)),
	}
	for _, a := range res.Assignments {
		out.Assignments = append(out.Assignments, assignmentResponse(a))
	}
	for _, c := range res.Changes {
		out.Changes = append(out.Changes, changeResponse{AnimalID: c.AnimalID, Code: c.Code})
	}
	return out
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "animal not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos (pets/pedigree).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
