package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
	})
}

// createPetRequest es el cuerpo para registrar un animal.
type createPetRequest struct {
	Name            string `json:"name"`
	Species         string `json:"species"`
	Breed           string `json:"breed"`
	Sex             string `json:"sex" enums:"male,female,unknown"`
	Color           string `json:"color"`
	BirthDate       string `json:"birth_date"` // YYYY-MM-DD opcional
	Microchip       string `json:"microchip"`
	FatherID        string `json:"father_id"`
	MotherID        string `json:"mother_id"`
	HealthCertified bool   `json:"health_certified"`
	Notes           string `json:"notes"`
}

// petResponse representa un animal devuelto por la API.
type petResponse struct {
	ID                     string     `json:"id"`
	Name                   string     `json:"name"`
	Species                Species    `json:"species"`
	Breed                  string     `json:"breed"`
	Sex                    Sex        `json:"sex"`
	Color                  string     `json:"color"`
	BirthDate              *time.Time `json:"birth_date,omitempty"`
	Microchip              string     `json:"microchip"`
	FatherID               string     `json:"father_id,omitempty"`
	MotherID               string     `json:"mother_id,omitempty"`
	HealthCertified        bool       `json:"health_certified"`
	RegistrationCode       string     `json:"registration_code,omitempty"`
	RegistrationGeneration int        `json:"registration_generation,omitempty"`
	RegistrationSequence   int        `json:"registration_sequence,omitempty"`
	Notes                  string     `json:"notes"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name            *string `json:"name"`
	Species         *string `json:"species"`
	Breed           *string `json:"breed"`
	Sex             *string `json:"sex"`
	Color           *string `json:"color"`
	Microchip       *string `json:"microchip"`
	HealthCertified *bool   `json:"health_certified"`
	Notes           *string `json:"notes"`
	// birth_date, father_id y mother_id aceptan null para limpiar (ver handler).
	BirthDate *string `json:"birth_date"`
	FatherID  *string `json:"father_id"`
	MotherID  *string `json:"mother_id"`
}

// createPetHandler godoc
// @Summary Registrar animal
// @Description Crea un animal. father_id/mother_id son opcionales (pedigree desconocido) y se validan: deben existir, ser de la misma especie, con sexo coherente y sin ciclos.
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body createPetRequest true "Datos del animal; birth_date en formato YYYY-MM-DD"
// @Success 201 {object} petResponse
// @Failure 400 {string} string "invalid json / birth_date inválido / reglas de linaje"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse("2006-01-02", req.BirthDate)
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			bd = &t
		}

		p, err := svc.Create(r.Context(), CreateInput{
			Name:            req.Name,
			Species:         req.Species,
			Breed:           req.Breed,
			Sex:             req.Sex,
			Color:           req.Color,
			BirthDate:       bd,
			Microchip:       req.Microchip,
			FatherID:        req.FatherID,
			MotherID:        req.MotherID,
			HealthCertified: req.HealthCertified,
			Notes:           req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// listPetsHandler godoc
// @Summary Listar animales
// @Tags pets
// @Produce json
// @Param species query string false "Filtrar por especie"
// @Param sex query string false "Filtrar por sexo" Enums(male, female, unknown)
// @Success 200 {array} petResponse
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, err := svc.List(r.Context(), ListFilter{
			Species: Species(strings.ToLower(strings.TrimSpace(q.Get("species")))),
			Sex:     Sex(strings.ToLower(strings.TrimSpace(q.Get("sex")))),
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
// @Summary Obtener animal
// @Tags pets
// @Produce json
// @Param petID path string true "ID del animal"
// @Success 200 {object} petResponse
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Actualizar animal
// @Description PATCH parcial. birth_date, father_id y mother_id aceptan null para limpiar el valor.
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "ID del animal"
// @Param payload body updatePetRequest true "Campos a modificar"
// @Success 200 {object} petResponse
// @Failure 400 {string} string "invalid json / reglas de linaje"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [patch]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")

		// Para soportar null en campos nullable, decodificamos a map primero
		// y así detectamos presencia del campo.
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var req updatePetRequest
		{
			// Re-marshal a JSON y decode al struct para reutilizar tags
			b, _ := json.Marshal(raw)
			dec := json.NewDecoder(strings.NewReader(string(b)))
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		in := UpdateProfileInput{
			Name:            req.Name,
			Species:         req.Species,
			Breed:           req.Breed,
			Sex:             req.Sex,
			Color:           req.Color,
			Microchip:       req.Microchip,
			HealthCertified: req.HealthCertified,
			Notes:           req.Notes,
		}

		for key, dst := range map[string]*PatchString{
			"birth_date": &in.BirthDate,
			"father_id":  &in.FatherID,
			"mother_id":  &in.MotherID,
		} {
			v, exists := raw[key]
			if !exists {
				continue
			}
			dst.Present = true
			if string(v) == "null" {
				continue
			}
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				http.Error(w, key+" must be a string or null", http.StatusBadRequest)
				return
			}
			dst.Value = &s
		}

		updated, err := svc.UpdateProfile(r.Context(), petID, in)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidParent):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:                     p.ID,
		Name:                   p.Name,
		Species:                p.Species,
		Breed:                  p.Breed,
		Sex:                    p.Sex,
		Color:                  p.Color,
		BirthDate:              p.BirthDate,
		Microchip:              p.Microchip,
		FatherID:               p.FatherID,
		MotherID:               p.MotherID,
		HealthCertified:        p.HealthCertified,
		RegistrationCode:       p.RegistrationCode,
		RegistrationGeneration: p.RegistrationGeneration,
		RegistrationSequence:   p.RegistrationSequence,
		Notes:                  p.Notes,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos (pets/pedigree)
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
