package pedigree

import "time"

// Animal es el snapshot de solo lectura que consume el núcleo.
// IDs vacíos en FatherID/MotherID significan pedigree desconocido.
type Animal struct {
	ID   string
	Name string

	Species string
	Sex     string // male, female, unknown

	BirthDate *time.Time

	FatherID string
	MotherID string

	Breed           string
	Color           string
	HealthCertified bool

	// Código vigente (lo que está persistido), usado para el diff-apply.
	RegistrationCode string
}

// ParentIDs devuelve los ids de padres conocidos, sin duplicados.
func (a Animal) ParentIDs() []string {
	out := make([]string, 0, 2)
	if a.FatherID != "" {
		out = append(out, a.FatherID)
	}
	if a.MotherID != "" && a.MotherID != a.FatherID {
		out = append(out, a.MotherID)
	}
	return out
}

type Role string

const (
	RoleSelf Role = "SELF"
	RoleSire Role = "SIRE"
	RoleDam  Role = "DAM"
)

// Line indica por qué lado del animal consultado se llegó al ancestro.
type Line string

const (
	LineNone     Line = ""
	LinePaternal Line = "paternal"
	LineMaternal Line = "maternal"
)

type AncestorNode struct {
	ID         string
	Name       string
	Role       Role
	Line       Line
	Generation int
	BirthDate  *time.Time
}

type RegistrationAssignment struct {
	AnimalID   string
	Generation int
	Sequence   int
	Code       string
}

// RegistrationChange es una escritura pendiente. Code vacío = limpiar el código.
type RegistrationChange struct {
	AnimalID   string
	Code       string
	Generation int
	Sequence   int
}

type Label string

const (
	LabelIncompatible Label = "Incompatible"
	LabelRisk         Label = "Risk"
	LabelFair         Label = "Fair"
	LabelGood         Label = "Good"
	LabelExcellent    Label = "Excellent"
	LabelPerfectMatch Label = "Perfect Match"
)

type BreedingType string

const (
	BreedingNone         BreedingType = "none"
	BreedingOutcross     BreedingType = "outcross"
	BreedingLinebreeding BreedingType = "linebreeding"
	BreedingInbreeding   BreedingType = "inbreeding"
)

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

type Breakdown struct {
	GeneticRisk int `json:"genetic_risk"`
	Breed       int `json:"breed"`
	Health      int `json:"health"`
	Color       int `json:"color"`
	Age         int `json:"age"`
}

type Breeding struct {
	Type      BreedingType `json:"type"`
	RiskLevel RiskLevel    `json:"risk_level"`
	Warnings  []string     `json:"warnings"`
	Pros      []string     `json:"pros"`
	Cons      []string     `json:"cons"`
	Summary   string       `json:"summary"`
}

// Verdict es el resultado de ScoreCompatibility. Nunca se persiste.
type Verdict struct {
	Score     int       `json:"score"`
	Label     Label     `json:"label"`
	Breakdown Breakdown `json:"breakdown"`
	Breeding  Breeding  `json:"breeding"`
	Advice    string    `json:"advice"`
}
