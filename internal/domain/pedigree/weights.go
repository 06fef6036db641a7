package pedigree

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Pesos del score compuesto y penalizaciones planas.
const (
	WeightGeneticRisk = 0.50
	WeightHealth      = 0.25
	WeightBreed       = 0.12
	WeightAge         = 0.08
	WeightColor       = 0.05

	PenaltyInbreeding      = 30
	PenaltyLinebreeding    = 12
	PenaltyUnknownPedigree = 6
)

type Weights struct {
	GeneticRisk float64 `toml:"genetic_risk"`
	Health      float64 `toml:"health"`
	Breed       float64 `toml:"breed"`
	Age         float64 `toml:"age"`
	Color       float64 `toml:"color"`

	InbreedingPenalty      float64 `toml:"inbreeding_penalty"`
	LinebreedingPenalty    float64 `toml:"linebreeding_penalty"`
	UnknownPedigreePenalty float64 `toml:"unknown_pedigree_penalty"`
}

func DefaultWeights() Weights {
	return Weights{
		GeneticRisk:            WeightGeneticRisk,
		Health:                 WeightHealth,
		Breed:                  WeightBreed,
		Age:                    WeightAge,
		Color:                  WeightColor,
		InbreedingPenalty:      PenaltyInbreeding,
		LinebreedingPenalty:    PenaltyLinebreeding,
		UnknownPedigreePenalty: PenaltyUnknownPedigree,
	}
}

// LoadWeights lee un TOML con la tabla [scoring]. Las claves ausentes
// conservan el valor por defecto.
func LoadWeights(path string) (Weights, error) {
	w := DefaultWeights()
	if path == "" {
		return w, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Weights{}, fmt.Errorf("failed to read scoring config '%s': %w", path, err)
	}
	return ParseWeights(data)
}

func ParseWeights(data []byte) (Weights, error) {
	doc := struct {
		Scoring Weights `toml:"scoring"`
	}{Scoring: DefaultWeights()}

	if err := toml.Unmarshal(data, &doc); err != nil {
		return Weights{}, fmt.Errorf("failed to parse scoring TOML: %w", err)
	}
	if err := doc.Scoring.Validate(); err != nil {
		return Weights{}, err
	}
	return doc.Scoring, nil
}

func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"genetic_risk":             w.GeneticRisk,
		"health":                   w.Health,
		"breed":                    w.Breed,
		"age":                      w.Age,
		"color":                    w.Color,
		"inbreeding_penalty":       w.InbreedingPenalty,
		"linebreeding_penalty":     w.LinebreedingPenalty,
		"unknown_pedigree_penalty": w.UnknownPedigreePenalty,
	} {
		if v < 0 {
			return fmt.Errorf("scoring weight %s must be >= 0, got %v", name, v)
		}
	}
	return nil
}
