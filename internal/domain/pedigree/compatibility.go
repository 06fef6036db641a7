package pedigree

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Sub-scores fijos de la heurística.
const (
	geneticParentChild   = 0
	geneticFullSiblings  = 10
	geneticHalfSiblings  = 40
	geneticUnknown       = 70
	geneticOutcross      = 100
	geneticNotApplicable = 100
	breedExact           = 100
	breedSimilar         = 70
	breedDifferent       = 20
	healthBase           = 50
	healthPerCertified   = 25
	colorBaseline        = 90 // sin modelo genético de color
	ageScorePrime        = 100
	ageScoreDefault      = 80
	ageScoreSenior       = 50
	ageScoreTooYoung     = 0
	agePrimeMin          = 2
	agePrimeMax          = 6
	ageMinBreeding       = 1
	ageSeniorAbove       = 8
)

// Scorer calcula veredictos con una tabla de pesos fija. Es inmutable y no
// guarda estado entre llamadas.
type Scorer struct {
	weights Weights
}

func NewScorer(w Weights) Scorer {
	return Scorer{weights: w}
}

// ScoreCompatibility usa DefaultWeights. asOf es la fecha de referencia para
// calcular edades, así el resultado depende solo de los argumentos.
func ScoreCompatibility(a, b Animal, asOf time.Time) Verdict {
	return NewScorer(DefaultWeights()).Score(a, b, asOf)
}

// verdictBuilder acumula textos en orden de evaluación.
type verdictBuilder struct {
	warnings []string
	pros     []string
	cons     []string
}

func (vb *verdictBuilder) warn(msg string) { vb.warnings = append(vb.warnings, msg) }
func (vb *verdictBuilder) pro(msg string)  { vb.pros = append(vb.pros, msg) }
func (vb *verdictBuilder) con(msg string)  { vb.cons = append(vb.cons, msg) }

func (s Scorer) Score(a, b Animal, asOf time.Time) Verdict {
	if !sameSpecies(a.Species, b.Species) {
		msg := fmt.Sprintf("Different species (%s vs %s): breeding is not possible.", a.Species, b.Species)
		return incompatible(Breakdown{}, msg)
	}
	if sameSex(a.Sex, b.Sex) {
		msg := "Both animals have the same sex: breeding is not possible."
		return incompatible(Breakdown{GeneticRisk: geneticNotApplicable}, msg)
	}

	var vb verdictBuilder

	rel := relatedness(a, b)
	for _, w := range rel.warnings {
		vb.warn(w)
	}
	for _, c := range rel.cons {
		vb.con(c)
	}
	if rel.pro != "" {
		vb.pro(rel.pro)
	}

	bd := Breakdown{
		GeneticRisk: rel.risk,
		Breed:       breedScore(a, b, &vb),
		Health:      healthScore(a, b, &vb),
		Color:       colorBaseline,
	}
	age := ageScore(a, b, asOf, &vb)
	bd.Age = age.score

	breeding := Breeding{
		Type:      rel.kind,
		RiskLevel: rel.level,
		Warnings:  nonNil(vb.warnings),
		Pros:      nonNil(vb.pros),
		Cons:      nonNil(vb.cons),
	}

	if rel.risk == geneticParentChild {
		breeding.Summary = "Inbreeding (high risk): direct parent and offspring."
		return Verdict{
			Score:     0,
			Label:     LabelRisk,
			Breakdown: bd,
			Breeding:  breeding,
			Advice:    "Do not breed a parent with its own offspring.",
		}
	}

	score := s.composite(bd, rel)
	label := labelFor(score, bd.GeneticRisk)

	advice := adviceFor(label)
	if age.tooYoung {
		advice = "Too young to breed: both animals must be at least 1 year old before pairing."
	}
	if age.senior {
		advice += " Age risk: an animal older than 8 years is involved, consult a veterinarian first."
	}

	breeding.Summary = fmt.Sprintf("%s (%s risk). Score %d/100 (%s).", titleCase(string(rel.kind)), rel.level, score, label)

	return Verdict{
		Score:     score,
		Label:     label,
		Breakdown: bd,
		Breeding:  breeding,
		Advice:    advice,
	}
}

func (s Scorer) composite(bd Breakdown, rel relation) int {
	w := s.weights
	total := float64(bd.GeneticRisk)*w.GeneticRisk +
		float64(bd.Health)*w.Health +
		float64(bd.Breed)*w.Breed +
		float64(bd.Age)*w.Age +
		float64(bd.Color)*w.Color

	switch rel.kind {
	case BreedingInbreeding:
		total -= w.InbreedingPenalty
	case BreedingLinebreeding:
		total -= w.LinebreedingPenalty
	}
	if rel.unknownPedigree {
		total -= w.UnknownPedigreePenalty
	}

	total = math.Max(0, math.Min(100, total))
	return int(math.Round(total))
}

// labelFor: por debajo de 40 el "Risk" se reserva para scores bajos causados
// por parentesco (genetic_risk < 40); el resto es Incompatible.
func labelFor(score, geneticRisk int) Label {
	switch {
	case score >= 90:
		return LabelPerfectMatch
	case score >= 80:
		return LabelExcellent
	case score >= 60:
		return LabelGood
	case score >= 40:
		return LabelFair
	case geneticRisk < 40:
		return LabelRisk
	default:
		return LabelIncompatible
	}
}

func adviceFor(l Label) string {
	switch l {
	case LabelPerfectMatch:
		return "Outstanding pairing. Proceed with standard pre-breeding checks."
	case LabelExcellent:
		return "Very good pairing. Proceed with standard pre-breeding checks."
	case LabelGood:
		return "Good pairing. Review the listed cons before deciding."
	case LabelFair:
		return "Acceptable pairing with notable drawbacks. Consider alternatives."
	case LabelRisk:
		return "Relatedness makes this pairing risky. Look for an unrelated partner."
	default:
		return "Not recommended. Look for a better-suited partner."
	}
}

func incompatible(bd Breakdown, msg string) Verdict {
	return Verdict{
		Score:     0,
		Label:     LabelIncompatible,
		Breakdown: bd,
		Breeding: Breeding{
			Type:      BreedingNone,
			RiskLevel: RiskHigh,
			Warnings:  []string{msg},
			Pros:      []string{},
			Cons:      []string{msg},
			Summary:   "Incompatible pairing.",
		},
		Advice: msg,
	}
}

type relation struct {
	risk            int
	kind            BreedingType
	level           RiskLevel
	unknownPedigree bool
	warnings        []string
	cons            []string
	pro             string
}

func relatedness(a, b Animal) relation {
	if isParentOf(a, b) || isParentOf(b, a) {
		msg := "Direct parent/offspring relation: do not breed."
		return relation{
			risk:     geneticParentChild,
			kind:     BreedingInbreeding,
			level:    RiskHigh,
			warnings: []string{msg},
			cons:     []string{msg},
		}
	}

	pa, pb := a.ParentIDs(), b.ParentIDs()
	shared := 0
	for _, x := range pa {
		for _, y := range pb {
			if x == y {
				shared++
			}
		}
	}

	switch {
	case shared >= 2:
		msg := "Full siblings (both parents shared): high risk of inherited disorders."
		return relation{
			risk:     geneticFullSiblings,
			kind:     BreedingInbreeding,
			level:    RiskHigh,
			warnings: []string{msg},
			cons:     []string{msg},
		}
	case shared == 1:
		return relation{
			risk:     geneticHalfSiblings,
			kind:     BreedingLinebreeding,
			level:    RiskModerate,
			warnings: []string{"Half siblings (one shared parent): elevated risk of recessive disorders."},
			cons:     []string{"Linebreeding concentrates the genes of the shared parent."},
		}
	case len(pa) > 0 && len(pb) > 0:
		return relation{
			risk:  geneticOutcross,
			kind:  BreedingOutcross,
			level: RiskLow,
			pro:   "No shared parents: outcross preserves genetic diversity.",
		}
	default:
		return relation{
			risk:            geneticUnknown,
			kind:            BreedingOutcross,
			level:           RiskModerate,
			unknownPedigree: true,
			warnings:        []string{"Unknown pedigree: relatedness could not be verified."},
			cons:            []string{"Incomplete pedigree records."},
		}
	}
}

func isParentOf(parent, child Animal) bool {
	if parent.ID == "" {
		return false
	}
	return child.FatherID == parent.ID || child.MotherID == parent.ID
}

func breedScore(a, b Animal, vb *verdictBuilder) int {
	ba := strings.ToLower(strings.TrimSpace(a.Breed))
	bb := strings.ToLower(strings.TrimSpace(b.Breed))

	if ba == "" || bb == "" {
		return breedDifferent
	}
	if ba == bb {
		vb.pro("Same breed.")
		return breedExact
	}
	if strings.Contains(ba, bb) || strings.Contains(bb, ba) {
		vb.pro("Closely related breeds.")
		return breedSimilar
	}

	vb.warn(fmt.Sprintf("Cross-breeding: %s x %s.", a.Breed, b.Breed))
	vb.con("Offspring will not be purebred.")
	return breedDifferent
}

func healthScore(a, b Animal, vb *verdictBuilder) int {
	score := healthBase
	missing := make([]string, 0, 2)
	for _, x := range []Animal{a, b} {
		if x.HealthCertified {
			score += healthPerCertified
			continue
		}
		missing = append(missing, displayName(x))
	}

	if len(missing) == 0 {
		vb.pro("Both animals are health certified.")
	} else {
		vb.warn("Missing health certification: " + strings.Join(missing, ", ") + ".")
		vb.con("Health status not fully verified.")
	}
	if score > 100 {
		score = 100
	}
	return score
}

type ageResult struct {
	score    int
	tooYoung bool
	senior   bool
}

func ageScore(a, b Animal, asOf time.Time, vb *verdictBuilder) ageResult {
	ya, yb := AgeInYears(a.BirthDate, asOf), AgeInYears(b.BirthDate, asOf)

	switch {
	case ya < ageMinBreeding || yb < ageMinBreeding:
		vb.warn("At least one animal is younger than 1 year (or has no birth date).")
		vb.con("Too young to breed.")
		return ageResult{score: ageScoreTooYoung, tooYoung: true}
	case ya > ageSeniorAbove || yb > ageSeniorAbove:
		vb.warn("At least one animal is older than 8 years.")
		vb.con("Advanced age increases breeding risk.")
		return ageResult{score: ageScoreSenior, senior: true}
	case inPrime(ya) && inPrime(yb):
		vb.pro("Both animals are in their prime breeding age.")
		return ageResult{score: ageScorePrime}
	default:
		return ageResult{score: ageScoreDefault}
	}
}

func inPrime(years int) bool {
	return years >= agePrimeMin && years <= agePrimeMax
}

// AgeInYears devuelve años cumplidos a la fecha asOf. Sin fecha (o fecha
// futura) devuelve 0.
func AgeInYears(birth *time.Time, asOf time.Time) int {
	if birth == nil || birth.IsZero() {
		return 0
	}
	b := birth.UTC()
	t := asOf.UTC()

	years := t.Year() - b.Year()
	if t.Month() < b.Month() || (t.Month() == b.Month() && t.Day() < b.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

func sameSpecies(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return true
	}
	return a == b
}

func sameSex(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a != "male" && a != "female" {
		return false
	}
	return a == b
}

func displayName(a Animal) string {
	if strings.TrimSpace(a.Name) != "" {
		return a.Name
	}
	return a.ID
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
