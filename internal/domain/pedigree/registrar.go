package pedigree

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// MissingBirthDate es el centinela con que se ordenan los animales sin fecha
// de nacimiento: quedan al final de su generación.
var MissingBirthDate = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

// FormatCode arma PREFIX-GG-SSS.
func FormatCode(prefix string, generation, sequence int) string {
	return fmt.Sprintf("%s-%02d-%03d", strings.TrimSpace(prefix), generation, sequence)
}

// Children invierte father_id/mother_id. Cada hijo aparece una vez por padre
// distinto, en el orden de records.
func Children(records []Animal) map[string][]string {
	out := make(map[string][]string)
	for _, r := range records {
		if r.ID == "" {
			continue
		}
		for _, pid := range r.ParentIDs() {
			out[pid] = append(out[pid], r.ID)
		}
	}
	return out
}

// AssignRegistrationCodes numera a los descendientes de rootID generación por
// generación. Todos los hijos pendientes de la generación g se numeran antes de
// pasar a g+1; dentro de la generación el orden es fecha de nacimiento asc y,
// en empate, el orden de records. Un animal con ambos padres en el grafo se
// numera una sola vez.
func AssignRegistrationCodes(rootID string, records []Animal, prefix string) map[string]RegistrationAssignment {
	out := make(map[string]RegistrationAssignment)

	index := make(map[string]int, len(records))
	for i, r := range records {
		if r.ID == "" {
			continue
		}
		if _, dup := index[r.ID]; !dup {
			index[r.ID] = i
		}
	}
	if _, ok := index[rootID]; !ok {
		return out
	}

	children := Children(records)
	processed := map[string]struct{}{rootID: {}}
	out[rootID] = RegistrationAssignment{
		AnimalID:   rootID,
		Generation: 0,
		Sequence:   1,
		Code:       FormatCode(prefix, 0, 1),
	}

	frontier := []string{rootID}
	for gen := 1; len(frontier) > 0; gen++ {
		batch := make([]string, 0)
		for _, parentID := range frontier {
			for _, childID := range children[parentID] {
				if _, done := processed[childID]; done {
					continue
				}
				// Se marca al descubrirlo para que el otro padre no lo repita.
				processed[childID] = struct{}{}
				batch = append(batch, childID)
			}
		}

		sort.SliceStable(batch, func(i, j int) bool {
			bi := birthKey(records[index[batch[i]]])
			bj := birthKey(records[index[batch[j]]])
			if !bi.Equal(bj) {
				return bi.Before(bj)
			}
			return index[batch[i]] < index[batch[j]]
		})

		for i, id := range batch {
			seq := i + 1
			out[id] = RegistrationAssignment{
				AnimalID:   id,
				Generation: gen,
				Sequence:   seq,
				Code:       FormatCode(prefix, gen, seq),
			}
		}
		frontier = batch
	}

	return out
}

func birthKey(a Animal) time.Time {
	if a.BirthDate == nil || a.BirthDate.IsZero() {
		return MissingBirthDate
	}
	return *a.BirthDate
}

// PlanRegistrationChanges compara las asignaciones calculadas contra el código
// persistido de cada registro y devuelve solo lo que hay que escribir: códigos
// nuevos o distintos, y limpieza de códigos del mismo prefijo que ya no aplican.
// El resultado sale ordenado por AnimalID.
func PlanRegistrationChanges(records []Animal, assignments map[string]RegistrationAssignment, prefix string) []RegistrationChange {
	owned := strings.TrimSpace(prefix) + "-"

	changes := make([]RegistrationChange, 0)
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, dup := seen[r.ID]; dup || r.ID == "" {
			continue
		}
		seen[r.ID] = struct{}{}

		if a, ok := assignments[r.ID]; ok {
			if r.RegistrationCode != a.Code {
				changes = append(changes, RegistrationChange{
					AnimalID:   r.ID,
					Code:       a.Code,
					Generation: a.Generation,
					Sequence:   a.Sequence,
				})
			}
			continue
		}

		if r.RegistrationCode != "" && strings.HasPrefix(r.RegistrationCode, owned) {
			changes = append(changes, RegistrationChange{AnimalID: r.ID})
		}
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].AnimalID < changes[j].AnimalID })
	return changes
}

// SortedAssignments devuelve las asignaciones por generación y secuencia.
func SortedAssignments(m map[string]RegistrationAssignment) []RegistrationAssignment {
	out := make([]RegistrationAssignment, 0, len(m))
	for _, a := range m {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Generation != out[j].Generation {
			return out[i].Generation < out[j].Generation
		}
		return out[i].Sequence < out[j].Sequence
	})
	return out
}
