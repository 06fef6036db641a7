package pedigree

import "fmt"

// ParentLookup devuelve el registro de un id. false = desconocido (rama termina).
type ParentLookup func(id string) (Animal, bool)

// ResolveAncestors recorre los padres hacia arriba, por generación (BFS).
// El primer descubrimiento gana: un ancestro alcanzable por ambos lados
// aparece una sola vez, con la generación/rol con que se vio primero.
// El animal consultado va en la generación 0 con rol SELF.
func ResolveAncestors(rootID string, lookup ParentLookup) []AncestorNode {
	if rootID == "" || lookup == nil {
		return nil
	}
	root, ok := lookup(rootID)
	if !ok {
		return nil
	}

	type item struct {
		animal Animal
		line   Line
		gen    int
	}

	visited := map[string]struct{}{rootID: {}}
	out := []AncestorNode{{
		ID:         rootID,
		Name:       root.Name,
		Role:       RoleSelf,
		Line:       LineNone,
		Generation: 0,
		BirthDate:  root.BirthDate,
	}}

	queue := []item{{animal: root, line: LineNone, gen: 0}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		parents := [2]struct {
			id   string
			role Role
		}{
			{cur.animal.FatherID, RoleSire},
			{cur.animal.MotherID, RoleDam},
		}

		for _, p := range parents {
			if p.id == "" {
				continue
			}
			if _, seen := visited[p.id]; seen {
				continue
			}
			parent, ok := lookup(p.id)
			if !ok {
				continue
			}
			visited[p.id] = struct{}{}

			line := cur.line
			if cur.gen == 0 {
				line = LinePaternal
				if p.role == RoleDam {
					line = LineMaternal
				}
			}

			out = append(out, AncestorNode{
				ID:         p.id,
				Name:       parent.Name,
				Role:       p.role,
				Line:       line,
				Generation: cur.gen + 1,
				BirthDate:  parent.BirthDate,
			})
			queue = append(queue, item{animal: parent, line: line, gen: cur.gen + 1})
		}
	}

	return out
}

// TruncateGenerations conserva solo los nodos con Generation <= maxGen.
// maxGen <= 0 no trunca.
func TruncateGenerations(nodes []AncestorNode, maxGen int) []AncestorNode {
	if maxGen <= 0 {
		return nodes
	}
	out := make([]AncestorNode, 0, len(nodes))
	for _, n := range nodes {
		if n.Generation <= maxGen {
			out = append(out, n)
		}
	}
	return out
}

// Label arma la etiqueta de presentación, p.ej. "paternal grandsire".
func (n AncestorNode) Label() string {
	if n.Role == RoleSelf {
		return "self"
	}

	base := "sire"
	if n.Role == RoleDam {
		base = "dam"
	}

	var name string
	switch {
	case n.Generation <= 1:
		name = base
	case n.Generation == 2:
		name = "grand" + base
	case n.Generation == 3:
		name = "great-grand" + base
	default:
		name = fmt.Sprintf("%dx-great-grand%s", n.Generation-2, base)
	}

	if n.Generation <= 1 || n.Line == LineNone {
		return name
	}
	return string(n.Line) + " " + name
}

// IndexByID arma un ParentLookup sobre un snapshot ya cargado.
func IndexByID(records []Animal) ParentLookup {
	byID := make(map[string]Animal, len(records))
	for _, r := range records {
		if r.ID == "" {
			continue
		}
		if _, dup := byID[r.ID]; dup {
			continue
		}
		byID[r.ID] = r
	}
	return func(id string) (Animal, bool) {
		a, ok := byID[id]
		return a, ok
	}
}
