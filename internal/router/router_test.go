package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pet-pedigree/internal/router"
)

func TestHTTP_EndToEnd_PedigreeFlow(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{LineagePrefix: "KNL"}))
	defer ts.Close()

	yearsAgo := func(y, m int) string { return time.Now().AddDate(-y, -m, 0).Format("2006-01-02") }

	// 1) Tres generaciones: grandsire + granddam -> sire; sire + dam -> pup1, pup2
	grandsire := createPet(t, ts.URL, map[string]any{"name": "Grandsire", "species": "dog", "breed": "Labrador", "sex": "male", "birth_date": yearsAgo(10, 0)})
	granddam := createPet(t, ts.URL, map[string]any{"name": "Granddam", "species": "dog", "breed": "Labrador", "sex": "female", "birth_date": yearsAgo(10, 0)})
	sire := createPet(t, ts.URL, map[string]any{"name": "Sire", "species": "dog", "breed": "Labrador", "sex": "male", "birth_date": yearsAgo(6, 0), "father_id": grandsire, "mother_id": granddam})
	dam := createPet(t, ts.URL, map[string]any{"name": "Dam", "species": "dog", "breed": "Labrador", "sex": "female", "birth_date": yearsAgo(5, 0)})
	pup1 := createPet(t, ts.URL, map[string]any{"name": "Pup1", "species": "dog", "breed": "Labrador", "sex": "male", "birth_date": yearsAgo(3, 2), "father_id": sire, "mother_id": dam})
	pup2 := createPet(t, ts.URL, map[string]any{"name": "Pup2", "species": "dog", "breed": "Labrador", "sex": "female", "birth_date": yearsAgo(3, 0), "father_id": sire, "mother_id": dam})

	// 2) Ancestros de pup1
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/"+pup1+"/ancestors", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 ancestors, got %d body=%s", st, string(body))
		}
		var nodes []struct {
			ID         string `json:"id"`
			Label      string `json:"label"`
			Generation int    `json:"generation"`
		}
		mustDecode(t, body, &nodes)
		if len(nodes) != 5 {
			t.Fatalf("expected 5 nodes (self + 2 parents + 2 grandparents), got %d", len(nodes))
		}
		if nodes[0].ID != pup1 || nodes[0].Label != "self" {
			t.Fatalf("expected self first, got %+v", nodes[0])
		}
		labels := map[string]string{}
		for _, n := range nodes {
			labels[n.ID] = n.Label
		}
		if labels[grandsire] != "paternal grandsire" || labels[granddam] != "paternal granddam" {
			t.Fatalf("unexpected grandparent labels: %v", labels)
		}

		st, body = doReq(t, ts.URL, "GET", "/pets/"+pup1+"/ancestors?max_generation=1", nil)
		mustDecode(t, body, &nodes)
		if st != http.StatusOK || len(nodes) != 3 {
			t.Fatalf("expected 3 nodes up to generation 1, got %d (status %d)", len(nodes), st)
		}
	}

	// 3) Hijos directos de sire
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/"+sire+"/offspring", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 offspring, got %d body=%s", st, string(body))
		}
		var kids []struct {
			ID string `json:"id"`
		}
		mustDecode(t, body, &kids)
		if len(kids) != 2 || kids[0].ID != pup1 || kids[1].ID != pup2 {
			t.Fatalf("expected [pup1 pup2] by birth date, got %+v", kids)
		}
	}

	// 4) Códigos de linaje desde grandsire (prefijo por defecto de Options)
	{
		st, body := doReq(t, ts.URL, "POST", "/lineages/"+grandsire+"/registrations", map[string]any{})
		if st != http.StatusOK {
			t.Fatalf("expected 200 registrations, got %d body=%s", st, string(body))
		}
		var res struct {
			Applied bool `json:"applied"`
			Set     int  `json:"set"`
		}
		mustDecode(t, body, &res)
		if !res.Applied || res.Set != 4 {
			t.Fatalf("expected 4 codes applied (grandsire, sire, pup1, pup2), got %+v", res)
		}

		want := map[string]string{
			grandsire: "KNL-00-001",
			sire:      "KNL-01-001",
			pup1:      "KNL-02-001",
			pup2:      "KNL-02-002",
			dam:       "",
		}
		for id, code := range want {
			if got := registrationCode(t, ts.URL, id); got != code {
				t.Fatalf("pet %s: expected code %q, got %q", id, code, got)
			}
		}

		// Recalcular sin cambios en el grafo no escribe nada
		st, body = doReq(t, ts.URL, "POST", "/lineages/"+grandsire+"/registrations", map[string]any{"prefix": "KNL"})
		mustDecode(t, body, &res)
		if st != http.StatusOK || res.Set != 0 {
			t.Fatalf("expected idempotent recompute, got %d %+v", st, res)
		}
	}

	// 5) Compatibilidad entre hermanos completos
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/"+pup1+"/compatibility/"+pup2, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 compatibility, got %d body=%s", st, string(body))
		}
		var v struct {
			Label    string `json:"label"`
			Breeding struct {
				Type string `json:"type"`
			} `json:"breeding"`
		}
		mustDecode(t, body, &v)
		if v.Label != "Risk" || v.Breeding.Type != "inbreeding" {
			t.Fatalf("expected Risk/inbreeding for full siblings, got %+v", v)
		}
	}

	// 6) Padre con su propia hija
	{
		st, body := doReq(t, ts.URL, "POST", "/compatibility", map[string]any{"a_id": sire, "b_id": pup2})
		if st != http.StatusOK {
			t.Fatalf("expected 200 compatibility, got %d body=%s", st, string(body))
		}
		var v struct {
			Score int `json:"score"`
		}
		mustDecode(t, body, &v)
		if v.Score != 0 {
			t.Fatalf("expected score 0 for parent/offspring, got %d", v.Score)
		}
	}

	// 7) Ciclo: grandsire no puede tener como padre a su nieto
	{
		st, body := doReq(t, ts.URL, "PATCH", "/pets/"+grandsire, map[string]any{"father_id": pup1})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for cycle, got %d body=%s", st, string(body))
		}
	}

	// 8) Métricas expuestas
	{
		st, body := doReq(t, ts.URL, "GET", "/metrics", nil)
		if st != http.StatusOK || !strings.Contains(string(body), "pet_pedigree_compatibility_verdicts_total") {
			t.Fatalf("expected pedigree metrics, got %d", st)
		}
	}
}

func TestHTTP_NotFoundAndBadInput(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	if st, _ := doReq(t, ts.URL, "GET", "/health", nil); st != http.StatusOK {
		t.Fatalf("expected 200 health, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/pets/missing/ancestors", nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 ancestors of unknown pet, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/lineages/missing/registrations", nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 registrations of unknown root, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "POST", "/pets", map[string]any{"name": "X", "species": "dog", "father_id": "missing"}); st != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown parent, got %d", st)
	}

	a := createPet(t, ts.URL, map[string]any{"name": "A", "species": "dog", "sex": "male"})
	b := createPet(t, ts.URL, map[string]any{"name": "B", "species": "cat", "sex": "female"})
	st, body := doReq(t, ts.URL, "GET", "/pets/"+a+"/compatibility/"+b, nil)
	if st != http.StatusOK || !strings.Contains(string(body), `"label":"Incompatible"`) {
		t.Fatalf("expected Incompatible for species mismatch, got %d body=%s", st, string(body))
	}
}

func createPet(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/pets", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}

	var out struct {
		ID string `json:"id"`
	}
	mustDecode(t, body, &out)
	if out.ID == "" {
		t.Fatalf("expected pet id in response")
	}
	return out.ID
}

func registrationCode(t *testing.T, baseURL, petID string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/pets/"+petID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 get pet, got %d body=%s", st, string(body))
	}
	var out struct {
		RegistrationCode string `json:"registration_code"`
	}
	mustDecode(t, body, &out)
	return out.RegistrationCode
}

func mustDecode(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("decode response: %v body=%s", err, string(body))
	}
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
