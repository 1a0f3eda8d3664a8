package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"pets-mvc/internal/adapters/storage"
	"pets-mvc/internal/router"
)

func newServer(t *testing.T) (*httptest.Server, *storage.Backend) {
	t.Helper()
	backend := storage.Memory()
	ts := httptest.NewServer(router.NewRouter(router.Options{Backend: backend}))
	t.Cleanup(ts.Close)
	return ts, backend
}

func TestHTTP_EndToEnd_CatsAndDogs(t *testing.T) {
	ts, _ := newServer(t)

	// 1) Arranca con el placeholder
	if name := getName(t, ts.URL); name != "unknown" {
		t.Fatalf("expected placeholder name unknown, got %q", name)
	}

	// 2) Crear gato
	{
		st, body := doReq(t, ts.URL, "POST", "/setName", map[string]any{
			"kind": "cat", "firstname": "Tom", "lastname": "Cat", "beds": 1,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create cat, got %d body=%s", st, string(body))
		}
		var resp struct {
			Name string `json:"name"`
			Beds int    `json:"beds"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Name != "Tom Cat" || resp.Beds != 1 {
			t.Fatalf("unexpected create response: %s", string(body))
		}
	}
	if name := getName(t, ts.URL); name != "Tom Cat" {
		t.Fatalf("expected last name Tom Cat, got %q", name)
	}

	// 3) Buscarlo
	{
		st, body := doReq(t, ts.URL, "GET", "/findCat?name="+url.QueryEscape("Tom Cat"), nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 find cat, got %d body=%s", st, string(body))
		}
		var resp struct {
			Name string `json:"name"`
			Beds int    `json:"beds"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Name != "Tom Cat" || resp.Beds != 1 {
			t.Fatalf("unexpected find response: %s", string(body))
		}
	}

	// 4) Dos updateLast => +2
	for range 2 {
		st, body := doReq(t, ts.URL, "POST", "/updateLast", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 updateLast, got %d body=%s", st, string(body))
		}
	}
	if beds := findCatBeds(t, ts.URL, "Tom Cat"); beds != 3 {
		t.Fatalf("expected beds 3 after two updates, got %d", beds)
	}

	// 5) Crear perro: pasa a ser el último
	createDog(t, ts.URL, "Rex", "Lab", 3)
	if name := getName(t, ts.URL); name != "Rex" {
		t.Fatalf("expected last name Rex, got %q", name)
	}

	// 6) updateLast con un perro en cache => 400
	{
		st, body := doReq(t, ts.URL, "POST", "/updateLast", nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 updateLast on dog, got %d body=%s", st, string(body))
		}
	}
}

func TestHTTP_SetName_DuplicateCatLeavesCacheUnchanged(t *testing.T) {
	ts, _ := newServer(t)

	payload := map[string]any{"firstname": "Tom", "lastname": "Cat", "beds": 2}
	if st, body := doReq(t, ts.URL, "POST", "/setName", payload); st != http.StatusCreated {
		t.Fatalf("expected 201 first create, got %d body=%s", st, string(body))
	}
	createDog(t, ts.URL, "Rex", "Lab", 3)

	st, body := doReq(t, ts.URL, "POST", "/setName", payload)
	if st != http.StatusConflict {
		t.Fatalf("expected 409 duplicate cat, got %d body=%s", st, string(body))
	}
	if !strings.Contains(string(body), `"error"`) {
		t.Fatalf("expected error body, got %s", string(body))
	}
	if name := getName(t, ts.URL); name != "Rex" {
		t.Fatalf("cache changed after failed create: got %q", name)
	}
}

func TestHTTP_SetName_Validation(t *testing.T) {
	ts, _ := newServer(t)

	cases := []struct {
		name    string
		payload map[string]any
		wantMsg string
	}{
		{"sin beds ni age", map[string]any{"name": "Rex", "breed": "Lab"}, "kind (cat or dog), beds or age is required"},
		{"body vacío", map[string]any{}, "kind (cat or dog), beds or age is required"},
		{"gato incompleto", map[string]any{"firstname": "Tom", "beds": 1}, "firstname,lastname and beds are all required"},
		{"perro incompleto", map[string]any{"name": "Rex", "age": 3}, "name,breed and age are all required"},
		{"kind desconocido", map[string]any{"kind": "bird", "name": "Tweety"}, "kind must be cat or dog"},
		{"beds negativo", map[string]any{"firstname": "Tom", "lastname": "Cat", "beds": -1}, "bedsOwned"},
		{"age no numérico", map[string]any{"name": "Rex", "breed": "Lab", "age": "old"}, "age"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, body := doReq(t, ts.URL, "POST", "/setName", tc.payload)
			if st != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d body=%s", st, string(body))
			}
			var resp struct {
				Error string `json:"error"`
			}
			_ = json.Unmarshal(body, &resp)
			if !strings.Contains(resp.Error, tc.wantMsg) {
				t.Fatalf("expected error containing %q, got %q", tc.wantMsg, resp.Error)
			}
		})
	}

	if name := getName(t, ts.URL); name != "unknown" {
		t.Fatalf("cache changed after invalid creates: got %q", name)
	}
}

func TestHTTP_SetName_FormEncoded(t *testing.T) {
	ts, _ := newServer(t)

	form := url.Values{"firstname": {"Felix"}, "lastname": {"Gato"}, "beds": {"4"}}
	res, err := http.Post(ts.URL+"/setName", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("post form: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(res.Body)
		t.Fatalf("expected 201 form create, got %d body=%s", res.StatusCode, string(body))
	}

	if beds := findCatBeds(t, ts.URL, "Felix Gato"); beds != 4 {
		t.Fatalf("expected beds 4, got %d", beds)
	}
}

func TestHTTP_FindDog_IncrementsStoredAge(t *testing.T) {
	ts, backend := newServer(t)

	createDog(t, ts.URL, "Rex", "Lab", 3)

	st, body := doReq(t, ts.URL, "GET", "/findDog?name=Rex", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 find dog, got %d body=%s", st, string(body))
	}
	var resp map[string]any
	_ = json.Unmarshal(body, &resp)
	if resp["name"] != "Rex" || resp["breed"] != "Lab" || resp["age"] != float64(4) {
		t.Fatalf("unexpected find dog response: %s", string(body))
	}

	stored, err := backend.Dogs.FindByName(context.Background(), "Rex")
	if err != nil {
		t.Fatalf("find stored dog: %v", err)
	}
	if stored.Age != 4 {
		t.Fatalf("expected stored age 4, got %d", stored.Age)
	}

	// cada lectura vuelve a sumar
	_, body = doReq(t, ts.URL, "GET", "/findDog?name=Rex", nil)
	_ = json.Unmarshal(body, &resp)
	if resp["age"] != float64(5) {
		t.Fatalf("expected age 5 on second read, got %s", string(body))
	}
}

func TestHTTP_Find_MissingOrUnknownName(t *testing.T) {
	ts, _ := newServer(t)

	cases := []struct {
		path    string
		wantErr string
	}{
		{"/findCat", "Name is required to perform a search"},
		{"/findCat?name=Nobody", "No cats found"},
		{"/findDog?name=", "Name is required to perform a search"},
		{"/findDog?name=Nobody", "No dogs found"},
	}
	for _, tc := range cases {
		st, body := doReq(t, ts.URL, "GET", tc.path, nil)
		if st != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d body=%s", tc.path, st, string(body))
		}
		var resp struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Error != tc.wantErr {
			t.Fatalf("%s: expected error %q, got %q", tc.path, tc.wantErr, resp.Error)
		}
	}
}

func TestHTTP_UpdateLast_OnPlaceholderCreatesCat(t *testing.T) {
	ts, backend := newServer(t)

	st, body := doReq(t, ts.URL, "POST", "/updateLast", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 updateLast on placeholder, got %d body=%s", st, string(body))
	}

	stored, err := backend.Cats.FindByName(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("placeholder not persisted: %v", err)
	}
	if stored.BedsOwned != 1 {
		t.Fatalf("expected beds 1, got %d", stored.BedsOwned)
	}

	// la segunda vez actualiza, no vuelve a crear
	if st, body := doReq(t, ts.URL, "POST", "/updateLast", nil); st != http.StatusOK {
		t.Fatalf("expected 200 second updateLast, got %d body=%s", st, string(body))
	}
	if beds := findCatBeds(t, ts.URL, "unknown"); beds != 2 {
		t.Fatalf("expected beds 2, got %d", beds)
	}
}

func TestHTTP_NotFound(t *testing.T) {
	ts, _ := newServer(t)

	for _, path := range []string{"/nonexistent-path", "/setName", "/updateLast", "/assets/nope.js", "/assets/"} {
		st, body := doReq(t, ts.URL, "GET", path, nil)
		if st != http.StatusNotFound {
			t.Fatalf("GET %s: expected 404, got %d", path, st)
		}
		if !strings.Contains(string(body), path) {
			t.Fatalf("GET %s: expected path echoed in body, got %s", path, string(body))
		}
	}

	// otros métodos sobre rutas conocidas
	if st, _ := doReq(t, ts.URL, "DELETE", "/setName", nil); st != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 DELETE /setName, got %d", st)
	}
	if st, body := doReq(t, ts.URL, "POST", "/assets/style.css", nil); st != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 POST /assets/style.css, got %d body=%s", st, string(body))
	}
}

func TestHTTP_Pages(t *testing.T) {
	ts, _ := newServer(t)

	createDog(t, ts.URL, "Rex", "Lab", 3)
	if st, body := doReq(t, ts.URL, "POST", "/setName", map[string]any{
		"firstname": "Tom", "lastname": "Cat", "beds": 1,
	}); st != http.StatusCreated {
		t.Fatalf("expected 201 create cat, got %d body=%s", st, string(body))
	}

	cases := []struct {
		path string
		want string
	}{
		{"/", "Tom Cat"},
		{"/page1", "Tom Cat"},
		{"/page2", "<html"},
		{"/page3", "<html"},
		{"/page4", "Rex"},
	}
	for _, tc := range cases {
		st, body := doReq(t, ts.URL, "GET", tc.path, nil)
		if st != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", tc.path, st)
		}
		if !strings.Contains(string(body), tc.want) {
			t.Fatalf("GET %s: expected %q in body", tc.path, tc.want)
		}
	}
}

func TestHTTP_HealthAndAssets(t *testing.T) {
	ts, _ := newServer(t)

	st, body := doReq(t, ts.URL, "GET", "/health", nil)
	if st != http.StatusOK || !strings.Contains(string(body), `"status":"ok"`) {
		t.Fatalf("unexpected health response %d body=%s", st, string(body))
	}

	for _, path := range []string{"/assets/style.css", "/assets/client.js", "/favicon.ico", "/swagger/doc.json"} {
		if st, _ := doReq(t, ts.URL, "GET", path, nil); st != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, st)
		}
	}
}

func createDog(t *testing.T, baseURL, name, breed string, age int) {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/setName", map[string]any{
		"name": name, "breed": breed, "age": age,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create dog, got %d body=%s", st, string(body))
	}
}

func getName(t *testing.T, baseURL string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/getName", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 getName, got %d body=%s", st, string(body))
	}
	var resp struct {
		Name string `json:"name"`
	}
	_ = json.Unmarshal(body, &resp)
	return resp.Name
}

func findCatBeds(t *testing.T, baseURL, name string) int {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/findCat?name="+url.QueryEscape(name), nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 find cat, got %d body=%s", st, string(body))
	}
	var resp struct {
		Name string `json:"name"`
		Beds int    `json:"beds"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Name != name {
		t.Fatalf("find cat %q: unexpected body=%s", name, string(body))
	}
	return resp.Beds
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
