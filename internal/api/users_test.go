package api

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/nerrad567/homehub-core/internal/auth"
)

func TestCreateUser(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/users", `{"username":"  alice ","email":" Alice@Example.COM ","password":"secret1"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Errorf("response leaks password field: %s", w.Body.String())
	}

	var u auth.User
	decodeData(t, w, &u)
	if u.ID == 0 || u.Username != "alice" || u.Email != "alice@example.com" {
		t.Errorf("user = %+v, want trimmed username and normalised email", u)
	}

	stored, err := env.srv.users.GetByUsername(t.Context(), "alice")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if stored.PasswordHash == "secret1" || !strings.HasPrefix(stored.PasswordHash, "$2") {
		t.Errorf("password should be stored as a bcrypt hash, got %q", stored.PasswordHash)
	}

	evs := env.events.all()
	if len(evs) != 1 || evs[0].Type != "user.created" {
		t.Errorf("events = %+v, want one user.created", evs)
	}
}

func TestCreateUser_ValidationFailed(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/users", `{"username":"ab","email":"a@b.co","password":"secret1"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	resp := decodeEnvelope(t, w)
	if resp.Success || resp.Error != msgValidationFailed {
		t.Errorf("envelope = %+v", resp)
	}
	if len(resp.Details) != 1 || resp.Details[0].Field != "username" {
		t.Errorf("details = %+v, want one violation naming username", resp.Details)
	}

	if n, _ := env.srv.users.Count(t.Context()); n != 0 {
		t.Errorf("users stored after rejected create = %d, want 0", n)
	}
}

func TestCreateUser_ValidationReportsEveryField(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/users", `{"username":"","email":"not-an-email","password":"123"}`)
	resp := decodeEnvelope(t, w)

	want := []string{"username", "email", "password"}
	if len(resp.Details) != len(want) {
		t.Fatalf("details = %+v, want %d entries", resp.Details, len(want))
	}
	for i, field := range want {
		if resp.Details[i].Field != field || resp.Details[i].Message == "" {
			t.Errorf("details[%d] = %+v, want field %q with a message", i, resp.Details[i], field)
		}
	}
}

func TestCreateUser_EmptyBody(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/users", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestCreateUser_Conflict(t *testing.T) {
	env := newTestEnv(t)

	body := `{"username":"bob","email":"bob@example.com","password":"secret1"}`
	if w := env.do(http.MethodPost, "/api/users", body); w.Code != http.StatusCreated {
		t.Fatalf("first create status = %d", w.Code)
	}

	tests := []struct {
		name string
		body string
	}{
		{"same username", `{"username":"bob","email":"other@example.com","password":"secret1"}`},
		{"same email different case", `{"username":"robert","email":"BOB@example.com","password":"secret1"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(http.MethodPost, "/api/users", tt.body)
			if w.Code != http.StatusConflict {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusConflict)
			}
			if resp := decodeEnvelope(t, w); resp.Error != "Username or email already exists" {
				t.Errorf("error = %q", resp.Error)
			}
		})
	}
}

func TestCreateUser_ConcurrentSameEmail(t *testing.T) {
	env := newTestEnv(t)

	const workers = 2
	codes := make([]int, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body := fmt.Sprintf(`{"username":"user%d","email":"Same@Example.com","password":"secret1"}`, i)
			codes[i] = env.do(http.MethodPost, "/api/users", body).Code
		}(i)
	}
	wg.Wait()

	created, conflicts := 0, 0
	for _, c := range codes {
		switch c {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicts++
		}
	}
	if created != 1 || conflicts != 1 {
		t.Errorf("codes = %v, want exactly one 201 and one 409", codes)
	}
}

func TestGetUser(t *testing.T) {
	env := newTestEnv(t)

	var created auth.User
	decodeData(t, env.do(http.MethodPost, "/api/users", `{"username":"carol","email":"carol@example.com","password":"secret1"}`), &created)

	w := env.do(http.MethodGet, fmt.Sprintf("/api/users/%d", created.ID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Error("GET user leaks password field")
	}
	var got auth.User
	decodeData(t, w, &got)
	if got.Username != "carol" {
		t.Errorf("username = %q", got.Username)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/api/users/9999", "/api/users/abc"} {
		w := env.do(http.MethodGet, path, "")
		if w.Code != http.StatusNotFound {
			t.Errorf("GET %s status = %d, want 404", path, w.Code)
			continue
		}
		if resp := decodeEnvelope(t, w); resp.Success || resp.Error != "User not found" {
			t.Errorf("GET %s envelope = %+v", path, resp)
		}
	}
}

func TestListUsers(t *testing.T) {
	env := newTestEnv(t)

	for _, name := range []string{"zed", "amy"} {
		body := fmt.Sprintf(`{"username":%q,"email":"%s@example.com","password":"secret1"}`, name, name)
		if w := env.do(http.MethodPost, "/api/users", body); w.Code != http.StatusCreated {
			t.Fatalf("create %s status = %d", name, w.Code)
		}
	}

	w := env.do(http.MethodGet, "/api/users", "")
	if strings.Contains(w.Body.String(), "password") {
		t.Error("user list leaks password field")
	}
	var users []auth.User
	decodeData(t, w, &users)
	if len(users) != 2 || users[0].Username != "zed" || users[1].Username != "amy" {
		t.Errorf("users = %+v, want ordered by id", users)
	}
}
