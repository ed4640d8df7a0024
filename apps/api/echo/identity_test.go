package echoapi

import (
	"net/http"
	"testing"

	"github.com/fundalabs/funda/core/identity"
)

func Test_authApi_login(t *testing.T) {
	ts := newTestServer(t)
	ts.seedStudent(t, "Thabo Mokoena")

	tests := []httpTest{
		{name: "Empty body", method: http.MethodPost, path: "/v1/auth/login", wantCode: http.StatusBadRequest},
		{
			name: "Blank name", method: http.MethodPost, path: "/v1/auth/login",
			body: []byte(`{"name":"   ","role":"Teacher"}`), wantCode: http.StatusBadRequest,
		},
		{
			name: "Unknown role", method: http.MethodPost, path: "/v1/auth/login",
			body: []byte(`{"name":"Jo","role":"Principal"}`), wantCode: http.StatusBadRequest,
		},
		{
			name: "Unknown student", method: http.MethodPost, path: "/v1/auth/login",
			body:     []byte(`{"name":"Ghost","role":"Student"}`),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: identity.ErrNotFound.Error()}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			ts.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("Teacher login", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/auth/login", []byte(`{"name":"Mrs. Dlamini","role":"Teacher"}`))
		ts.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
		}
		var resp LoginResponse
		decodeBody(t, rec, &resp)
		if resp.Token == "" {
			t.Error("expected a token")
		}
		if resp.Identity.Role != identity.RoleTeacher {
			t.Errorf("role = %v; want %v", resp.Identity.Role, identity.RoleTeacher)
		}
		if resp.Credits != 5 {
			t.Errorf("credits = %v; want 5", resp.Credits)
		}
	})

	t.Run("Student login is case-insensitive", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/auth/login", []byte(`{"name":"thabo mokoena","role":"Student"}`))
		ts.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
		}
		var resp LoginResponse
		decodeBody(t, rec, &resp)
		if resp.Identity.Name != "Thabo Mokoena" { // canonical roster casing
			t.Errorf("name = %q; want %q", resp.Identity.Name, "Thabo Mokoena")
		}
		if resp.Credits != 5 {
			t.Errorf("credits = %v; want 5", resp.Credits)
		}
	})
}

func Test_authApi_credits(t *testing.T) {
	ts := newTestServer(t)
	id := ts.loginTeacher(t, "Mrs. Dlamini")

	tests := []httpTest{
		{
			name: "Auth required", path: "/v1/auth/credits",
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "Fresh allowance", path: "/v1/auth/credits", token: getToken(t, id),
			wantCode: http.StatusOK, wantData: marchallObj(t, CreditsResponse{Credits: 5}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token)
			ts.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("Exhausted allowance", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			if err := ts.identitySvc.Consume(id); err != nil {
				t.Fatalf("Consume(): %v", err)
			}
		}
		tt := httpTest{
			path: "/v1/auth/credits", token: getToken(t, id),
			wantCode: http.StatusOK, wantData: marchallObj(t, CreditsResponse{Credits: 0, OutOfCredits: true}),
		}
		req, rec := newAuthRequest(tt.method, tt.path, tt.token)
		ts.app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})
}

func Test_authApi_upgrade(t *testing.T) {
	ts := newTestServer(t)
	id := ts.loginTeacher(t, "Mrs. Dlamini")

	req, rec := newAuthRequest(http.MethodPost, "/v1/auth/upgrade", getToken(t, id))
	ts.app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
	}
	var resp LoginResponse
	decodeBody(t, rec, &resp)
	if !resp.Identity.IsPro {
		t.Error("expected a pro identity")
	}
	if resp.Token == "" {
		t.Error("expected a re-issued token")
	}

	// the re-issued token must carry the pro flag
	req, rec = newAuthRequest(http.MethodGet, "/v1/auth/credits", resp.Token)
	ts.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusOK,
		wantData: marchallObj(t, CreditsResponse{Credits: 5}),
	}, rec)
}
