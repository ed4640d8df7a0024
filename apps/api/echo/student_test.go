package echoapi

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/fundalabs/funda/core/student"
)

func Test_studentApi_query(t *testing.T) {
	ts := newTestServer(t)
	token := teacherToken(t, "Mrs. Dlamini")

	tests := []httpTest{
		{name: "Auth required", path: "/v1/students", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Teacher required", path: "/v1/students", token: studentToken(t, "Thabo"),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermissionDenied),
		},
		{name: "Empty roster", path: "/v1/students", token: token, wantCode: http.StatusOK, wantData: marchallList(t)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token)
			ts.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("Sorted by ID", func(t *testing.T) {
		s1 := ts.seedStudent(t, "Thabo Mokoena")
		s2 := ts.seedStudent(t, "Lerato Nkosi")

		tt := httpTest{
			path: "/v1/students", token: token,
			wantCode: http.StatusOK, wantData: marchallList(t, s1, s2),
		}
		req, rec := newAuthRequest(tt.method, tt.path, tt.token)
		ts.app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})
}

func Test_studentApi_create(t *testing.T) {
	ts := newTestServer(t)
	token := teacherToken(t, "Mrs. Dlamini")

	tests := []httpTest{
		{
			name: "Blank name", method: http.MethodPost, path: "/v1/students", token: token,
			body: []byte(`{"name":"  "}`), wantCode: http.StatusBadRequest,
		},
		{
			name: "Created", method: http.MethodPost, path: "/v1/students", token: token,
			body:     []byte(`{"name":"  Thabo Mokoena "}`), // input is trimmed
			wantCode: http.StatusCreated,
			wantData: marchallObj(t, student.Student{ID: 1, Name: "Thabo Mokoena"}),
		},
		{
			name: "Duplicate names allowed", method: http.MethodPost, path: "/v1/students", token: token,
			body:     []byte(`{"name":"Thabo Mokoena"}`),
			wantCode: http.StatusCreated,
			wantData: marchallObj(t, student.Student{ID: 2, Name: "Thabo Mokoena"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			ts.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_studentApi_destroy(t *testing.T) {
	ts := newTestServer(t)
	token := teacherToken(t, "Mrs. Dlamini")
	s := ts.seedStudent(t, "Thabo Mokoena")
	keep := ts.seedStudent(t, "Lerato Nkosi")

	tests := []httpTest{
		{
			name: "Bad ID", method: http.MethodDelete, path: "/v1/students/abc", token: token,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
		{
			name: "Unknown ID", method: http.MethodDelete, path: "/v1/students/404", token: token,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: student.ErrNotFound.Error()}),
		},
		{
			name: "Deleted", method: http.MethodDelete, path: fmt.Sprintf("/v1/students/%d", s.ID), token: token,
			wantCode: http.StatusNoContent,
		},
		{
			name: "Gone from the roster", path: "/v1/students", token: token,
			wantCode: http.StatusOK, wantData: marchallList(t, keep),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token)
			ts.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
