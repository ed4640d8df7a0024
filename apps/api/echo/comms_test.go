package echoapi

import (
	"net/http"
	"testing"

	"github.com/fundalabs/funda/core/comms"
)

func Test_commsApi_send(t *testing.T) {
	ts := newTestServer(t)
	token := teacherToken(t, "Mrs. Dlamini")
	lerato := ts.seedStudent(t, "Lerato Nkosi")

	tests := []httpTest{
		{name: "Auth required", method: http.MethodPost, path: "/v1/comms", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Teacher required", method: http.MethodPost, path: "/v1/comms", token: studentToken(t, lerato.Name),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermissionDenied),
		},
		{
			name: "Blank message", method: http.MethodPost, path: "/v1/comms", token: token,
			body: []byte(`{"recipientName":"Lerato Nkosi","message":"  "}`), wantCode: http.StatusBadRequest,
		},
		{
			name: "Bad email", method: http.MethodPost, path: "/v1/comms", token: token,
			body: []byte(`{"recipientName":"Lerato Nkosi","recipientEmail":"not-an-email","message":"hi"}`), wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			ts.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("Recipient resolved by name", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/comms", token,
			[]byte(`{"recipientName":"lerato nkosi","recipientGrade":"Grade 7","message":"Please see me after class."}`))
		ts.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
		}
		var c comms.Communication
		decodeBody(t, rec, &c)
		if c.StudentID == nil || *c.StudentID != lerato.ID {
			t.Errorf("studentId = %v; want %v", c.StudentID, lerato.ID)
		}
		if c.ID == 0 || c.SentAt.IsZero() {
			t.Errorf("missing id or sentAt: %+v", c)
		}
	})

	t.Run("Unresolved recipient is still recorded", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/comms", token,
			[]byte(`{"recipientName":"A Parent","message":"Report cards go out Friday."}`))
		ts.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
		}
		var c comms.Communication
		decodeBody(t, rec, &c)
		if c.StudentID != nil {
			t.Errorf("studentId = %v; want nil", *c.StudentID)
		}

		req, rec = newAuthRequest(http.MethodGet, "/v1/comms", token)
		ts.app.ServeHTTP(rec, req)
		var all []comms.Communication
		decodeBody(t, rec, &all)
		if len(all) != 2 {
			t.Errorf("len = %v; want 2", len(all))
		}
	})
}

func Test_commsApi_inbox(t *testing.T) {
	ts := newTestServer(t)
	token := teacherToken(t, "Mrs. Dlamini")
	lerato := ts.seedStudent(t, "Lerato Nkosi")
	sipho := ts.seedStudent(t, "Sipho Zulu")

	send := func(name, message string) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/comms", token,
			marchallObj(t, comms.NewCommunication{RecipientName: name, Message: message}))
		ts.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("send(%s): code = %v; body %s", name, rec.Code, rec.Body.String())
		}
	}
	send(lerato.Name, "first")
	send(sipho.Name, "for sipho")
	send(lerato.Name, "second")

	t.Run("Students only", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/comms/inbox", token)
		ts.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermissionDenied)}, rec)
	})

	t.Run("Own messages, most recent first", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/comms/inbox", studentToken(t, lerato.Name))
		ts.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
		}
		var inbox []comms.Communication
		decodeBody(t, rec, &inbox)
		if len(inbox) != 2 {
			t.Fatalf("len = %v; want 2", len(inbox))
		}
		if inbox[0].Message != "second" || inbox[1].Message != "first" {
			t.Errorf("unexpected order: %q, %q", inbox[0].Message, inbox[1].Message)
		}
	})
}
