package echoapi

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/fundalabs/funda/core"
	"github.com/fundalabs/funda/core/assignment"
	"github.com/fundalabs/funda/core/identity"
	"github.com/fundalabs/funda/services/generate/dummy"
)

func generateBody(t *testing.T, outputType assignment.OutputType, numQuestions int) []byte {
	return marchallObj(t, assignment.GenerateRequest{
		GradeLevel:   assignment.Grade7,
		Subject:      assignment.SubjectNaturalSciences,
		Topic:        "The Water Cycle",
		OutputType:   outputType,
		NumQuestions: numQuestions,
		Language:     assignment.LangEnglish,
	})
}

func Test_assignmentApi_generate(t *testing.T) {
	ts := newTestServer(t)
	id := ts.loginTeacher(t, "Mrs. Dlamini")
	token := getToken(t, id)

	tests := []httpTest{
		{name: "Auth required", method: http.MethodPost, path: "/v1/assignments/generate", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Teacher required", method: http.MethodPost, path: "/v1/assignments/generate",
			token: studentToken(t, "Thabo"), wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermissionDenied),
		},
		{
			name: "Unknown grade level", method: http.MethodPost, path: "/v1/assignments/generate", token: token,
			body:     []byte(`{"gradeLevel":"Grade 13","subject":"Natural Sciences","topic":"x","outputType":"Quiz","language":"English"}`),
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			ts.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("Quiz generation spends a credit", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/assignments/generate", token, generateBody(t, assignment.TypeQuiz, 3))
		ts.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
		}
		var resp GenerateResponse
		decodeBody(t, rec, &resp)
		if !resp.Content.IsQuiz() {
			t.Error("expected quiz content")
		}
		if got := len(resp.Content.Quiz); got != 3 {
			t.Errorf("question count = %v; want 3", got)
		}
		if resp.Credits != 4 {
			t.Errorf("credits = %v; want 4", resp.Credits)
		}
	})

	t.Run("Out of credits", func(t *testing.T) {
		for {
			if err := ts.identitySvc.Consume(id); err != nil {
				break
			}
		}
		req, rec := newAuthRequest(http.MethodPost, "/v1/assignments/generate", token, generateBody(t, assignment.TypeLessonPlan, 0))
		ts.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: identity.ErrOutOfCredits.Error()}),
		}, rec)
	})
}

func Test_assignmentApi_generate_failure(t *testing.T) {
	genErr := core.NewGenerationError(errors.New("upstream unavailable"))
	ts := newTestServer(t, dummygen.NewService(genErr))
	id := ts.loginTeacher(t, "Mrs. Dlamini")

	req, rec := newAuthRequest(http.MethodPost, "/v1/assignments/generate", getToken(t, id), generateBody(t, assignment.TypeStudyGuide, 0))
	ts.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusBadGateway,
		wantData: marchallObj(t, httpErr{Error: genErr.Error()}),
	}, rec)

	// a failed generation consumes nothing
	credits, err := ts.identitySvc.Credits(id)
	if err != nil {
		t.Fatalf("Credits(): %v", err)
	}
	if credits != 5 {
		t.Errorf("credits = %v; want 5", credits)
	}
}

func Test_assignmentApi_create(t *testing.T) {
	ts := newTestServer(t)
	token := teacherToken(t, "Mrs. Dlamini")

	tests := []httpTest{
		{
			name: "Empty distribution", method: http.MethodPost, path: "/v1/assignments", token: token,
			body:     []byte(`{"title":"Reading","type":"Study Guide","content":"# Notes","dueDate":"2026-09-01","assignedTo":[]}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "Quiz type with text content", method: http.MethodPost, path: "/v1/assignments", token: token,
			body:     []byte(`{"title":"Reading","type":"Quiz","content":"# Notes","dueDate":"2026-09-01","assignedTo":[1]}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "Created", method: http.MethodPost, path: "/v1/assignments", token: token,
			body:     []byte(`{"title":"Reading","type":"Study Guide","content":"# Notes","dueDate":"2026-09-01","assignedTo":[1]}`),
			wantCode: http.StatusCreated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			ts.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("Listed", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/assignments", token)
		ts.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
		}
		var list []assignment.Assignment
		decodeBody(t, rec, &list)
		if len(list) != 1 {
			t.Fatalf("len = %v; want 1", len(list))
		}
		if list[0].ID != 1 || list[0].Title != "Reading" {
			t.Errorf("unexpected assignment: %+v", list[0])
		}
	})
}

// Test_assignmentApi_submitFlow walks the whole classroom loop: a teacher
// assigns a quiz to two students, one submits and gets scored, the other's
// copy stays pending.
func Test_assignmentApi_submitFlow(t *testing.T) {
	ts := newTestServer(t)
	token := teacherToken(t, "Mrs. Dlamini")

	thabo := ts.seedStudent(t, "Thabo Mokoena")
	lerato := ts.seedStudent(t, "Lerato Nkosi")
	thaboToken := studentToken(t, thabo.Name)
	leratoToken := studentToken(t, lerato.Name)

	quiz := assignment.QuizContent([]assignment.QuizQuestion{
		{Question: "1+1?", Options: []string{"1", "2", "3", "4"}, CorrectAnswerIndex: 1, Explanation: "count it out"},
		{Question: "2+2?", Options: []string{"2", "3", "4", "5"}, CorrectAnswerIndex: 2, Explanation: "count it out"},
		{Question: "3+3?", Options: []string{"3", "6", "9", "12"}, CorrectAnswerIndex: 1, Explanation: "count it out"},
	})
	body := marchallObj(t, assignment.NewAssignment{
		Title:      "Addition quiz",
		Type:       assignment.TypeQuiz,
		Content:    quiz,
		DueDate:    "2026-09-04",
		AssignedTo: []int{thabo.ID, lerato.ID},
	})
	req, rec := newAuthRequest(http.MethodPost, "/v1/assignments", token, body)
	ts.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: code = %v; body %s", rec.Code, rec.Body.String())
	}
	var created assignment.Assignment
	decodeBody(t, rec, &created)

	submitPath := fmt.Sprintf("/v1/assignments/%d/submit", created.ID)

	t.Run("Teachers cannot submit", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, submitPath, token, []byte(`{"answers":[1,2,1]}`))
		ts.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermissionDenied)}, rec)
	})

	t.Run("Unknown assignment", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/assignments/404/submit", thaboToken, []byte(`{"answers":[1,2,1]}`))
		ts.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: assignment.ErrNotFound.Error()}),
		}, rec)
	})

	t.Run("Submission is scored", func(t *testing.T) {
		// 2 of 3 correct
		req, rec := newAuthRequest(http.MethodPost, submitPath, thaboToken, []byte(`{"answers":[1,2,0]}`))
		ts.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
		}
		var sub assignment.Submission
		decodeBody(t, rec, &sub)
		if sub.StudentID != thabo.ID {
			t.Errorf("studentId = %v; want %v", sub.StudentID, thabo.ID)
		}
		if sub.Score == nil || *sub.Score != 67 {
			t.Errorf("score = %v; want 67", sub.Score)
		}
	})

	t.Run("Completed for the submitter", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/assignments/mine", thaboToken)
		ts.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
		}
		var views []assignment.StudentAssignment
		decodeBody(t, rec, &views)
		if len(views) != 1 {
			t.Fatalf("len = %v; want 1", len(views))
		}
		if views[0].Status != assignment.StatusCompleted {
			t.Errorf("status = %v; want %v", views[0].Status, assignment.StatusCompleted)
		}
		if views[0].Submission == nil || views[0].Submission.Score == nil || *views[0].Submission.Score != 67 {
			t.Errorf("unexpected submission: %+v", views[0].Submission)
		}
	})

	t.Run("Still pending for the other student", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/assignments/mine", leratoToken)
		ts.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
		}
		var views []assignment.StudentAssignment
		decodeBody(t, rec, &views)
		if len(views) != 1 {
			t.Fatalf("len = %v; want 1", len(views))
		}
		if views[0].Status != assignment.StatusPending {
			t.Errorf("status = %v; want %v", views[0].Status, assignment.StatusPending)
		}
		if views[0].Submission != nil {
			t.Errorf("submission = %+v; want nil", views[0].Submission)
		}
	})

	t.Run("Resubmission replaces, never duplicates", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, submitPath, thaboToken, []byte(`{"answers":[1,2,1]}`))
		ts.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
		}

		a, err := ts.assignmentSvc.GetByID(created.ID)
		if err != nil {
			t.Fatalf("GetByID(): %v", err)
		}
		if len(a.Submissions) != 1 {
			t.Fatalf("submissions = %v; want 1", len(a.Submissions))
		}
		if a.Submissions[0].Score == nil || *a.Submissions[0].Score != 100 {
			t.Errorf("score = %v; want 100", a.Submissions[0].Score)
		}
	})
}
