package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	issuehttp "github.com/GoSim-25-26J-441/issue-tracker/internal/issues/http"
	"github.com/GoSim-25-26J-441/issue-tracker/internal/issues/repository"
	"github.com/GoSim-25-26J-441/issue-tracker/internal/issues/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// issueJSON mirrors the wire shape of an issue.
type issueJSON struct {
	ID         string    `json:"_id"`
	IssueTitle string    `json:"issue_title"`
	IssueText  string    `json:"issue_text"`
	CreatedOn  time.Time `json:"created_on"`
	UpdatedOn  time.Time `json:"updated_on"`
	CreatedBy  string    `json:"created_by"`
	AssignedTo string    `json:"assigned_to"`
	StatusText string    `json:"status_text"`
	Open       bool      `json:"open"`
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := service.NewIssueService(repository.NewMemoryStore())
	router := gin.New()
	issuehttp.NewHandler(svc).Register(router.Group("/api/issues"))
	return router
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func doForm(t *testing.T, router http.Handler, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeMessage(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func decodeList(t *testing.T, rr *httptest.ResponseRecorder) []issueJSON {
	t.Helper()
	require.Equal(t, http.StatusOK, rr.Code)
	var out []issueJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func createIssue(t *testing.T, router http.Handler, project string, body map[string]any) issueJSON {
	t.Helper()
	rr := doJSON(t, router, http.MethodPost, "/api/issues/"+project, body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var issue issueJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &issue))
	return issue
}

func TestIssueLifecycle(t *testing.T) {
	router := setupRouter(t)

	created := createIssue(t, router, "apitest", map[string]any{
		"issue_title": "t",
		"issue_text":  "x",
		"created_by":  "u",
	})
	_, err := uuid.Parse(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "t", created.IssueTitle)
	assert.Equal(t, "x", created.IssueText)
	assert.Equal(t, "u", created.CreatedBy)
	assert.Equal(t, "", created.AssignedTo)
	assert.Equal(t, "", created.StatusText)
	assert.True(t, created.Open)
	assert.False(t, created.CreatedOn.IsZero())
	assert.True(t, created.CreatedOn.Equal(created.UpdatedOn))

	rr := doJSON(t, router, http.MethodPut, "/api/issues/apitest", map[string]any{
		"_id":  created.ID,
		"open": false,
	})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, map[string]any{"result": "successfully updated", "_id": created.ID}, decodeMessage(t, rr))

	rr = doJSON(t, router, http.MethodGet, "/api/issues/apitest?_id="+created.ID, nil)
	listed := decodeList(t, rr)
	require.Len(t, listed, 1)
	assert.False(t, listed[0].Open)
	assert.Equal(t, created.IssueTitle, listed[0].IssueTitle)
	assert.True(t, listed[0].CreatedOn.Equal(created.CreatedOn))
	assert.False(t, listed[0].UpdatedOn.Before(created.UpdatedOn))

	rr = doJSON(t, router, http.MethodDelete, "/api/issues/apitest", map[string]any{"_id": created.ID})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, map[string]any{"result": "successfully deleted", "_id": created.ID}, decodeMessage(t, rr))

	rr = doJSON(t, router, http.MethodGet, "/api/issues/apitest?_id="+created.ID, nil)
	assert.Empty(t, decodeList(t, rr))
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestListIssues_Filters(t *testing.T) {
	router := setupRouter(t)

	a := createIssue(t, router, "apollo", map[string]any{"issue_title": "a", "issue_text": "x", "created_by": "ana"})
	b := createIssue(t, router, "apollo", map[string]any{"issue_title": "b", "issue_text": "x", "created_by": "bo", "assigned_to": "ana"})
	createIssue(t, router, "gemini", map[string]any{"issue_title": "c", "issue_text": "x", "created_by": "ana"})

	closeRR := doJSON(t, router, http.MethodPut, "/api/issues/apollo", map[string]any{"_id": b.ID, "open": "false"})
	require.Equal(t, "successfully updated", decodeMessage(t, closeRR)["result"])

	cases := []struct {
		name  string
		query string
		want  []string
	}{
		{"no filter keeps insertion order", "", []string{a.ID, b.ID}},
		{"single field", "?created_by=ana", []string{a.ID}},
		{"conjunction", "?issue_text=x&assigned_to=ana", []string{b.ID}},
		{"open false", "?open=false", []string{b.ID}},
		{"open true", "?open=true", []string{a.ID}},
		{"non boolean open matches nothing", "?open=maybe", nil},
		{"unknown field matches nothing", "?color=red", nil},
		{"unknown field alongside known ones", "?created_by=ana&colour=red", nil},
		{"malformed _id matches nothing", "?_id=123", nil},
		{"empty value matches empty fields", "?status_text=", []string{a.ID, b.ID}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := doJSON(t, router, http.MethodGet, "/api/issues/apollo"+tc.query, nil)
			var got []string
			for _, issue := range decodeList(t, rr) {
				got = append(got, issue.ID)
			}
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("unknown project is an empty array", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/api/issues/nothing-here", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, "[]", rr.Body.String())
	})
}

func TestCreateIssue_FormBody(t *testing.T) {
	router := setupRouter(t)

	rr := doForm(t, router, http.MethodPost, "/api/issues/apollo", url.Values{
		"issue_title": {"from a form"},
		"issue_text":  {"body"},
		"created_by":  {"u"},
		"status_text": {"triage"},
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var issue issueJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &issue))
	assert.Equal(t, "from a form", issue.IssueTitle)
	assert.Equal(t, "triage", issue.StatusText)

	rr = doForm(t, router, http.MethodPut, "/api/issues/apollo", url.Values{"_id": {issue.ID}, "assigned_to": {"bo"}})
	assert.Equal(t, "successfully updated", decodeMessage(t, rr)["result"])

	rr = doForm(t, router, http.MethodDelete, "/api/issues/apollo", url.Values{"_id": {issue.ID}})
	assert.Equal(t, "successfully deleted", decodeMessage(t, rr)["result"])
}

func TestCreateIssue_MissingRequiredFields(t *testing.T) {
	router := setupRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/api/issues/apollo", map[string]any{
		"issue_title": "t",
		"created_by":  "u",
	})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, map[string]any{"error": "required field(s) missing"}, decodeMessage(t, rr))

	rr = doJSON(t, router, http.MethodGet, "/api/issues/apollo", nil)
	assert.Empty(t, decodeList(t, rr))
}

func TestCreateIssue_InvalidBody(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/issues/apollo", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid request body", decodeMessage(t, rr)["error"])
}

func TestUpdateIssue_Outcomes(t *testing.T) {
	router := setupRouter(t)
	issue := createIssue(t, router, "apollo", map[string]any{"issue_title": "t", "issue_text": "x", "created_by": "u"})
	unknown := uuid.New().String()

	cases := []struct {
		name string
		body map[string]any
		want map[string]any
	}{
		{
			name: "missing _id",
			body: map[string]any{"open": false},
			want: map[string]any{"error": "missing _id"},
		},
		{
			name: "only _id",
			body: map[string]any{"_id": issue.ID},
			want: map[string]any{"error": "no update field(s) sent", "_id": issue.ID},
		},
		{
			name: "only non-updatable fields",
			body: map[string]any{"_id": issue.ID, "created_on": "2020-01-01", "color": "red"},
			want: map[string]any{"error": "no update field(s) sent", "_id": issue.ID},
		},
		{
			name: "unknown _id",
			body: map[string]any{"_id": unknown, "issue_text": "y"},
			want: map[string]any{"error": "could not update", "_id": unknown},
		},
		{
			name: "malformed _id",
			body: map[string]any{"_id": "123", "issue_text": "y"},
			want: map[string]any{"error": "could not update", "_id": "123"},
		},
		{
			name: "non boolean open",
			body: map[string]any{"_id": issue.ID, "open": "closed"},
			want: map[string]any{"error": "could not update", "_id": issue.ID},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := doJSON(t, router, http.MethodPut, "/api/issues/apollo", tc.body)
			require.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tc.want, decodeMessage(t, rr))
		})
	}

	rr := doJSON(t, router, http.MethodGet, "/api/issues/apollo?_id="+issue.ID, nil)
	listed := decodeList(t, rr)
	require.Len(t, listed, 1)
	assert.Equal(t, "x", listed[0].IssueText)
	assert.True(t, listed[0].Open)
	assert.True(t, listed[0].UpdatedOn.Equal(issue.UpdatedOn))
}

func TestDeleteIssue_Outcomes(t *testing.T) {
	router := setupRouter(t)
	issue := createIssue(t, router, "apollo", map[string]any{"issue_title": "t", "issue_text": "x", "created_by": "u"})

	rr := doJSON(t, router, http.MethodDelete, "/api/issues/apollo", map[string]any{})
	assert.Equal(t, map[string]any{"error": "missing _id"}, decodeMessage(t, rr))

	rr = doJSON(t, router, http.MethodDelete, "/api/issues/apollo", map[string]any{"_id": "nope"})
	assert.Equal(t, map[string]any{"error": "could not delete", "_id": "nope"}, decodeMessage(t, rr))

	rr = doJSON(t, router, http.MethodDelete, "/api/issues/gemini", map[string]any{"_id": issue.ID})
	assert.Equal(t, map[string]any{"error": "could not delete", "_id": issue.ID}, decodeMessage(t, rr))

	rr = doJSON(t, router, http.MethodDelete, "/api/issues/apollo", map[string]any{"_id": issue.ID})
	assert.Equal(t, map[string]any{"result": "successfully deleted", "_id": issue.ID}, decodeMessage(t, rr))

	rr = doJSON(t, router, http.MethodDelete, "/api/issues/apollo", map[string]any{"_id": issue.ID})
	assert.Equal(t, map[string]any{"error": "could not delete", "_id": issue.ID}, decodeMessage(t, rr))
}

func TestIssueOutcomes_EchoIDAsSent(t *testing.T) {
	router := setupRouter(t)

	send := func(method, body string) map[string]any {
		req := httptest.NewRequest(method, "/api/issues/apollo", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
		return decodeMessage(t, rr)
	}

	assert.Equal(t, map[string]any{"error": "could not update", "_id": float64(123)},
		send(http.MethodPut, `{"_id": 123, "open": false}`))
	assert.Equal(t, map[string]any{"error": "could not update", "_id": nil},
		send(http.MethodPut, `{"_id": null, "issue_text": "y"}`))
	assert.Equal(t, map[string]any{"error": "no update field(s) sent", "_id": true},
		send(http.MethodPut, `{"_id": true}`))
	assert.Equal(t, map[string]any{"error": "could not delete", "_id": float64(42)},
		send(http.MethodDelete, `{"_id": 42}`))

	rr := doJSON(t, router, http.MethodPut, "/api/issues/apollo", nil)
	assert.Equal(t, map[string]any{"error": "missing _id"}, decodeMessage(t, rr))
}
