package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"verdic-backend/handlers"
	"verdic-backend/llm"
	"verdic-backend/middleware"
	"verdic-backend/models"
	"verdic-backend/repository"
	"verdic-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

type stubCompleter struct {
	reply string
	err   error
	calls int
}

func (s *stubCompleter) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

type stubCaseStore struct {
	cases   []*models.Case
	counts  map[models.CaseStatus]int
	err     error
	deleted []uuid.UUID
}

func (s *stubCaseStore) ListVisibleTo(ctx context.Context, callerID uuid.UUID, role models.AppRole, excludeID *uuid.UUID) ([]*models.Case, error) {
	return s.cases, s.err
}

func (s *stubCaseStore) Create(ctx context.Context, c *models.Case) error {
	if s.err != nil {
		return s.err
	}
	c.ID = uuid.New()
	s.cases = append(s.cases, c)
	return nil
}

func (s *stubCaseStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Case, error) {
	for _, c := range s.cases {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, errors.New("no rows in result set")
}

func (s *stubCaseStore) Update(ctx context.Context, c *models.Case) error {
	return s.err
}

func (s *stubCaseStore) UpdatePriority(ctx context.Context, id uuid.UUID, priority models.CasePriority) error {
	return s.err
}

func (s *stubCaseStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return s.err
}

func (s *stubCaseStore) ListBacklog(ctx context.Context, callerID uuid.UUID, role models.AppRole, filters repository.BacklogFilters) ([]*models.Case, error) {
	return s.cases, s.err
}

func (s *stubCaseStore) CountByStatus(ctx context.Context, callerID uuid.UUID, role models.AppRole) (map[models.CaseStatus]int, error) {
	return s.counts, s.err
}

type stubPrecedentSearcher struct {
	precedents []*models.Precedent
	err        error
	lastTerm   string
	lastLimit  int
}

func (s *stubPrecedentSearcher) Search(ctx context.Context, term string, limit int) ([]*models.Precedent, error) {
	s.lastTerm = term
	s.lastLimit = limit
	return s.precedents, s.err
}

type stubProfileReader struct {
	profile *models.Profile
	role    models.AppRole
	roleErr error
}

func (s *stubProfileReader) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	if s.profile == nil {
		return nil, errors.New("no rows in result set")
	}
	return s.profile, nil
}

func (s *stubProfileReader) GetRole(ctx context.Context, userID uuid.UUID) (models.AppRole, error) {
	if s.roleErr != nil {
		return models.RolePublicUser, s.roleErr
	}
	return s.role, nil
}

type testEnv struct {
	router    *gin.Engine
	ai        *stubCompleter
	store     *stubCaseStore
	searcher  *stubPrecedentSearcher
	profiles  *stubProfileReader
	adminTok  string
	lawyerTok string
	publicTok string
	lawyerID  uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ai := &stubCompleter{}
	store := &stubCaseStore{}
	searcher := &stubPrecedentSearcher{}
	profiles := &stubProfileReader{}

	precedentService := service.NewPrecedentService(
		service.PrecedentWithCaseStore(store),
		service.PrecedentWithCompleter(ai),
	)
	researchService := service.NewResearchService(service.ResearchWithCompleter(ai))
	assistantService := service.NewAssistantService(service.AssistantWithCompleter(ai))
	caseService := service.NewCaseService(service.CaseWithStore(store))

	router := handlers.NewRouter(handlers.RouterConfig{
		Auth:      middleware.NewAuthMiddleware(testSecret, nil),
		Precedent: handlers.NewPrecedentHandler(precedentService, nil),
		Research:  handlers.NewResearchHandler(researchService, searcher, nil),
		Assistant: handlers.NewAssistantHandler(assistantService, nil),
		Cases:     handlers.NewCaseHandler(caseService, nil),
		Profile:   handlers.NewProfileHandler(profiles, nil),
	})

	lawyerID := uuid.New()
	return &testEnv{
		router:    router,
		ai:        ai,
		store:     store,
		searcher:  searcher,
		profiles:  profiles,
		adminTok:  issueToken(t, uuid.New(), "admin"),
		lawyerTok: issueToken(t, lawyerID, "lawyer"),
		publicTok: issueToken(t, uuid.New(), "public_user"),
		lawyerID:  lawyerID,
	}
}

func issueToken(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID.String(),
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func sampleCase(title string) *models.Case {
	desc := "A dispute over unpaid dues"
	return &models.Case{
		ID:             uuid.New(),
		CaseNumber:     "CIV-2025-" + uuid.NewString()[:8],
		Title:          title,
		Description:    &desc,
		CaseType:       models.TypeCivil,
		Status:         models.StatusFiled,
		Priority:       models.PriorityMedium,
		FilingDate:     time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		PetitionerName: "Petitioner",
		RespondentName: "Respondent",
	}
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "unexpected status, body: %s", w.Body.String())
}
