package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aryandumale04/SmartPrep/internal/ai"
	"github.com/aryandumale04/SmartPrep/internal/auth"
	"github.com/aryandumale04/SmartPrep/internal/render"
	"github.com/aryandumale04/SmartPrep/internal/repository"
	"github.com/aryandumale04/SmartPrep/pkg/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUsers struct {
	mu       sync.Mutex
	byEmail  map[string]*model.User
	sessions map[string]*model.UserSession
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: map[string]*model.User{}, sessions: map[string]*model.UserSession{}}
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byEmail[u.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	u.UserID = uuid.New()
	u.CreatedAt = time.Now()
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byEmail {
		if u.UserID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) CreateSession(_ context.Context, s *model.UserSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[s.SessionID] = s
	return nil
}

func (f *fakeUsers) GetSession(_ context.Context, id string) (*model.UserSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sessions[id]; ok {
		return s, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) RevokeSession(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.IsRevoked = true
	return nil
}

func (f *fakeUsers) DeleteSession(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, id)
	return nil
}

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*model.PrepSession
	store    *fakeQuestions
}

func (f *fakeSessions) Create(_ context.Context, s *model.PrepSession, qs []model.Question) error {
	f.mu.Lock()
	s.SessionID = uuid.New()
	s.QuestionCount = len(qs)
	f.sessions[s.SessionID] = s
	f.mu.Unlock()
	_, err := f.store.CreateBatch(context.Background(), s.SessionID, qs)
	return err
}

func (f *fakeSessions) ListByUser(_ context.Context, userID uuid.UUID) ([]model.PrepSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.PrepSession{}
	for _, s := range f.sessions {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSessions) Get(_ context.Context, userID, id uuid.UUID) (*model.PrepSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok || s.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return s, nil
}

func (f *fakeSessions) Delete(_ context.Context, userID, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok || s.UserID != userID {
		return repository.ErrNotFound
	}
	delete(f.sessions, id)
	return nil
}

type fakeQuestions struct {
	mu     sync.Mutex
	nextID int64
	all    []model.Question
}

func (f *fakeQuestions) CreateBatch(_ context.Context, sessionID uuid.UUID, qs []model.Question) ([]model.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range qs {
		f.nextID++
		qs[i].QID = f.nextID
		qs[i].SessionID = sessionID
		f.all = append(f.all, qs[i])
	}
	return qs, nil
}

func (f *fakeQuestions) ListBySession(_ context.Context, sessionID uuid.UUID) ([]model.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Question{}
	for _, q := range f.all {
		if q.SessionID == sessionID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeQuestions) TogglePin(_ context.Context, _ uuid.UUID, qID int64) (*model.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.all {
		if f.all[i].QID == qID {
			f.all[i].IsPinned = !f.all[i].IsPinned
			q := f.all[i]
			return &q, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeQuestions) UpdateNote(_ context.Context, _ uuid.UUID, qID int64, note string) (*model.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.all {
		if f.all[i].QID == qID {
			f.all[i].Note = note
			q := f.all[i]
			return &q, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeAI struct {
	qas    []ai.QA
	expl   ai.Explanation
	err    error
	params ai.QuestionParams
}

func (f *fakeAI) GenerateQuestions(_ context.Context, p ai.QuestionParams) ([]ai.QA, error) {
	f.params = p
	return f.qas, f.err
}

func (f *fakeAI) ExplainConcept(_ context.Context, q string) (ai.Explanation, error) {
	if strings.TrimSpace(q) == "" {
		return ai.Explanation{}, ai.ErrEmptyQuestion
	}
	return f.expl, f.err
}

func (f *fakeAI) Provider() string { return "fake" }

type testEnv struct {
	h         *Handler
	router    *gin.Engine
	users     *fakeUsers
	sessions  *fakeSessions
	questions *fakeQuestions
	ai        *fakeAI
	userID    uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	qs := &fakeQuestions{}
	env := &testEnv{
		users:     newFakeUsers(),
		sessions:  &fakeSessions{sessions: map[uuid.UUID]*model.PrepSession{}, store: qs},
		questions: qs,
		ai:        &fakeAI{},
		userID:    uuid.New(),
	}
	env.h = &Handler{
		Logger:          zap.NewNop(),
		Users:           env.users,
		Sessions:        env.sessions,
		Questions:       env.questions,
		AI:              env.ai,
		Renderer:        render.New(),
		TokenMaker:      auth.NewJWTMaker(strings.Repeat("k", 32)),
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	}

	r := gin.New()
	r.POST("/auth/signup", env.h.SignUp)
	r.POST("/auth/login", env.h.Login)
	r.POST("/auth/tokens/renew", env.h.RenewAccessToken)
	r.POST("/render", env.h.Render)
	r.GET("/render/styles.css", env.h.Stylesheet)
	r.GET("/healthz", env.h.Healthz)

	p := r.Group("/")
	p.Use(func(c *gin.Context) {
		c.Set(ClaimsKey, &auth.UserClaims{UserID: env.userID, Email: "me@example.com"})
		c.Next()
	})
	p.POST("/sessions", env.h.CreateSession)
	p.GET("/sessions", env.h.ListSessions)
	p.GET("/sessions/:id", env.h.GetSession)
	p.GET("/sessions/:id/export", env.h.ExportSession)
	p.DELETE("/sessions/:id", env.h.DeleteSession)
	p.POST("/sessions/:id/questions", env.h.GenerateMore)
	p.POST("/questions/:id/pin", env.h.TogglePin)
	p.PUT("/questions/:id/note", env.h.UpdateNote)
	p.POST("/ai/questions", env.h.GenerateQuestions)
	p.POST("/ai/explain", env.h.ExplainConcept)
	env.router = r
	return env
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (e *testEnv) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}
