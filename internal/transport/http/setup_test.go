package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"coursehub/internal/application/usecase"
	"coursehub/internal/infrastructure/repository/inmem"
	"coursehub/internal/infrastructure/security"
	"coursehub/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router *gin.Engine
	users  *inmem.UserRepository
	media  *inmem.MediaStore
	tokens *security.TokenManager
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)

	db := inmem.NewDB()
	users := inmem.NewUserRepository(db)
	catalogRepo := inmem.NewCatalogRepository(db)
	enrollmentRepo := inmem.NewEnrollmentRepository(db)
	media := inmem.NewMediaStore()

	hasher := security.NewPasswordHasher()
	tokens := security.NewTokenManager("test-secret")

	authUC := usecase.NewAuthUseCase(users, hasher, tokens)
	catalogUC := usecase.NewCatalogUseCase(users, catalogRepo, enrollmentRepo, media)
	enrollmentUC := usecase.NewEnrollmentUseCase(catalogRepo, enrollmentRepo, media, 0)

	router := NewRouter(
		NewAuthHandler(authUC),
		NewCourseHandler(catalogUC),
		NewCategoryHandler(catalogUC),
		NewEnrollmentHandler(enrollmentUC),
		middleware.NewRateLimiter(inmem.NewCounterStore()),
		tokens,
		nil,
	)

	return &testEnv{
		router: router,
		users:  users,
		media:  media,
		tokens: tokens,
	}
}

func (e *testEnv) doJSON(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

// register creates an account through the API and returns its token.
func (e *testEnv) register(t *testing.T, name, email string) string {
	t.Helper()

	rec := e.doJSON(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": "pw1234",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var res struct {
		Token string `json:"token"`
	}
	decode(t, rec, &res)
	require.NotEmpty(t, res.Token)
	return res.Token
}

// promote flips the admin flag in the store, as an operator would do
// directly in the database. The user's existing token stays valid since it
// only asserts identity.
func (e *testEnv) promote(t *testing.T, email string) {
	t.Helper()

	user, err := e.users.GetByEmail(context.Background(), email)
	require.NoError(t, err)
	e.users.Promote(user.ID)
}

func (e *testEnv) registerAdmin(t *testing.T, name, email string) string {
	t.Helper()

	token := e.register(t, name, email)
	e.promote(t, email)
	return token
}

func (e *testEnv) createCategory(t *testing.T, adminToken, name string) string {
	t.Helper()

	rec := e.doJSON(t, http.MethodPost, "/api/v1/categories", adminToken, gin.H{"name": name})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var res struct {
		Category struct {
			ID string `json:"id"`
		} `json:"category"`
	}
	decode(t, rec, &res)
	return res.Category.ID
}

type topicPart struct {
	title string
	video []byte
}

// courseForm builds the multipart body the authoring endpoint expects:
// plain fields, an "image" file, and index-aligned topic_title/topic_video
// arrays.
func courseForm(t *testing.T, fields map[string]string, image []byte, topics []topicPart) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if image != nil {
		fw, err := w.CreateFormFile("image", "cover.jpg")
		require.NoError(t, err)
		_, err = fw.Write(image)
		require.NoError(t, err)
	}
	for _, topic := range topics {
		require.NoError(t, w.WriteField("topic_title", topic.title))
		fw, err := w.CreateFormFile("topic_video", "lesson.mp4")
		require.NoError(t, err)
		_, err = fw.Write(topic.video)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return &buf, w.FormDataContentType()
}

func (e *testEnv) createCourse(t *testing.T, token string, fields map[string]string, image []byte, topics []topicPart) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := courseForm(t, fields, image, topics)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/courses", body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}
