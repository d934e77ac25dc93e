package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rojgarihub/rojgarihub-backend/models"
	"github.com/rojgarihub/rojgarihub-backend/utils"
)

func requestContext(t *testing.T, authHeader string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodGet, "/jobs/abc", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	c.Request = req
	return c
}

func TestOptionalPrincipal_Anonymous(t *testing.T) {
	if _, ok := optionalPrincipal(requestContext(t, "")); ok {
		t.Error("no Authorization header should resolve to anonymous")
	}
	if _, ok := optionalPrincipal(requestContext(t, "Basic dXNlcg==")); ok {
		t.Error("non-bearer header should resolve to anonymous")
	}
}

func TestOptionalPrincipal_ValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := utils.GenerateAccessToken("e1", "a@b.com", string(models.RoleEmployer), time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	p, ok := optionalPrincipal(requestContext(t, "Bearer "+token))
	if !ok {
		t.Fatal("valid bearer token should resolve a principal")
	}
	if p.ID != "e1" || p.Role != models.RoleEmployer {
		t.Errorf("principal = %+v, want e1/EMPLOYER", p)
	}
}

func TestOptionalPrincipal_BadToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	if _, ok := optionalPrincipal(requestContext(t, "Bearer not-a-token")); ok {
		t.Error("garbage token should resolve to anonymous, not error out")
	}

	expired, err := utils.GenerateAccessToken("e1", "a@b.com", string(models.RoleEmployer), -time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, ok := optionalPrincipal(requestContext(t, "Bearer "+expired)); ok {
		t.Error("expired token should resolve to anonymous")
	}
}
