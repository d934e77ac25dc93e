package utils_test

import (
	"testing"
	"time"

	"github.com/rojgarihub/rojgarihub-backend/utils"
)

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Backend Engineer", "backend-engineer"},
		{"Développeur Go (Senior)", "developpeur-go-senior"},
		{"  C++ / Rust!!  ", "c-rust"},
		{"RojgariHub 2026", "rojgarihub-2026"},
	}
	for _, c := range cases {
		if got := utils.GenerateSlug(c.in); got != c.want {
			t.Errorf("GenerateSlug(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseIntDefault(t *testing.T) {
	if got := utils.ParseIntDefault("", 7); got != 7 {
		t.Errorf("ParseIntDefault(\"\") = %d, want 7", got)
	}
	if got := utils.ParseIntDefault("12", 7); got != 12 {
		t.Errorf("ParseIntDefault(\"12\") = %d, want 12", got)
	}
	if got := utils.ParseIntDefault("abc", 7); got != 7 {
		t.Errorf("ParseIntDefault(\"abc\") = %d, want 7", got)
	}
}

func TestParseBoolQuery(t *testing.T) {
	b, err := utils.ParseBoolQuery("")
	if b != nil || err != nil {
		t.Errorf("ParseBoolQuery(\"\") = %v, %v; want nil, nil", b, err)
	}
	b, err = utils.ParseBoolQuery("true")
	if err != nil || b == nil || !*b {
		t.Errorf("ParseBoolQuery(\"true\") = %v, %v; want true", b, err)
	}
	if _, err := utils.ParseBoolQuery("maybe"); err == nil {
		t.Error("ParseBoolQuery(\"maybe\") expected error")
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		want  int64
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{100, 10, 10},
		{5, 0, 0},
	}
	for _, c := range cases {
		if got := utils.TotalPages(c.total, c.limit); got != c.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", c.total, c.limit, got, c.want)
		}
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := utils.HashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter2hunter2" {
		t.Fatal("password stored in plaintext")
	}
	if err := utils.CheckPassword(hash, "hunter2hunter2"); err != nil {
		t.Errorf("CheckPassword with correct password: %v", err)
	}
	if err := utils.CheckPassword(hash, "wrong"); err == nil {
		t.Error("CheckPassword with wrong password should fail")
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := utils.GenerateAccessToken("u1", "a@b.com", "EMPLOYER", time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := utils.ValidateToken(token, "test-secret")
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "a@b.com" || claims.Role != "EMPLOYER" {
		t.Errorf("claims = %+v, want u1/a@b.com/EMPLOYER", claims)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := utils.GenerateAccessToken("u1", "a@b.com", "ADMIN", time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := utils.ValidateToken(token, "another-secret"); err == nil {
		t.Error("token signed with a different secret should not validate")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := utils.GenerateAccessToken("u1", "a@b.com", "ADMIN", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := utils.ValidateToken(token, "test-secret"); err == nil {
		t.Error("expired token should not validate")
	}
}

func TestTTLDefaults(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "")
	t.Setenv("REFRESH_TOKEN_TTL_DAYS", "")
	if got := utils.AccessTTL(); got != 15*time.Minute {
		t.Errorf("AccessTTL default = %v, want 15m", got)
	}
	if got := utils.RefreshTTL(); got != 14*24*time.Hour {
		t.Errorf("RefreshTTL default = %v, want 14 days", got)
	}

	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "30")
	if got := utils.AccessTTL(); got != 30*time.Minute {
		t.Errorf("AccessTTL = %v, want 30m", got)
	}
}
