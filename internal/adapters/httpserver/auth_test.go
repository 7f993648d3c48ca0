package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kozoukioden/dusakabin-app/internal/domain"
)

func sessionCookie(t *testing.T, u *sessionUser) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	writeUserSession(rec, u)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestSessionRoundTrip(t *testing.T) {
	c := sessionCookie(t, &sessionUser{Username: "usta", Name: "Usta", Role: domain.RoleUsta})

	r := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	r.AddCookie(c)

	got := readUserSession(r)
	require.NotNil(t, got)
	assert.Equal(t, "usta", got.Username)
	assert.Equal(t, domain.RoleUsta, got.Role)
}

func TestSessionRejectsTampering(t *testing.T) {
	c := sessionCookie(t, &sessionUser{Username: "usta", Role: domain.RoleUsta})

	parts := strings.SplitN(c.Value, ".", 2)
	require.Len(t, parts, 2)
	forged := *c
	forged.Value = parts[0] + "." + strings.Replace(parts[1], "a", "b", 1)

	r := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	r.AddCookie(&forged)
	assert.Nil(t, readUserSession(r))
}

func TestSessionRejectsInvalidRole(t *testing.T) {
	c := sessionCookie(t, &sessionUser{Username: "x", Role: domain.Role("root")})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(c)
	assert.Nil(t, readUserSession(r))
}

func TestRequireRole(t *testing.T) {
	s := &Server{}

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/rules", nil)
	r.AddCookie(sessionCookie(t, &sessionUser{Username: "usta", Role: domain.RoleUsta}))
	assert.False(t, s.requireRole(rec, r, domain.RoleAdmin))
	assert.Equal(t, 403, rec.Code)

	rec = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodGet, "/api/rules", nil)
	r.AddCookie(sessionCookie(t, &sessionUser{Username: "admin", Role: domain.RoleAdmin}))
	assert.True(t, s.requireRole(rec, r, domain.RoleAdmin))
}

func TestRequireSessionMissingCookie(t *testing.T) {
	s := &Server{}
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	assert.Nil(t, s.requireSession(rec, r))
	assert.Equal(t, 401, rec.Code)
}
