package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sighc/sighc/internal/platform/auth"
	"github.com/sighc/sighc/pkg/records"
)

func newTestHandler() (*Handler, *echo.Echo) {
	svc, _, _, _ := newTestService()
	return NewHandler(svc), echo.New()
}

func TestHandler_Login(t *testing.T) {
	h, e := newTestHandler()

	body := `{"username":"admin","password":"admin"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var u records.User
	json.Unmarshal(rec.Body.Bytes(), &u)
	if u.Username != "admin" || u.RoleID != records.RoleAdministrator || u.Token != "signed" {
		t.Errorf("unexpected user %+v", u)
	}
}

func TestHandler_Login_Unauthorized(t *testing.T) {
	h, e := newTestHandler()

	body := `{"username":"ghost","password":"x"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", he.Code)
	}
	if he.Message != "Credenciales inválidas" {
		t.Errorf("unexpected message %v", he.Message)
	}
}

func TestHandler_Login_BadBody(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader("{"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestHandler_Login_IssuesVerifiableSession(t *testing.T) {
	sessions, err := auth.NewSessions([]byte(strings.Repeat("k", 32)), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	users := newMockUserRepo()
	users.users["enf"] = &records.User{ID: 3, Username: "enf", RoleID: records.RoleNurse}
	h := NewHandler(NewService(users, &mockPhysicianRepo{}, sessions))
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"enf"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.Login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var u records.User
	json.Unmarshal(rec.Body.Bytes(), &u)
	claims, err := sessions.Parse(u.Token)
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims.UserID() != 3 || claims.Role != records.RoleNurse {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestHandler_ListPhysicians(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/medicos", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListPhysicians(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"NombreEspecialidad":"Medicina General"`) {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestHandler_ListPhysicians_Error(t *testing.T) {
	users := newMockUserRepo()
	h := NewHandler(NewService(users, &mockPhysicianRepo{err: fmt.Errorf("relation \"medicos\" does not exist")}, nil))
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/medicos", nil)
	rec := httptest.NewRecorder()
	err := h.ListPhysicians(e.NewContext(req, rec))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %v", err)
	}
}

func TestHandler_RegisterRoutes_ViewGating(t *testing.T) {
	h, e := newTestHandler()
	h.RegisterRoutes(e.Group("/api"))

	tests := []struct {
		role records.Role
		want int
	}{
		{records.RoleReceptionist, http.StatusOK},
		{records.RolePharmacy, http.StatusForbidden},
		{records.RoleAuditor, http.StatusForbidden},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/medicos", nil)
		req = req.WithContext(context.WithValue(req.Context(), auth.RoleKey, tt.role))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Errorf("role %s: expected %d, got %d", tt.role.Name(), tt.want, rec.Code)
		}
	}
}
