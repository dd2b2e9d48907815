package patient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sighc/sighc/internal/platform/auth"
	"github.com/sighc/sighc/pkg/records"
)

func newTestHandler() (*Handler, *mockRepo, *echo.Echo) {
	svc, repo := newTestService()
	return NewHandler(svc), repo, echo.New()
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandler_Register(t *testing.T) {
	h, _, e := newTestHandler()

	body := `{"DNI":"27222136","Nombres":"Eduardo","Apellidos":"Paipay","FechaNacimiento":"2000-05-14","Sexo":"M","UsuarioRegistro":2}`
	c, rec := postJSON(e, "/api/patients", body)

	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	var res records.WriteResult
	json.Unmarshal(rec.Body.Bytes(), &res)
	if !res.Success || res.ID != 1 || res.Message != "Paciente registrado: HC-2025-00001" {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestHandler_Register_UsesSessionUser(t *testing.T) {
	h, repo, e := newTestHandler()

	body := `{"DNI":"27222136","Nombres":"Eduardo","Apellidos":"Paipay","FechaNacimiento":"2000-05-14","Sexo":"M"}`
	c, _ := postJSON(e, "/api/patients", body)
	ctx := context.WithValue(c.Request().Context(), auth.UserIDKey, 5)
	c.SetRequest(c.Request().WithContext(ctx))

	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastNew.RegisteredBy != 5 {
		t.Errorf("expected session user 5, got %d", repo.lastNew.RegisteredBy)
	}
}

func TestHandler_Register_VerifiedSessionOverridesClaim(t *testing.T) {
	h, repo, e := newTestHandler()

	body := `{"DNI":"27222136","Nombres":"Eduardo","Apellidos":"Paipay","FechaNacimiento":"2000-05-14","Sexo":"M","UsuarioRegistro":1}`
	c, _ := postJSON(e, "/api/patients", body)
	ctx := context.WithValue(c.Request().Context(), auth.UserIDKey, 2)
	ctx = context.WithValue(ctx, auth.SessionKey, true)
	c.SetRequest(c.Request().WithContext(ctx))

	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastNew.RegisteredBy != 2 {
		t.Errorf("expected token user 2 to override claimed 1, got %d", repo.lastNew.RegisteredBy)
	}
}

func TestHandler_Register_ValidationIs400(t *testing.T) {
	h, _, e := newTestHandler()

	c, _ := postJSON(e, "/api/patients", `{"Nombres":"Eduardo"}`)
	err := h.Register(c)
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", he.Code)
	}
	body, ok := he.Message.(records.ErrorBody)
	if !ok || body.Success || body.Message != "DNI es obligatorio" {
		t.Errorf("unexpected body %#v", he.Message)
	}
}

func TestHandler_Register_ProcedureErrorSurfaced(t *testing.T) {
	h, _, e := newTestHandler()
	body := `{"DNI":"27222136","Nombres":"Eduardo","Apellidos":"Paipay","FechaNacimiento":"2000-05-14","Sexo":"M"}`

	c, _ := postJSON(e, "/api/patients", body)
	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, rec := postJSON(e, "/api/patients", body)
	e.HTTPErrorHandler(h.Register(c), c)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	var res records.ErrorBody
	json.Unmarshal(rec.Body.Bytes(), &res)
	if res.Success || res.Message != "Ya existe un paciente con el DNI 27222136" {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestHandler_Register_BadBody(t *testing.T) {
	h, _, e := newTestHandler()

	c, _ := postJSON(e, "/api/patients", `{"DNI":`)
	err := h.Register(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestHandler_ListActive(t *testing.T) {
	h, repo, e := newTestHandler()
	repo.patients[1] = records.Patient{ID: 1, MedicalRecordNo: "HC-2025-00001", FirstNames: "Ana", Status: "A"}
	repo.patients[2] = records.Patient{ID: 2, MedicalRecordNo: "HC-2025-00002", FirstNames: "Luis", Status: "I"}

	req := httptest.NewRequest(http.MethodGet, "/api/patients", nil)
	rec := httptest.NewRecorder()
	if err := h.ListActive(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var patients []records.Patient
	json.Unmarshal(rec.Body.Bytes(), &patients)
	if len(patients) != 1 || patients[0].MedicalRecordNo != "HC-2025-00001" {
		t.Errorf("expected only the active patient, got %+v", patients)
	}
}

func TestHandler_ListActive_ErrorIs500(t *testing.T) {
	h, repo, e := newTestHandler()
	repo.err = fmt.Errorf("list active patients: connection reset")

	req := httptest.NewRequest(http.MethodGet, "/api/patients", nil)
	rec := httptest.NewRecorder()
	err := h.ListActive(e.NewContext(req, rec))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %v", err)
	}
	if he.Message != "list active patients: connection reset" {
		t.Errorf("unexpected message %v", he.Message)
	}
}

func TestHandler_RegisterRoutes_ViewGating(t *testing.T) {
	h, _, e := newTestHandler()
	h.RegisterRoutes(e.Group("/api"))

	tests := []struct {
		path string
		role records.Role
		want int
	}{
		{"/api/patients", records.RoleReceptionist, http.StatusOK},
		{"/api/patients", records.RolePharmacy, http.StatusForbidden},
		{"/api/patients", records.RoleAuditor, http.StatusForbidden},
		{"/api/pacientes-simple", records.RoleNurse, http.StatusOK},
		{"/api/pacientes-simple", records.RolePharmacy, http.StatusForbidden},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		req = req.WithContext(context.WithValue(req.Context(), auth.RoleKey, tt.role))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Errorf("%s as %s: expected %d, got %d", tt.path, tt.role.Name(), tt.want, rec.Code)
		}
	}
}
