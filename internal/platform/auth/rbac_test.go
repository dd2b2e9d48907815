package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sighc/sighc/pkg/records"
)

func contextWithRole(role records.Role) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != 0 {
		setIdentity(c, 9, "test", role, true)
	}
	return c
}

func TestRequireRole_Allowed(t *testing.T) {
	c := contextWithRole(records.RoleReceptionist)
	mw := RequireRole(records.RoleReceptionist, records.RoleNurse)
	if err := mw(okHandler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequireRole_Denied(t *testing.T) {
	c := contextWithRole(records.RoleAuditor)
	err := RequireRole(records.RolePhysician)(okHandler)(c)
	expectStatus(t, err, http.StatusForbidden)
	if msg := err.(*echo.HTTPError).Message; msg != "required role: Médico" {
		t.Errorf("unexpected message %v", msg)
	}
}

func TestRequireRole_AdminBypass(t *testing.T) {
	c := contextWithRole(records.RoleAdministrator)
	if err := RequireRole(records.RolePharmacy)(okHandler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequireRole_Anonymous(t *testing.T) {
	c := contextWithRole(0)
	err := RequireRole(records.RolePhysician)(okHandler)(c)
	expectStatus(t, err, http.StatusForbidden)
}

func TestRequireView(t *testing.T) {
	tests := []struct {
		view    string
		role    records.Role
		allowed bool
	}{
		{records.ViewConsultations, records.RolePhysician, true},
		{records.ViewConsultations, records.RoleNurse, false},
		{records.ViewAdmin, records.RoleAuditor, true},
		{records.ViewAdmin, records.RoleReceptionist, false},
		{records.ViewPatients, records.RoleNurse, true},
		{records.ViewDashboard, records.RolePharmacy, true},
	}

	for _, tt := range tests {
		t.Run(tt.view+"/"+tt.role.Name(), func(t *testing.T) {
			c := contextWithRole(tt.role)
			err := RequireView(tt.view)(okHandler)(c)
			if tt.allowed && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.allowed {
				expectStatus(t, err, http.StatusForbidden)
			}
		})
	}
}
