package records

// Role identifies an account role. Values mirror the roles table.
type Role int

const (
	RoleAdministrator Role = 1
	RolePhysician     Role = 2
	RoleNurse         Role = 3
	RoleReceptionist  Role = 4
	RolePharmacy      Role = 5
	RoleAuditor       Role = 6
)

var roleNames = map[Role]string{
	RoleAdministrator: "Administrador",
	RolePhysician:     "Médico",
	RoleNurse:         "Enfermera",
	RoleReceptionist:  "Recepcionista",
	RolePharmacy:      "Farmacia",
	RoleAuditor:       "Auditor",
}

// Name returns the display name of the role, or "Usuario" when unknown.
func (r Role) Name() string {
	if n, ok := roleNames[r]; ok {
		return n
	}
	return "Usuario"
}

// Views of the administration front end.
const (
	ViewDashboard     = "dashboard"
	ViewPatients      = "patients"
	ViewAppointments  = "appointments"
	ViewConsultations = "consultations"
	ViewAdmin         = "admin"
)

var viewRoles = map[string][]Role{
	ViewPatients:      {RoleAdministrator, RoleReceptionist, RoleNurse, RolePhysician},
	ViewAppointments:  {RoleAdministrator, RoleReceptionist, RoleNurse, RolePhysician},
	ViewConsultations: {RoleAdministrator, RolePhysician},
	ViewAdmin:         {RoleAdministrator, RoleAuditor},
}

// CanAccess reports whether role may open view. The dashboard is open to every
// role; unknown views are closed. This is display gating only.
func CanAccess(view string, role Role) bool {
	if view == ViewDashboard {
		return true
	}
	for _, r := range viewRoles[view] {
		if r == role {
			return true
		}
	}
	return false
}

// ViewsFor lists the views role may open, in menu order.
func ViewsFor(role Role) []string {
	var views []string
	for _, v := range []string{ViewDashboard, ViewPatients, ViewAppointments, ViewConsultations, ViewAdmin} {
		if CanAccess(v, role) {
			views = append(views, v)
		}
	}
	return views
}
