package domain

// Known roles. Unrecognized values are still accepted and stored verbatim;
// they fall through to the generic dashboard path below.
const (
	RoleBuyer    = "buyer"
	RoleSeller   = "seller"
	RoleNGO      = "ngo"
	RoleDonation = "donation"
)

// dashboardPaths maps each known role to its panel page.
var dashboardPaths = map[string]string{
	RoleBuyer:    "buyer-panel.html",
	RoleSeller:   "seller-panel.html",
	RoleNGO:      "ngo-panel.html",
	RoleDonation: "donation-panel.html",
}

// DashboardPath resolves the destination page for a verified role.
// Unmapped non-empty roles resolve to "<role>-dashboard.html"; an empty
// role falls back to the landing page. Pure lookup, never fails.
func DashboardPath(role string) string {
	if p, ok := dashboardPaths[role]; ok {
		return p
	}
	if role != "" {
		return role + "-dashboard.html"
	}
	return "index.html"
}
