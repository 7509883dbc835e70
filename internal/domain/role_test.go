package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDashboardPath_KnownRoles(t *testing.T) {
	assert.Equal(t, "buyer-panel.html", DashboardPath(RoleBuyer))
	assert.Equal(t, "seller-panel.html", DashboardPath(RoleSeller))
	assert.Equal(t, "ngo-panel.html", DashboardPath(RoleNGO))
	assert.Equal(t, "donation-panel.html", DashboardPath(RoleDonation))
}

func TestDashboardPath_UnmappedRole_GenericDashboard(t *testing.T) {
	assert.Equal(t, "vendor-dashboard.html", DashboardPath("vendor"))
}

func TestDashboardPath_EmptyRole_Landing(t *testing.T) {
	assert.Equal(t, "index.html", DashboardPath(""))
}
