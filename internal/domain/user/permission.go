package user

type Permission string

const (
	PermissionSettingsManage Permission = "settings.manage"
	PermissionTraineesManage Permission = "trainees.manage"
	PermissionTraineesView   Permission = "trainees.view"
	PermissionAttendanceScan Permission = "attendance.scan"
	PermissionAttendanceView Permission = "attendance.view_all"
	PermissionAttendanceEdit Permission = "attendance.manage"
	PermissionReportsView    Permission = "reports.view"
	PermissionUsersManage    Permission = "users.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionSettingsManage,
		PermissionTraineesManage,
		PermissionTraineesView,
		PermissionAttendanceScan,
		PermissionAttendanceView,
		PermissionAttendanceEdit,
		PermissionReportsView,
		PermissionUsersManage,
	},
	RoleSupervisor: {
		PermissionTraineesView,
		PermissionAttendanceView,
		PermissionAttendanceEdit,
		PermissionReportsView,
	},
	RoleKiosk: {
		PermissionAttendanceScan,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
