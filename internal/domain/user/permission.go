package user

type Permission string

const (
	// Attendance
	PermissionAttendanceScan   Permission = "attendance.scan"
	PermissionAttendanceManage Permission = "attendance.manage"

	// Scheduling and master data
	PermissionScheduleManage Permission = "schedule.manage"
	PermissionMasterManage   Permission = "master.manage"

	// Staff records
	PermissionStaffView   Permission = "staff.view"
	PermissionStaffManage Permission = "staff.manage"

	// Overtime
	PermissionOvertimeView    Permission = "overtime.view"
	PermissionOvertimeResolve Permission = "overtime.resolve"

	// Payroll
	PermissionPayrollGenerate Permission = "payroll.generate"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionAttendanceScan,
		PermissionAttendanceManage,
		PermissionScheduleManage,
		PermissionMasterManage,
		PermissionStaffView,
		PermissionStaffManage,
		PermissionOvertimeView,
		PermissionOvertimeResolve,
		PermissionPayrollGenerate,
	},
	RoleManager: {
		PermissionAttendanceScan,
		PermissionAttendanceManage,
		PermissionScheduleManage,
		PermissionStaffView,
		PermissionOvertimeView,
		PermissionOvertimeResolve,
		PermissionPayrollGenerate,
	},
	RoleStaff: {
		PermissionAttendanceScan,
		PermissionStaffView,
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

// ValidRole reports whether the role is one the service accepts.
func ValidRole(role Role) bool {
	_, ok := RolePermissions[role]
	return ok
}
