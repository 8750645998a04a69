package auth

const (
	RoleEmployee    = "Employee"
	RoleManager     = "Manager"
	RoleHR          = "HR"
	RoleSystemAdmin = "SystemAdmin"
)

const (
	PermEmployeesRead    = "employees.read"
	PermEmployeesWrite   = "employees.write"
	PermOrgRead          = "org.read"
	PermOrgWrite         = "org.write"
	PermPlanningRead     = "planning.read"
	PermPlanningWrite    = "planning.write"
	PermSuccessionRead   = "succession.read"
	PermSuccessionWrite  = "succession.write"
	PermLearningRead     = "learning.read"
	PermLearningWrite    = "learning.write"
	PermComplianceRead   = "compliance.read"
	PermComplianceWrite  = "compliance.write"
	PermAttendanceRead   = "attendance.read"
	PermAttendanceWrite  = "attendance.write"
	PermPerformanceRead  = "performance.read"
	PermPerformanceWrite = "performance.write"
	PermPayrollRead      = "payroll.read"
	PermPayrollWrite     = "payroll.write"
	PermReportsRead      = "reports.read"
	PermAuditRead        = "audit.read"
	PermSystemAdmin      = "admin.system"
)

var DefaultPermissions = []string{
	PermEmployeesRead,
	PermEmployeesWrite,
	PermOrgRead,
	PermOrgWrite,
	PermPlanningRead,
	PermPlanningWrite,
	PermSuccessionRead,
	PermSuccessionWrite,
	PermLearningRead,
	PermLearningWrite,
	PermComplianceRead,
	PermComplianceWrite,
	PermAttendanceRead,
	PermAttendanceWrite,
	PermPerformanceRead,
	PermPerformanceWrite,
	PermPayrollRead,
	PermPayrollWrite,
	PermReportsRead,
	PermAuditRead,
	PermSystemAdmin,
}

// RolePermissions lists what each role adds on top of the roles it inherits
// (see RoleParents).
var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermEmployeesRead,
		PermOrgRead,
		PermLearningRead,
		PermComplianceRead,
		PermAttendanceRead,
		PermAttendanceWrite,
		PermPerformanceRead,
	},
	RoleManager: {
		PermPlanningRead,
		PermSuccessionRead,
		PermPerformanceWrite,
		PermReportsRead,
	},
	RoleHR: {
		PermEmployeesWrite,
		PermOrgWrite,
		PermPlanningWrite,
		PermSuccessionWrite,
		PermLearningWrite,
		PermComplianceWrite,
		PermPayrollRead,
		PermPayrollWrite,
		PermAuditRead,
	},
	RoleSystemAdmin: {
		PermSystemAdmin,
		PermAuditRead,
	},
}

// RoleParents maps a role to the role whose permissions it inherits.
var RoleParents = map[string]string{
	RoleManager: RoleEmployee,
	RoleHR:      RoleManager,
}
