package constant

const (
	UserTypeStudent  = "student"
	UserTypeEmployee = "employee"
	UserTypePublic   = "public"

	ContextPreferenceConcise  = "concise"
	ContextPreferenceStandard = "standard"
	ContextPreferenceDetailed = "detailed"
)

// Department codes used for escalation routing and knowledge scoping.
const (
	DepartmentCodeSA                = "SA"
	DepartmentCodeDGS               = "DGS"
	DepartmentCodeSecretariaGeneral = "SECRETARIA_GENERAL"
	DepartmentCodeGeneral           = "GENERAL"
)

// Official phone extensions per department.
const (
	ExtensionSA         = "8530"
	ExtensionDGS        = "8540"
	ExtensionBiblioteca = "8600"
)
