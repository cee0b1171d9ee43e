package handler

const (
	jsonKeyError   = "error"
	jsonKeyMessage = "message"

	msgContentTypeJSONRequired = "Content-Type must be application/json"
	msgInvalidRequestBody      = "invalid request body"
	msgInvalidID               = "invalid id"

	msgInvalidCredentials  = "invalid username or password"
	msgGenerateTokenFail   = "failed to generate token"
	msgPasswordProcessFail = "failed to process password"

	msgEmployeeNotLinked   = "account has no linked employee"
	msgEmployeeMissing     = "employee does not exist"
	msgRoleMissing         = "role does not exist"
	msgUsernameTaken       = "username already exists"
	msgRoleChangeForbidden = "only administrators may change roles"
	msgSalaryForbidden     = "only administrators may change salary"
	msgDeviceTypeUnknown   = "unknown device type"
	msgDeviceHasHistory    = "device has assignment history"

	msgAccountDeleted = "account deleted"
	msgDeviceDeleted  = "device deleted"
)
