package admission

const (
	gatedPathPrefix = "/api/devices"

	fieldIsEnabled            = "isEnabled"
	fieldDeviceTypeName       = "deviceTypeName"
	fieldAdditionalProperties = "additionalProperties"

	paramID = "id"

	jsonKeyError = "error"
)

const (
	msgDisabledResource       = "device creation/update not allowed when isEnabled is false"
	msgSubtypeRequired        = "deviceTypeName is required"
	msgMalformedBody          = "request body is not valid JSON"
	msgUnreadableBody         = "unable to read request body"
	msgNotAuthenticated       = "user not authenticated"
	msgInsufficientPrivilege  = "insufficient privilege for this resource"
	msgNoEmployeeLink         = "account is not linked to an employee"
	msgInvalidResourceID      = "invalid resource id"
	msgAssignmentLookupFailed = "device assignment lookup failed"

	msgMissingRequiredFieldFmt = "missing required additional property: %s"
	msgInvalidEnumValueFmt     = "invalid value for %s. Allowed: %s"
	msgPatternMismatchFmt      = "invalid value for %s (regex: %s)"
)

const (
	errRulesetReadFmt          = "failed to read ruleset file: %w"
	errRulesetParseFmt         = "failed to parse ruleset: %w"
	errRulesetEmptySubtypeFmt  = "ruleset entry %d: type must not be empty"
	errRulesetDupSubtypeFmt    = "duplicate ruleset subtype: %s"
	errRulesetEmptyParamFmt    = "ruleset %s: rule %d: paramName must not be empty"
	errRulesetBadRegexFmt      = "ruleset %s: rule %s: invalid regex %q: %w"
	errRulesetNilAssignmentFmt = "admission: assignment lookup must not be nil"
	errRulesetNilStoreFmt      = "admission: rule store must not be nil"
)
