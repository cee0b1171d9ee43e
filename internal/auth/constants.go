package auth

const (
	ContextKeyPrincipal = "principal"

	jsonKeyError = "error"

	headerAuthorization = "Authorization"

	bearerScheme    = "bearer"
	authHeaderParts = 2
)

const (
	msgMissingAuthorization    = "missing authorization token"
	msgInvalidOrExpiredToken   = "invalid or expired token"
	msgUnknownAccount          = "account not found for token subject"
	msgUserNotAuthenticated    = "user not authenticated"
	msgInvalidPrincipalCtx     = "invalid principal in context"
	msgUnexpectedSigningMethod = "unexpected signing method: %v"
	msgTokenParseFailed        = "failed to parse token: %w"
	msgInvalidTokenClaims      = "invalid token claims"
)
