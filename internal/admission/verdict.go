package admission

import "net/http"

// Reason classifies why a request was denied admission.
type Reason string

const (
	ReasonUnauthenticated      Reason = "unauthenticated"
	ReasonForbidden            Reason = "forbidden"
	ReasonDisabledResource     Reason = "disabled_resource"
	ReasonMalformedBody        Reason = "malformed_body"
	ReasonMissingSubtype       Reason = "missing_subtype"
	ReasonMissingRequiredField Reason = "missing_required_field"
	ReasonInvalidEnumValue     Reason = "invalid_enum_value"
	ReasonPatternMismatch      Reason = "pattern_mismatch"
	ReasonLookupFailure        Reason = "lookup_failure"
)

// Verdict is the single admit/deny outcome of one gate evaluation. A request
// gets exactly one terminal verdict; denials are never recovered into admits.
type Verdict struct {
	Allowed bool
	Reason  Reason
	Detail  string
}

func Admitted() Verdict {
	return Verdict{Allowed: true}
}

func Denied(reason Reason, detail string) Verdict {
	return Verdict{Allowed: false, Reason: reason, Detail: detail}
}

// StatusCode maps a denial to its wire-level status. Admitted verdicts have
// no status.
func (v Verdict) StatusCode() int {
	switch v.Reason {
	case ReasonUnauthenticated:
		return http.StatusUnauthorized
	case ReasonForbidden:
		return http.StatusForbidden
	case ReasonLookupFailure:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
