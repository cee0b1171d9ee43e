package admission

import (
	"fmt"
	"strings"
)

// Engine evaluates one parsed request body against the loaded ruleset.
// Evaluation is read-only and deterministic: the same document against the
// same store always yields the same single verdict.
type Engine struct {
	store *RuleStore
}

func NewEngine(store *RuleStore) *Engine {
	if store == nil {
		panic(errRulesetNilStoreFmt)
	}
	return &Engine{store: store}
}

// evaluation carries state between the checks of one run.
type evaluation struct {
	doc     map[string]any
	subtype string
	props   map[string]any
}

// Evaluate walks an ordered chain of checks over the document. Each check
// returns nil to continue or a terminal verdict (admit or deny); the first
// terminal verdict wins and no further checks run.
func (e *Engine) Evaluate(doc map[string]any) Verdict {
	eval := &evaluation{doc: doc}

	checks := []func(*evaluation) *Verdict{
		e.checkEnabled,
		e.checkSubtype,
		e.checkProperties,
		e.checkRules,
	}

	for _, check := range checks {
		if verdict := check(eval); verdict != nil {
			return *verdict
		}
	}

	return Admitted()
}

// checkEnabled runs first and short-circuits everything else: a disabled
// device is rejected regardless of any other payload content. A missing or
// non-boolean isEnabled counts as disabled.
func (e *Engine) checkEnabled(eval *evaluation) *Verdict {
	enabled, ok := eval.doc[fieldIsEnabled].(bool)
	if !ok || !enabled {
		return deny(ReasonDisabledResource, msgDisabledResource)
	}
	return nil
}

func (e *Engine) checkSubtype(eval *evaluation) *Verdict {
	subtype, ok := eval.doc[fieldDeviceTypeName].(string)
	if !ok {
		return deny(ReasonMissingSubtype, msgSubtypeRequired)
	}
	eval.subtype = subtype
	return nil
}

// checkProperties admits outright when the payload carries no nested
// properties object: absence of extra properties is not itself an error.
func (e *Engine) checkProperties(eval *evaluation) *Verdict {
	props, ok := eval.doc[fieldAdditionalProperties].(map[string]any)
	if !ok {
		return admit()
	}
	eval.props = props
	return nil
}

// checkRules applies the subtype's rules in declaration order, stopping at
// the first violation. An unknown subtype admits: there are no rules to
// enforce.
func (e *Engine) checkRules(eval *evaluation) *Verdict {
	ruleset, ok := e.store.Lookup(eval.subtype)
	if !ok {
		return admit()
	}

	for _, rule := range ruleset.Rules {
		value, present := eval.props[rule.ParamName]
		if !present {
			return deny(ReasonMissingRequiredField, fmt.Sprintf(msgMissingRequiredFieldFmt, rule.ParamName))
		}

		// Non-string values coerce to "" for matching purposes.
		str, _ := value.(string)
		if verdict := rule.check(str); verdict != nil {
			return verdict
		}
	}

	return nil
}

// check validates one field value against the rule's constraint. A rule with
// neither constraint kind is vacuously satisfied.
func (r FieldRule) check(value string) *Verdict {
	if len(r.AllowedValues) > 0 {
		for _, allowed := range r.AllowedValues {
			if value == allowed {
				return nil
			}
		}
		detail := fmt.Sprintf(msgInvalidEnumValueFmt, r.ParamName, strings.Join(r.AllowedValues, ", "))
		return deny(ReasonInvalidEnumValue, detail)
	}

	if r.Pattern != nil && !r.Pattern.MatchString(value) {
		return deny(ReasonPatternMismatch, fmt.Sprintf(msgPatternMismatchFmt, r.ParamName, r.Pattern.String()))
	}

	return nil
}

func admit() *Verdict {
	v := Admitted()
	return &v
}

func deny(reason Reason, detail string) *Verdict {
	v := Denied(reason, detail)
	return &v
}
