package admission

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// FieldRule constrains one named field of a device's additional properties.
// Exactly one constraint kind applies; when the source declares both,
// AllowedValues wins and the pattern is ignored.
type FieldRule struct {
	ParamName     string
	AllowedValues []string
	Pattern       *regexp.Regexp
}

// SubtypeRuleSet is the ordered list of field rules for one device type.
// Rules are evaluated in declaration order; the first violation is terminal.
type SubtypeRuleSet struct {
	Subtype string
	Rules   []FieldRule
}

// RuleStore holds the full ruleset, keyed by lowercased subtype name. It is
// built once at startup and never mutated, so concurrent readers need no
// synchronization.
type RuleStore struct {
	rulesets map[string]*SubtypeRuleSet
}

type rulesetEntry struct {
	Type  string      `json:"type"`
	Rules []ruleEntry `json:"rules"`
}

type ruleEntry struct {
	ParamName     string   `json:"paramName"`
	AllowedValues []string `json:"allowedValues"`
	Regex         string   `json:"regex"`
}

// LoadRuleStore reads and parses the declarative ruleset file. Any failure
// here is fatal to startup: the process must not serve traffic with a broken
// or partially valid ruleset.
func LoadRuleStore(path string) (*RuleStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(errRulesetReadFmt, err)
	}
	return ParseRuleStore(data)
}

// ParseRuleStore builds a RuleStore from raw declarative JSON: an array of
// {type, rules:[{paramName, allowedValues?|regex?}]} entries.
func ParseRuleStore(data []byte) (*RuleStore, error) {
	var entries []rulesetEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf(errRulesetParseFmt, err)
	}

	store := &RuleStore{rulesets: make(map[string]*SubtypeRuleSet, len(entries))}
	for i, entry := range entries {
		subtype := strings.TrimSpace(entry.Type)
		if subtype == "" {
			return nil, fmt.Errorf(errRulesetEmptySubtypeFmt, i)
		}

		key := strings.ToLower(subtype)
		if _, dup := store.rulesets[key]; dup {
			return nil, fmt.Errorf(errRulesetDupSubtypeFmt, subtype)
		}

		ruleset := &SubtypeRuleSet{Subtype: subtype, Rules: make([]FieldRule, 0, len(entry.Rules))}
		for j, raw := range entry.Rules {
			if raw.ParamName == "" {
				return nil, fmt.Errorf(errRulesetEmptyParamFmt, subtype, j)
			}

			rule := FieldRule{ParamName: raw.ParamName, AllowedValues: raw.AllowedValues}
			if len(raw.AllowedValues) == 0 && raw.Regex != "" {
				pattern, err := regexp.Compile(raw.Regex)
				if err != nil {
					return nil, fmt.Errorf(errRulesetBadRegexFmt, subtype, raw.ParamName, raw.Regex, err)
				}
				rule.Pattern = pattern
			}
			ruleset.Rules = append(ruleset.Rules, rule)
		}

		store.rulesets[key] = ruleset
	}

	return store, nil
}

// Lookup finds the ruleset for a subtype name, case-insensitively. A missing
// subtype is not an error: such payloads face only the baseline checks.
func (s *RuleStore) Lookup(subtype string) (*SubtypeRuleSet, bool) {
	ruleset, ok := s.rulesets[strings.ToLower(subtype)]
	return ruleset, ok
}

// Len reports the number of loaded subtype rulesets.
func (s *RuleStore) Len() int {
	return len(s.rulesets)
}
