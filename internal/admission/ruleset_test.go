package admission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRuleStore_Valid(t *testing.T) {
	data := []byte(`[
		{"type": "Laptop", "rules": [
			{"paramName": "serialNumber", "regex": "^[A-Z]{2}\\d{6}$"},
			{"paramName": "os", "allowedValues": ["Windows", "Linux"]}
		]},
		{"type": "Phone", "rules": []}
	]`)

	store, err := ParseRuleStore(data)
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())

	ruleset, ok := store.Lookup("Laptop")
	require.True(t, ok)
	require.Len(t, ruleset.Rules, 2)
	assert.Equal(t, "serialNumber", ruleset.Rules[0].ParamName)
	assert.NotNil(t, ruleset.Rules[0].Pattern)
	assert.Equal(t, []string{"Windows", "Linux"}, ruleset.Rules[1].AllowedValues)
}

func TestParseRuleStore_LookupIsCaseInsensitive(t *testing.T) {
	store, err := ParseRuleStore([]byte(`[{"type": "Laptop", "rules": []}]`))
	require.NoError(t, err)

	for _, name := range []string{"laptop", "LAPTOP", "LapTop"} {
		_, ok := store.Lookup(name)
		assert.True(t, ok, name)
	}

	_, ok := store.Lookup("Monitor")
	assert.False(t, ok)
}

func TestParseRuleStore_AllowedValuesWinOverRegex(t *testing.T) {
	data := []byte(`[
		{"type": "Laptop", "rules": [
			{"paramName": "os", "allowedValues": ["Windows"], "regex": "^x$"}
		]}
	]`)

	store, err := ParseRuleStore(data)
	require.NoError(t, err)

	ruleset, _ := store.Lookup("laptop")
	require.Len(t, ruleset.Rules, 1)
	assert.NotEmpty(t, ruleset.Rules[0].AllowedValues)
	assert.Nil(t, ruleset.Rules[0].Pattern)
}

func TestParseRuleStore_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed json", `{"type": "Laptop"}`},
		{"empty subtype", `[{"type": "  ", "rules": []}]`},
		{"duplicate subtype", `[{"type": "Laptop", "rules": []}, {"type": "laptop", "rules": []}]`},
		{"empty param name", `[{"type": "Laptop", "rules": [{"paramName": ""}]}]`},
		{"bad regex", `[{"type": "Laptop", "rules": [{"paramName": "sn", "regex": "["}]}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRuleStore([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadRuleStore_MissingFile(t *testing.T) {
	_, err := LoadRuleStore("does-not-exist.json")
	assert.Error(t, err)
}
