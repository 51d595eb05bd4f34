package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wharflab/javalint/internal/rules"
	"github.com/wharflab/javalint/internal/testutil"
)

func TestDisallowedAbbreviation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		length  int
		allowed []string
		want    string
	}{
		{name: "MyTEST", length: 3, want: ""},
		{name: "MyTESTS", length: 3, want: "TESTS"},
		{name: "IOStream", length: 3, want: ""},
		{name: "readXMLHTTPData", length: 3, want: "XMLHTTP"},
		{name: "HTTPServer", length: 3, want: "HTTP"},
		{name: "HTTPServer", length: 4, want: ""},
		{name: "HTTPSServer", length: 3, want: "HTTPS"},
		{name: "ABCD_value", length: 3, want: ""},
		{name: "ABCDE_value", length: 3, want: "ABCDE"},
		{name: "VALUE", length: 3, want: "VALUE"},
		{name: "VALUE", length: 4, want: ""},
		{name: "getXMLValue", length: 0, want: "XML"},
		{name: "getX", length: 0, want: ""},
		{name: "readXMLHTTPData", length: 3, allowed: []string{"XMLHTTP"}, want: ""},
		{name: "lower", length: 0, want: ""},
		{name: "", length: 3, want: ""},
	}
	for _, tc := range cases {
		allowed := map[string]bool{}
		for _, a := range tc.allowed {
			allowed[a] = true
		}
		assert.Equal(t, tc.want, DisallowedAbbreviation(tc.name, tc.length, allowed), "%s (length %d)", tc.name, tc.length)
	}
}

func TestAbbreviationRule_Metadata(t *testing.T) {
	t.Parallel()

	meta := NewAbbreviationRule().Metadata()
	assert.Equal(t, AbbreviationCode, meta.Code)
	assert.Equal(t, "naming", meta.Category)
	assert.True(t, meta.EnabledByDefault)
	assert.Contains(t, meta.DocURL, AbbreviationCode)
}

func TestAbbreviationRule_Interfaces(t *testing.T) {
	t.Parallel()

	var _ rules.ConfigurableRule = NewAbbreviationRule()
}

func TestAbbreviationRule_ValidateConfig(t *testing.T) {
	t.Parallel()

	r := NewAbbreviationRule()
	require.NoError(t, r.ValidateConfig(nil))
	require.NoError(t, r.ValidateConfig(map[string]any{"allowed-abbreviation-length": 1}))
	require.Error(t, r.ValidateConfig(map[string]any{"allowed-abbreviation-length": -1}))
	require.Error(t, r.ValidateConfig(map[string]any{"unknown-option": true}))
}

func TestAbbreviationRule_Check(t *testing.T) {
	t.Parallel()

	all := AbbreviationConfig{AllowedAbbreviationLength: 3}

	testutil.RunRuleTests(t, NewAbbreviationRule(), []testutil.RuleTestCase{
		{
			Name:           "short abbreviations pass",
			Content:        "class IOStream {\n  int myTEST;\n  void readXML() {}\n}\n",
			WantViolations: 0,
		},
		{
			Name:           "class name",
			Content:        "class HTTPSServer {\n}\n",
			WantViolations: 1,
			WantCodes:      []string{AbbreviationCode},
			WantMessages:   []string{`"HTTPSServer" must contain no more than 4 consecutive capital letters`},
			WantLines:      []int{1},
		},
		{
			Name: "method, parameter and local variable",
			Content: `class Input {
  void readXMLHTTP(int valueABCDE) {
    int localVALUE = 0;
  }
}
`,
			WantViolations: 3,
			WantLines:      []int{2, 2, 3},
		},
		{
			Name: "overridden methods ignored by default",
			Content: `class Input {
  @Override
  public String toSTRING() { return ""; }
}
`,
			WantViolations: 0,
		},
		{
			Name: "overridden methods checked when not ignored",
			Content: `class Input {
  @Override
  public String toSTRING() { return ""; }
}
`,
			Config:         AbbreviationConfig{AllowedAbbreviationLength: 3, IgnoreFinal: true},
			WantViolations: 1,
			WantLines:      []int{3},
		},
		{
			Name: "static and final fields ignored by default",
			Content: `class Input {
  static int staticVALUE;
  final int finalVALUE = 1;
  static final int CONSTANT_VALUE = 2;
  int memberVALUE;
}
`,
			WantViolations: 1,
			WantLines:      []int{5},
		},
		{
			Name: "all fields checked when no ignore flag is set",
			Content: `class Input {
  static int staticVALUE;
  final int finalVALUE = 1;
  static final int constVALUE = 2;
}
`,
			Config:         all,
			WantViolations: 3,
		},
		{
			Name: "static final checked while static and final alone are ignored",
			Content: `class Input {
  static int staticVALUE;
  final int finalVALUE = 1;
  static final int constVALUE = 2;
}
`,
			Config: AbbreviationConfig{
				AllowedAbbreviationLength: 3,
				IgnoreFinal:               true,
				IgnoreStatic:              true,
			},
			WantViolations: 1,
			WantLines:      []int{4},
		},
		{
			Name: "interface fields ignored when any flag is set",
			Content: `interface Input {
  int FIELD_VALUE = 1;
  int fieldVALUE = 2;
}
`,
			WantViolations: 0,
		},
		{
			Name: "interface fields checked when no flag is set",
			Content: `interface Input {
  int fieldVALUE = 2;
}
`,
			Config:         all,
			WantViolations: 1,
			WantLines:      []int{2},
		},
		{
			Name: "allowed abbreviations",
			Content: `class Input {
  void readXMLHTTP() {}
}
`,
			Config: map[string]any{
				"allowed-abbreviations": "XMLHTTP, OTHER",
			},
			WantViolations: 0,
		},
		{
			Name: "final loop variable ignored",
			Content: `class Input {
  void run(int[] xs) {
    for (final int itemVALUE : xs) {}
    for (int otherVALUE : xs) {}
  }
}
`,
			WantViolations: 1,
			WantLines:      []int{4},
		},
		{
			Name:           "zero length allows single capitals only",
			Content:        "class Input {\n  int xValue;\n  int getXMValue;\n}\n",
			Config:         AbbreviationConfig{},
			WantViolations: 1,
			WantLines:      []int{3},
		},
	})
}
