package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractVariables(t *testing.T) {
	for scenario, fn := range map[string]func(t *testing.T){
		"test distinct in order": func(t *testing.T) {
			vars := ExtractVariables("Hi {{firstName}}, code {{code}}. Bye {{firstName}}")
			require.Equal(t, []string{"firstName", "code"}, vars)
		},
		"test whitespace inside braces": func(t *testing.T) {
			vars := ExtractVariables("Hi {{ firstName }} from {{ company.name }}")
			require.Equal(t, []string{"firstName", "company.name"}, vars)
		},
		"test no variables": func(t *testing.T) {
			require.Nil(t, ExtractVariables("plain text, no placeholders"))
		},
		"test single braces ignored": func(t *testing.T) {
			require.Nil(t, ExtractVariables("not {a} variable"))
		},
	} {
		t.Run(scenario, fn)
	}
}
