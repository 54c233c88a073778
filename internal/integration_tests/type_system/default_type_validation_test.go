package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/tomeview/internal/testutil"
)

// TestTypeSystem_PrimitiveDefaultsAreConverted validates that a literal
// default convertible to the declared primitive type is stored converted.
func TestTypeSystem_PrimitiveDefaultsAreConverted(t *testing.T) {
	t.Parallel()
	files := map[string]string{"settings.hcl": `
		topic "Settings" {
			field "retries" {
				type    = number
				default = "5"
			}
			field "verbose" {
				type    = bool
				default = "true"
			}
		}
	`}

	result := testutil.RunCLI(t, files, "inspect", "Settings")

	require.NoError(t, result.Err)
	require.Equal(t, `{"retries":5,"verbose":true}`+"\n", result.Output)
}

func TestTypeSystem_DefaultMismatchIsRejected(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		manifest string
	}{
		{
			name:     "string for number",
			manifest: `
				topic "A" {
					field "n" {
						type    = number
						default = "many"
					}
				}
			`,
		},
		{
			name:     "object for list",
			manifest: `
				topic "A" {
					field "l" {
						type    = list(string)
						default = { a = 1 }
					}
				}
			`,
		},
		{
			name:     "list for object",
			manifest: `
				topic "A" {
					field "o" {
						type    = object
						default = [1]
					}
				}
			`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result := testutil.RunCLI(t, map[string]string{"a.hcl": tc.manifest}, "validate")

			require.Error(t, result.Err)
			require.Contains(t, result.Err.Error(), "Invalid default value type")
		})
	}
}

// TestTypeSystem_AnyFieldWarns validates that an untyped field is accepted
// with a warning.
func TestTypeSystem_AnyFieldWarns(t *testing.T) {
	t.Parallel()
	files := map[string]string{"a.hcl": `
		topic "Bag" {
			field "anything" {
				type    = any
				default = { nested = [1, "two"] }
			}
		}
	`}

	result := testutil.RunCLI(t, files, "inspect", "Bag")

	require.NoError(t, result.Err)
	require.Equal(t, `{"anything":{"nested":[1,"two"]}}`+"\n", result.Output)
	testutil.AssertLogged(t, result, "type = any")
}
