package integration_tests

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/tomeview/internal/testutil"
)

const counterManifest = `
	topic "Counter" {
		index = ["name"]
		field "name" { type = string }
		field "count" {
			type    = number
			default = 0
		}
		field "history" {
			type    = list(object)
			default = []
		}
	}
`

// TestCoreExecution_DataReplacesDefaults validates that supplied data is
// used as is, without any default seeded next to it.
func TestCoreExecution_DataReplacesDefaults(t *testing.T) {
	t.Parallel()
	files := map[string]string{
		"counter.hcl":       counterManifest,
		"data/counter.json": `{"count": 41, "extra": {"note": "kept"}}`,
	}

	result := testutil.RunCLI(t, files, "inspect", "Counter", "-i", "name=c", "-d", "{root}/data/counter.json")

	require.NoError(t, result.Err)
	require.Equal(t, `{"count":41,"extra":{"note":"kept"}}`+"\n", result.Output)
}

// TestCoreExecution_InspectDepth validates the labelled, depth-limited
// rendering.
func TestCoreExecution_InspectDepth(t *testing.T) {
	t.Parallel()
	files := map[string]string{
		"counter.hcl":       counterManifest,
		"data/counter.json": `{"count": 1, "history": [{"at": 1}], "meta": {"deep": {"deeper": true}}}`,
	}

	shallow := testutil.RunCLI(t, files,
		"inspect", "Counter", "-i", "name=c", "-d", "{root}/data/counter.json", "-f", "inspect", "--depth", "0")
	require.NoError(t, shallow.Err)
	require.True(t, strings.HasPrefix(shallow.Output, "Counter -> "), shallow.Output)
	require.Contains(t, shallow.Output, "[Array]")
	require.Contains(t, shallow.Output, "[Object]")

	full := testutil.RunCLI(t, files,
		"inspect", "Counter", "-i", "name=c", "-d", "{root}/data/counter.json", "-f", "inspect", "--depth", "-1")
	require.NoError(t, full.Err)
	require.NotContains(t, full.Output, "[Object]")
	require.Contains(t, full.Output, "deeper")
}
