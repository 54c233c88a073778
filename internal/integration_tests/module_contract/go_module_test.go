package integration_tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/tomeview/internal/registry"
	"github.com/vk/tomeview/internal/schema"
	"github.com/vk/tomeview/internal/testutil"
	"github.com/zclconf/go-cty/cty"
)

type ticketModule struct{}

type ticket struct {
	ID string `json:"id"`
}

func (ticketModule) Register(r *registry.Registry) error {
	status := cty.StringVal("open")
	t := schema.NewType("Ticket").
		Field(&schema.Field{Name: "id", Type: cty.String}).
		Field(&schema.Field{Name: "status", Type: cty.String, Default: &status}).
		Field(&schema.Field{Name: "watchers", Type: cty.List(cty.Object(map[string]cty.Type{})), Ref: "Session"})
	t.Index = []string{"id"}
	t.Source = "module_contract"
	r.RegisterGoType(ticket{}, "Ticket")
	return r.Register(t)
}

type sessionStub struct{}

func (sessionStub) Register(r *registry.Registry) error {
	t := schema.NewType("Session").Field(&schema.Field{Name: "sessionId", Type: cty.String})
	t.Index = []string{"sessionId"}
	return r.Register(t)
}

type panickingModule struct{}

func (panickingModule) Register(r *registry.Registry) error {
	r.RegisterGoType(ticket{}, "Ticket")
	r.RegisterGoType(&ticket{}, "Ticket")
	return nil
}

// TestModuleContract_PureGoTopic validates that a topic type declared
// entirely in Go can be inspected, and that manifests may reference it.
func TestModuleContract_PureGoTopic(t *testing.T) {
	t.Parallel()
	modules := []registry.Module{ticketModule{}, sessionStub{}}
	files := map[string]string{"board.hcl": `
		topic "Board" {
			field "tickets" {
				type = list(object)
				ref  = "Ticket"
			}
		}
	`}

	result := testutil.RunCLIWithContext(context.Background(), t, files, modules, "inspect", "Ticket", "-i", "id=T-1")
	require.NoError(t, result.Err)
	require.Equal(t, `{"id":null,"status":"open","watchers":null}`+"\n", result.Output)

	validated := testutil.RunCLIWithContext(context.Background(), t, files, modules, "validate")
	require.NoError(t, validated.Err)
	require.Contains(t, validated.Output, "Ticket: 3 field(s), index [id] (module_contract)")
	require.Contains(t, validated.Output, "Board: 1 field(s)")
}

// TestModuleContract_ExplicitModulesReplaceBuiltins validates that passing
// modules replaces the built-in set.
func TestModuleContract_ExplicitModulesReplaceBuiltins(t *testing.T) {
	t.Parallel()
	modules := []registry.Module{ticketModule{}, sessionStub{}}

	result := testutil.RunCLIWithContext(context.Background(), t, nil, modules, "inspect", "Session", "-i", "sessionId=s1")
	require.NoError(t, result.Err)
	require.Equal(t, `{"sessionId":null}`+"\n", result.Output)
}

// TestModuleContract_RegistrationPanicIsReported validates that a module
// binding one Go type twice fails the run instead of crashing it.
func TestModuleContract_RegistrationPanicIsReported(t *testing.T) {
	t.Parallel()

	result := testutil.RunCLIWithContext(context.Background(), t, nil, []registry.Module{panickingModule{}}, "validate")
	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "application startup panicked")
	require.Contains(t, result.Err.Error(), "already bound")
}
