package dispatcher_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/solcbuild/internal/adapters/wrapper"
	"go.trai.ch/solcbuild/internal/core/domain"
	"go.trai.ch/solcbuild/internal/core/ports"
	"go.trai.ch/solcbuild/internal/engine/dispatcher"
)

type noopSpan struct{}

func (noopSpan) Write(p []byte) (int, error)          { return len(p), nil }
func (noopSpan) Log(domain.LogLevel, string)          {}
func (noopSpan) Cached()                              {}
func (noopSpan) Complete(error)                       {}

type noopTracer struct{}

func (noopTracer) StartUnit(ctx context.Context, _ string) (context.Context, ports.Span) {
	return ctx, noopSpan{}
}
func (noopTracer) Close() error { return nil }

type singleWrapperRegistry struct{ w ports.CompilerWrapper }

func (r *singleWrapperRegistry) Get(_ string, _ json.RawMessage) (ports.CompilerWrapper, error) {
	return r.w, nil
}

func TestDispatcher_Dispatch_Success(t *testing.T) {
	plan := domain.NewCompilationPlan()
	unit := domain.NewCompilationUnit()
	unit.Add("/abs/Token.sol", "contract Token {}")
	plan.AppendUnit("0.8.20+commit.deadbeef", unit)

	fakeW := wrapper.NewFake("0.8.20+commit.deadbeef", "Token", nil)
	d := dispatcher.New(&singleWrapperRegistry{w: fakeW}, noopTracer{})

	results, err := d.Dispatch(context.Background(), plan, domain.ImportRemappings{}, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "0.8.20+commit.deadbeef", results[0].Version)
}

func TestDispatcher_Dispatch_MultipleVersionsAndUnits(t *testing.T) {
	plan := domain.NewCompilationPlan()
	unitA := domain.NewCompilationUnit()
	unitA.Add("/abs/A.sol", "contract A {}")
	unitB := domain.NewCompilationUnit()
	unitB.Add("/abs/B.sol", "contract B {}")
	plan.AppendUnit("0.8.20+commit.deadbeef", unitA)
	plan.AppendUnit("0.7.6+commit.7338295f", unitB)

	fakeW := wrapper.NewFake("shared", "Contract", nil)
	d := dispatcher.New(&singleWrapperRegistry{w: fakeW}, noopTracer{})

	results, err := d.Dispatch(context.Background(), plan, domain.ImportRemappings{}, nil)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestDispatcher_Dispatch_CompilationErrorAborts(t *testing.T) {
	plan := domain.NewCompilationPlan()
	unit := domain.NewCompilationUnit()
	unit.Add("/abs/Broken.sol", "contract Broken {")
	plan.AppendUnit("0.8.20+commit.deadbeef", unit)

	fakeW := wrapper.NewFake("0.8.20+commit.deadbeef", "Broken", nil)
	fakeW.Err = domain.NewCompilationError("0.8.20+commit.deadbeef", []string{"ParserError: expected '}'"})
	d := dispatcher.New(&singleWrapperRegistry{w: fakeW}, noopTracer{})

	_, err := d.Dispatch(context.Background(), plan, domain.ImportRemappings{}, nil)
	require.Error(t, err)
}
