// Package dispatcher implements the §4.G dispatcher: two-level concurrent
// fan-out across compiler versions and, within each version, across
// compilation units, using the wrapper registry to obtain one back-end
// instance per version.
package dispatcher

import (
	"context"
	"encoding/json"
	"runtime"

	"golang.org/x/sync/errgroup"

	"go.trai.ch/solcbuild/internal/core/domain"
	"go.trai.ch/solcbuild/internal/core/ports"
)

// UnitResult is one completed compilation unit's outcome, consumed by the
// artifact writer.
type UnitResult struct {
	Version string
	Unit    *domain.CompilationUnit
	Output  json.RawMessage
	Input   json.RawMessage
}

// Dispatcher runs a plan's units concurrently.
type Dispatcher struct {
	wrappers ports.WrapperRegistry
	tracer   ports.Tracer
}

// New constructs a Dispatcher.
func New(wrappers ports.WrapperRegistry, tracer ports.Tracer) *Dispatcher {
	return &Dispatcher{wrappers: wrappers, tracer: tracer}
}

// Dispatch invokes every unit in plan, fanning out across versions and,
// within a version, across units. A CompilationError or a wrapper
// construction/I/O failure aborts the run: in-flight invocations are
// allowed to finish, but their results are discarded (spec §5).
func (d *Dispatcher) Dispatch(ctx context.Context, plan *domain.CompilationPlan, remappings domain.ImportRemappings, settings json.RawMessage) ([]UnitResult, error) {
	outer, outerCtx := errgroup.WithContext(ctx)
	outer.SetLimit(runtime.NumCPU())

	resultsByVersion := make([][]UnitResult, len(plan.Versions()))

	for i, version := range plan.Versions() {
		i, version := i, version
		outer.Go(func() error {
			results, err := d.dispatchVersion(outerCtx, version, plan.UnitsFor(version), remappings, settings)
			if err != nil {
				return err
			}
			resultsByVersion[i] = results
			return nil
		})
	}

	if err := outer.Wait(); err != nil {
		return nil, err
	}

	var all []UnitResult
	for _, results := range resultsByVersion {
		all = append(all, results...)
	}
	return all, nil
}

func (d *Dispatcher) dispatchVersion(ctx context.Context, version string, units []*domain.CompilationUnit, remappings domain.ImportRemappings, settings json.RawMessage) ([]UnitResult, error) {
	wrapper, err := d.wrappers.Get(version, settings)
	if err != nil {
		return nil, err
	}

	inner, innerCtx := errgroup.WithContext(ctx)
	inner.SetLimit(runtime.NumCPU())

	results := make([]UnitResult, len(units))

	for i, unit := range units {
		i, unit := i, unit
		inner.Go(func() error {
			result, err := d.dispatchUnit(innerCtx, version, unit, remappings, wrapper)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := inner.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (d *Dispatcher) dispatchUnit(ctx context.Context, version string, unit *domain.CompilationUnit, remappings domain.ImportRemappings, wrapper ports.CompilerWrapper) (UnitResult, error) {
	_, span := d.tracer.StartUnit(ctx, version)
	defer func() { span.Complete(nil) }()

	compiled, err := wrapper.Compile(unit.Contents, remappings)
	if err != nil {
		span.Complete(err)
		return UnitResult{}, err
	}

	diagnostics, diagErr := compilationErrors(compiled.Output)
	if diagErr != nil {
		span.Complete(diagErr)
		return UnitResult{}, diagErr
	}
	if len(diagnostics) > 0 {
		compErr := domain.NewCompilationError(version, diagnostics)
		span.Complete(compErr)
		return UnitResult{}, compErr
	}

	return UnitResult{Version: version, Unit: unit, Output: compiled.Output, Input: compiled.Input}, nil
}

type standardJSONDiagnostic struct {
	Severity        string `json:"severity"`
	FormattedMessage string `json:"formattedMessage"`
	Message         string `json:"message"`
}

// compilationErrors extracts every error-severity diagnostic from a
// standard-JSON output's top-level "errors" array.
func compilationErrors(output json.RawMessage) ([]string, error) {
	var parsed struct {
		Errors []standardJSONDiagnostic `json:"errors"`
	}
	if len(output) == 0 {
		return nil, nil
	}
	if err := json.Unmarshal(output, &parsed); err != nil {
		return nil, domain.ErrMalformedOutput
	}

	var diagnostics []string
	for _, diag := range parsed.Errors {
		if diag.Severity != "error" {
			continue
		}
		if diag.FormattedMessage != "" {
			diagnostics = append(diagnostics, diag.FormattedMessage)
		} else {
			diagnostics = append(diagnostics, diag.Message)
		}
	}
	return diagnostics, nil
}
