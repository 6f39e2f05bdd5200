package build

import (
	"fmt"
	"log/slog"
	"time"
)

// Runner executes named steps against a shared build context, strictly
// sequentially, producing one StepResult per attempted step.
type Runner struct {
	registry *Registry
	progress ProgressSink
	log      LogSink
}

// NewRunner creates a runner. Nil sinks default to no-ops.
func NewRunner(registry *Registry, progress ProgressSink, log LogSink) *Runner {
	if progress == nil {
		progress = NopProgress{}
	}
	if log == nil {
		log = NopLog{}
	}
	return &Runner{registry: registry, progress: progress, log: log}
}

// Run executes the steps in list order and halts after the first result that
// is not a Success; steps after the failure are never invoked and produce no
// results.
func (r *Runner) Run(names []string, info *Info) []StepResult {
	results := make([]StepResult, 0, len(names))
	for _, name := range names {
		res := r.RunStep(name, info)
		results = append(results, res)
		if res.Outcome != Success {
			break
		}
	}
	return results
}

// RunStep executes one step and finalizes its result. A name with no
// registered step fails with KindInvalidStep without invoking anything; an
// error returned by the step body fails with KindExecution wrapping the
// cause. RunStep itself never short-circuits, so it can also back
// introspection over a step list.
func (r *Runner) RunStep(name string, info *Info) StepResult {
	r.progress.Report(
		fmt.Sprintf("Building %s (%s)", info.ModuleName, info.Version),
		fmt.Sprintf("Executing %s", name),
	)

	res := StepResult{Name: name, StartTime: time.Now()}

	step, ok := r.registry.Lookup(name)
	switch {
	case !ok:
		res.Outcome = Failed
		res.Err = &StepError{Step: name, Kind: KindInvalidStep}
	default:
		slog.Debug("executing step", "step", name, "module", info.ModuleName)
		if err := step.Run(info); err != nil {
			res.Outcome = Failed
			res.Err = &StepError{Step: name, Kind: KindExecution, Err: err}
		} else {
			res.Outcome = Success
		}
	}

	res.Duration = time.Since(res.StartTime)
	r.log.WriteStep(res)
	return res
}
