package build

// ProgressSink receives a notification before each step executes.
type ProgressSink interface {
	Report(activity, status string)
}

// LogSink receives one record per finished step.
type LogSink interface {
	WriteStep(res StepResult)
}

// NopProgress discards progress notifications.
type NopProgress struct{}

func (NopProgress) Report(string, string) {}

// NopLog discards step records. Used under -quiet.
type NopLog struct{}

func (NopLog) WriteStep(StepResult) {}

type multiLog []LogSink

func (m multiLog) WriteStep(res StepResult) {
	for _, sink := range m {
		sink.WriteStep(res)
	}
}

// MultiLog fans a step record out to several sinks, in order.
func MultiLog(sinks ...LogSink) LogSink {
	return multiLog(sinks)
}
