package release

// steps wraps an optional StepReporter so callers need no nil checks.
type steps struct {
	reporter StepReporter
}

func (s steps) start(name string) {
	if s.reporter != nil {
		s.reporter.StartStep(name)
	}
}

func (s steps) done(detail string) {
	if s.reporter != nil {
		s.reporter.CompleteStep(detail)
	}
}

func (s steps) fail(err error) {
	if s.reporter != nil {
		s.reporter.FailStep(err)
	}
}
