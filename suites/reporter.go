// Package suites implements named validation checks over a built query
// database: each suite receives a query.DB and a Reporter, inspects the
// database, and reports findings through the reporter rather than by
// returning an error.
package suites

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Severity distinguishes how serious a reported finding is.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

type finding struct {
	severity Severity
	suite    string
	message  string
}

// Reporter collects findings across suites at the three severity levels,
// and can print them all at the end of a run.
type Reporter struct {
	findings []finding
	log      *logrus.Logger
}

// NewReporter builds an empty Reporter; log receives each finding as it's
// recorded (nil uses logrus.StandardLogger()).
func NewReporter(log *logrus.Logger) *Reporter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Reporter{log: log}
}

func (r *Reporter) record(severity Severity, suite, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.findings = append(r.findings, finding{severity: severity, suite: suite, message: msg})

	entry := r.log.WithField("suite", suite)
	switch severity {
	case SeverityError:
		entry.Error(msg)
	case SeverityWarning:
		entry.Warn(msg)
	default:
		entry.Info(msg)
	}
}

// Error records a suite-reported failure.
func (r *Reporter) Error(suite, format string, args ...interface{}) {
	r.record(SeverityError, suite, format, args...)
}

// Warning records a non-fatal finding.
func (r *Reporter) Warning(suite, format string, args ...interface{}) {
	r.record(SeverityWarning, suite, format, args...)
}

// Info records an informational finding.
func (r *Reporter) Info(suite, format string, args ...interface{}) {
	r.record(SeverityInfo, suite, format, args...)
}

// HasErrors reports whether any suite recorded an error-severity finding.
func (r *Reporter) HasErrors() bool {
	for _, f := range r.findings {
		if f.severity == SeverityError {
			return true
		}
	}
	return false
}

// PrintAll prints every recorded finding, in the order recorded and tagged
// with its severity, to the reporter's logger.
func (r *Reporter) PrintAll() {
	for _, f := range r.findings {
		r.log.WithField("suite", f.suite).Infof("[%s] %s", f.severity, f.message)
	}
}
