package common

import (
	"time"

	"github.com/sirupsen/logrus"
)

type Benchmarker struct {
	start  time.Time
	label  string
	logger logrus.FieldLogger
}

func RuntimeBenchmark[T any](logger logrus.FieldLogger, label string, functionUnderTest func() (T, error)) (T, error) {
	benchmarker := NewBenchmarker(logger, label)
	defer benchmarker.Close()
	return functionUnderTest()
}

func NewBenchmarker(logger logrus.FieldLogger, label string) *Benchmarker {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Benchmarker{start: time.Now(), label: label, logger: logger}
}

func (benchmarker *Benchmarker) Elapsed() time.Duration {
	return time.Since(benchmarker.start)
}

func (benchmarker *Benchmarker) Close() {
	benchmarker.logger.WithFields(logrus.Fields{
		"bench":   benchmarker.label,
		"elapsed": benchmarker.Elapsed().String(),
	}).Debug("benchmark")
}
