package agent

import (
	"context"
	"strings"

	"scopeworks_backend/platform/logger"
)

// clarificationThreshold is the confidence below which the customer is
// asked a clarifying question before scope generation.
const clarificationThreshold = 0.7

// Result is a classification plus degradation metadata for persistence.
type Result struct {
	Classification
	// Degraded is set when the oracle failed and defaults were used.
	Degraded bool
	// DegradedReason holds the failure summary when Degraded is true.
	DegradedReason string
}

// Classifier wraps an Oracle and guarantees a usable Result: oracle
// failures are absorbed into the default classification, and low
// confidence always carries a clarifying question.
type Classifier struct {
	oracle Oracle
	log    *logger.Logger
}

func NewClassifier(oracle Oracle, log *logger.Logger) *Classifier {
	return &Classifier{oracle: oracle, log: log}
}

// Classify never returns an error. A failed oracle call degrades to the
// general-service default so intake can always proceed.
func (c *Classifier) Classify(ctx context.Context, description string) Result {
	description = strings.TrimSpace(description)
	if description == "" {
		res := Result{Classification: DefaultClassification()}
		res.Clarifier = "Please describe the work you need done."
		res.Confidence = 0
		return res
	}

	cls, err := c.oracle.Classify(ctx, description)
	if err != nil {
		c.log.OracleEvent(c.oracle.Name(), true, err.Error(), 0)
		res := Result{Classification: DefaultClassification()}
		res.Degraded = true
		res.DegradedReason = "oracle " + c.oracle.Name() + " failed: " + err.Error()
		return res
	}

	if cls.Confidence < clarificationThreshold && cls.Clarifier == "" {
		cls.Clarifier = defaultClarifier(cls.ServiceType)
	}
	return Result{Classification: cls}
}

func defaultClarifier(serviceType string) string {
	if serviceType == "" || serviceType == ServiceTypeGeneral {
		return "Could you tell us a bit more about the work you need done?"
	}
	return "Could you describe the " + strings.ToLower(serviceType) + " issue in more detail?"
}
