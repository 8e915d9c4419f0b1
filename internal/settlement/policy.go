// Package settlement simulates the asynchronous half of the payment
// lifecycle: some seconds after a payment is created it is settled to a
// terminal status, with a per-method success probability. The outcome
// decision is behind the OutcomePolicy interface so tests can pin it.
package settlement

import (
	"math/rand"

	"gateway-service/internal/model"
)

// Settlement failure codes, chosen by fair coin flip when a simulated
// payment fails.
const (
	ErrorCodeDeclined     = "DECLINED"
	ErrorCodeNetworkError = "NETWORKERROR"

	failedDescription = "Payment declined"
)

// Outcome is the terminal result of a settlement.
type Outcome struct {
	Status           string
	ErrorCode        string
	ErrorDescription string
}

// OutcomePolicy decides the terminal outcome for a payment method.
type OutcomePolicy interface {
	Decide(method string) Outcome
}

// RandomPolicy draws outcomes from per-method success probabilities.
type RandomPolicy struct {
	UPISuccessRate  float64
	CardSuccessRate float64

	randFloat func() float64
}

// NewRandomPolicy returns a policy with the given success rates.
func NewRandomPolicy(upiRate, cardRate float64) *RandomPolicy {
	return &RandomPolicy{
		UPISuccessRate:  upiRate,
		CardSuccessRate: cardRate,
		randFloat:       rand.Float64,
	}
}

func (p *RandomPolicy) Decide(method string) Outcome {
	rate := p.CardSuccessRate
	if method == model.MethodUPI {
		rate = p.UPISuccessRate
	}

	if p.randFloat() < rate {
		return Outcome{Status: model.PaymentStatusSuccess}
	}

	errorCode := ErrorCodeDeclined
	if p.randFloat() < 0.5 {
		errorCode = ErrorCodeNetworkError
	}
	return Outcome{
		Status:           model.PaymentStatusFailed,
		ErrorCode:        errorCode,
		ErrorDescription: failedDescription,
	}
}
