package settlement

import (
	"math/rand"
	"sync"
	"time"

	"gateway-service/prometheus"

	"go.uber.org/zap"
)

// FinalizeStore is the slice of the persistence layer the executor needs:
// one transactional write applying a terminal outcome to a payment and its
// parent order.
type FinalizeStore interface {
	FinalizePayment(paymentID, orderID, status, errorCode, errorDescription string) error
}

// Task is an immutable snapshot of the payment to settle. The executor
// never reads the payment back; everything it needs is captured at
// scheduling time.
type Task struct {
	PaymentID string
	OrderID   string
	Method    string
}

// Executor owns settlement scheduling. Each scheduled payment gets one
// deferred task that fires after a randomized delay and applies the policy
// outcome through the store; a payment ID is never scheduled twice.
//
// A failed settlement write is logged and counted but not retried: the
// payment stays "processing" and no caller is notified. The
// write-failure counter is the place to alert on.
type Executor struct {
	store    FinalizeStore
	policy   OutcomePolicy
	minDelay time.Duration
	maxDelay time.Duration
	log      *zap.Logger

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// NewExecutor returns an executor settling payments after a delay drawn
// uniformly from [minDelay, maxDelay).
func NewExecutor(store FinalizeStore, policy OutcomePolicy, minDelay, maxDelay time.Duration, log *zap.Logger) *Executor {
	if maxDelay <= minDelay {
		maxDelay = minDelay + time.Nanosecond
	}
	return &Executor{
		store:    store,
		policy:   policy,
		minDelay: minDelay,
		maxDelay: maxDelay,
		log:      log,
		pending:  make(map[string]*time.Timer),
	}
}

// Schedule registers a settlement task for the payment. Scheduling the same
// payment ID again is a no-op.
func (e *Executor) Schedule(task Task) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.pending[task.PaymentID]; exists {
		e.log.Warn("settlement already scheduled", zap.String("payment_id", task.PaymentID))
		return
	}

	delay := e.minDelay + time.Duration(rand.Int63n(int64(e.maxDelay-e.minDelay)))
	e.pending[task.PaymentID] = time.AfterFunc(delay, func() {
		e.settle(task)
	})

	e.log.Debug("settlement scheduled",
		zap.String("payment_id", task.PaymentID),
		zap.String("order_id", task.OrderID),
		zap.Duration("delay", delay))
}

// Stop cancels all pending timers. Tasks that have already fired run to
// completion.
func (e *Executor) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for id, timer := range e.pending {
		timer.Stop()
		delete(e.pending, id)
	}
}

func (e *Executor) settle(task Task) {
	e.mu.Lock()
	delete(e.pending, task.PaymentID)
	e.mu.Unlock()

	outcome := e.policy.Decide(task.Method)

	if err := e.store.FinalizePayment(task.PaymentID, task.OrderID, outcome.Status, outcome.ErrorCode, outcome.ErrorDescription); err != nil {
		prometheus.SettlementWriteFailureCounter.Inc()
		e.log.Error("settlement write failed, payment left processing",
			zap.String("payment_id", task.PaymentID),
			zap.String("order_id", task.OrderID),
			zap.Error(err))
		return
	}

	prometheus.SettlementOutcomeCounter.WithLabelValues(task.Method, outcome.Status).Inc()
	e.log.Info("payment settled",
		zap.String("payment_id", task.PaymentID),
		zap.String("order_id", task.OrderID),
		zap.String("status", outcome.Status),
		zap.String("error_code", outcome.ErrorCode))
}
