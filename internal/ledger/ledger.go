// Package ledger creates membership payments, appends their transactions and
// reports on them. Payment status is always derived from the amounts; callers
// never set it.
package ledger

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"github.com/mmynk/gymdesk/internal/calculator"
	"github.com/mmynk/gymdesk/internal/models"
	"github.com/mmynk/gymdesk/internal/storage"
)

// Recorder observes ledger activity. internal/metrics provides the
// Prometheus implementation.
type Recorder interface {
	PaymentCreated(status string, total float64)
	TransactionRecorded(kind, method string, amount float64)
	Compensated(op string)
}

type nopRecorder struct{}

func (nopRecorder) PaymentCreated(string, float64)              {}
func (nopRecorder) TransactionRecorded(string, string, float64) {}
func (nopRecorder) Compensated(string)                          {}

// Ledger is the payment ledger over a row store.
type Ledger struct {
	store    storage.RowStore
	now      func() time.Time
	loc      *time.Location
	recorder Recorder
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithLocation sets the time zone used for dates and month buckets.
func WithLocation(loc *time.Location) Option {
	return func(l *Ledger) {
		if loc != nil {
			l.loc = loc
		}
	}
}

// WithRecorder attaches a Recorder.
func WithRecorder(r Recorder) Option {
	return func(l *Ledger) {
		if r != nil {
			l.recorder = r
		}
	}
}

// New creates a Ledger backed by store.
func New(store storage.RowStore, opts ...Option) *Ledger {
	l := &Ledger{
		store:    store,
		now:      time.Now,
		loc:      time.Local,
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Location returns the ledger's time zone.
func (l *Ledger) Location() *time.Location { return l.loc }

// Now returns the ledger's current time in its location.
func (l *Ledger) Now() time.Time { return l.clock() }

func (l *Ledger) clock() time.Time { return l.now().In(l.loc) }

// Schedule returns the weekly installment plan of a freshly created payment:
// its balance split over InstallmentCount, counted from CreatedAt.
func (l *Ledger) Schedule(p models.Payment) []calculator.ScheduledInstallment {
	left := calculator.Outstanding(p.PaidAmount, p.TotalAmount).InexactFloat64()
	return calculator.InstallmentSchedule(left, p.InstallmentCount, time.Unix(p.CreatedAt, 0).In(l.loc))
}

// GetPayment returns the payment with the given id.
func (l *Ledger) GetPayment(ctx context.Context, id string) (*models.Payment, error) {
	return getPayment(ctx, l.store, id)
}

func getPayment(ctx context.Context, rs storage.RowStore, id string) (*models.Payment, error) {
	rows, err := rs.Get(ctx, storage.TablePayments, storage.Where(storage.Eq("id", id)))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, models.NewNotFoundError("payment", id)
	}
	p := storage.PaymentFromRow(rows[0])
	return &p, nil
}

// paymentMethod defaults an empty method to cash and rejects unknown ones.
func paymentMethod(method string) (string, error) {
	if method == "" {
		return models.PaymentMethodCash, nil
	}
	if !lo.Contains(models.PaymentMethods, method) {
		return "", models.NewValidationError("unknown payment method %q", method)
	}
	return method, nil
}

// undoLog collects compensating writes for stores without transactions.
type undoLog struct {
	steps []func(ctx context.Context) error
}

func (u *undoLog) push(step func(ctx context.Context) error) {
	u.steps = append(u.steps, step)
}

// run applies the compensations newest first and joins their failures.
// It ignores cancellation of ctx so a timed-out request still cleans up.
func (u *undoLog) run(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)
	var errs []error
	for i := len(u.steps) - 1; i >= 0; i-- {
		if err := u.steps[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// unitOfWork runs fn atomically. With a transactional store fn runs inside
// InTx; otherwise fn's recorded compensations are applied when it fails.
func (l *Ledger) unitOfWork(ctx context.Context, op string, fn func(tx storage.RowStore, undo *undoLog) error) error {
	if t, ok := l.store.(storage.Transactor); ok {
		return t.InTx(ctx, func(tx storage.RowStore) error {
			return fn(tx, &undoLog{})
		})
	}

	var undo undoLog
	err := fn(l.store, &undo)
	if err == nil || len(undo.steps) == 0 {
		return err
	}
	l.recorder.Compensated(op)
	if cerr := undo.run(ctx); cerr != nil {
		slog.Error("Compensation failed", "op", op, "error", cerr)
		return errors.Join(err, cerr)
	}
	slog.Warn("Partial writes rolled back", "op", op, "error", err)
	return err
}
