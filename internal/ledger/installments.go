package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/gymdesk/internal/calculator"
	"github.com/mmynk/gymdesk/internal/models"
	"github.com/mmynk/gymdesk/internal/storage"
)

// RecordInstallment applies amount against the payment's outstanding balance
// and appends an installment transaction numbered after the existing ones.
func (l *Ledger) RecordInstallment(ctx context.Context, paymentID string, amount float64, method, notes string) (*models.Transaction, error) {
	if !decimal.NewFromFloat(amount).IsPositive() {
		return nil, models.NewValidationError("installment amount must be positive")
	}
	method, err := paymentMethod(method)
	if err != nil {
		return nil, err
	}

	var (
		t       models.Transaction
		payment *models.Payment
	)
	err = l.unitOfWork(ctx, "installment", func(tx storage.RowStore, undo *undoLog) error {
		var err error
		payment, err = getPayment(ctx, tx, paymentID)
		if err != nil {
			return err
		}
		if calculator.ExceedsOutstanding(amount, payment.PaidAmount, payment.TotalAmount) {
			return models.NewValidationError("exceeds outstanding balance")
		}

		existing, err := tx.Get(ctx, storage.TableTransactions, storage.Where(
			storage.Eq("payment_id", paymentID),
			storage.Eq("kind", models.TransactionKindInstallment),
		))
		if err != nil {
			return err
		}

		row, err := tx.Insert(ctx, storage.TableTransactions, storage.TransactionToRow(models.Transaction{
			PaymentID:         paymentID,
			ClientID:          payment.ClientID,
			Amount:            amount,
			Kind:              models.TransactionKindInstallment,
			InstallmentNumber: len(existing) + 1,
			PaymentMethod:     method,
			Timestamp:         l.clock().Unix(),
			Notes:             notes,
		}))
		if err != nil {
			return fmt.Errorf("failed to record installment: %w", err)
		}
		t = storage.TransactionFromRow(row)
		undo.push(func(ctx context.Context) error {
			return tx.Delete(ctx, storage.TableTransactions, storage.Where(storage.Eq("id", t.ID)))
		})

		paid := calculator.AddAmounts(payment.PaidAmount, amount)
		status := calculator.DeriveStatus(paid, payment.TotalAmount)
		err = tx.Update(ctx, storage.TablePayments,
			storage.Where(storage.Eq("id", paymentID)),
			storage.Row{"paid_amount": paid, "status": status},
		)
		if err != nil {
			return fmt.Errorf("failed to update payment: %w", err)
		}
		payment.PaidAmount = paid
		payment.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.recorder.TransactionRecorded(t.Kind, t.PaymentMethod, t.Amount)
	slog.Info("Installment recorded",
		"payment_id", paymentID,
		"installment", t.InstallmentNumber,
		"amount", calculator.FormatAmount(amount),
		"status", payment.Status,
	)
	return &t, nil
}

// ListTransactions returns the payment's transactions, newest first.
func (l *Ledger) ListTransactions(ctx context.Context, paymentID string) ([]models.Transaction, error) {
	if _, err := getPayment(ctx, l.store, paymentID); err != nil {
		return nil, err
	}
	rows, err := l.store.Get(ctx, storage.TableTransactions, storage.Where(storage.Eq("payment_id", paymentID)))
	if err != nil {
		return nil, err
	}

	out := make([]models.Transaction, len(rows))
	for i, row := range rows {
		out[i] = storage.TransactionFromRow(row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp != out[j].Timestamp {
			return out[i].Timestamp > out[j].Timestamp
		}
		return out[i].InstallmentNumber > out[j].InstallmentNumber
	})
	return out, nil
}
