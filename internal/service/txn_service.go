package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gigwise/eventops/internal/models"
	"github.com/gigwise/eventops/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTxnNotFound   = errors.New("transaction not found")
	ErrNothingToPay  = errors.New("no outstanding wages for this event")
	ErrTxnNotPending = errors.New("transaction is not pending")
)

type TransactionService interface {
	Create(ctx context.Context, txn *models.Transaction) error
	Get(ctx context.Context, id uint) (*models.Transaction, error)
	ListByEvent(ctx context.Context, eventID uint) ([]models.Transaction, error)

	// MarkCompleted settles a pending transaction. Income transactions
	// linked to an event also settle that event's deposit first, then its
	// balance.
	MarkCompleted(ctx context.Context, txnID uint, actorID uint) (*models.Transaction, error)

	// PayEmployeeWages creates one completed expenditure transaction per
	// unpaid employee assignment on the event, all or nothing.
	PayEmployeeWages(ctx context.Context, eventID uint, actorID uint) ([]models.Transaction, error)
}

type transactionService struct {
	txns     repository.TransactionRepository
	events   repository.EventRepository
	users    repository.UserRepository
	eventSvc EventService
}

func NewTransactionService(
	txns repository.TransactionRepository,
	events repository.EventRepository,
	users repository.UserRepository,
	eventSvc EventService,
) TransactionService {
	return &transactionService{txns: txns, events: events, users: users, eventSvc: eventSvc}
}

func (s *transactionService) Create(ctx context.Context, txn *models.Transaction) error {
	if txn.EventID != nil {
		if _, err := s.events.FindByID(ctx, *txn.EventID); err != nil {
			return ErrEventNotFound
		}
	}
	if txn.Status == "" {
		txn.Status = models.TxnPending
	}
	if err := s.txns.Create(ctx, nil, txn); err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

func (s *transactionService) Get(ctx context.Context, id uint) (*models.Transaction, error) {
	txn, err := s.txns.FindByID(ctx, id)
	if err != nil {
		return nil, ErrTxnNotFound
	}
	return txn, nil
}

func (s *transactionService) ListByEvent(ctx context.Context, eventID uint) ([]models.Transaction, error) {
	return s.txns.FindByEventID(ctx, eventID)
}

func (s *transactionService) MarkCompleted(ctx context.Context, txnID uint, actorID uint) (*models.Transaction, error) {
	txn, err := s.txns.FindByID(ctx, txnID)
	if err != nil {
		return nil, ErrTxnNotFound
	}
	if txn.Status != models.TxnPending {
		return nil, ErrTxnNotPending
	}

	if err := s.txns.UpdateStatus(ctx, txnID, models.TxnCompleted); err != nil {
		return nil, fmt.Errorf("complete transaction %d: %w", txnID, err)
	}
	txn.Status = models.TxnCompleted

	if txn.Direction == models.TxnIncome && txn.EventID != nil {
		if err := s.applyPayment(ctx, *txn.EventID, txn, actorID); err != nil {
			return nil, err
		}
	}
	return txn, nil
}

// applyPayment settles the event's deposit before its balance, mirroring how
// client payments are taken: deposit first, remainder on the balance.
func (s *transactionService) applyPayment(ctx context.Context, eventID uint, txn *models.Transaction, actorID uint) error {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return ErrEventNotFound
	}

	switch {
	case event.DepositStatus == models.PaymentDue:
		event.DepositStatus = models.PaymentPaid
	case event.BalanceStatus == models.PaymentDue:
		event.BalanceStatus = models.PaymentPaid
	default:
		return nil
	}

	if err := s.events.Update(ctx, event); err != nil {
		return fmt.Errorf("apply payment to event %d: %w", eventID, err)
	}
	return s.eventSvc.Journal(ctx, eventID, actorID,
		fmt.Sprintf("Payment of %.2f received", txn.Amount), true)
}

func (s *transactionService) PayEmployeeWages(ctx context.Context, eventID uint, actorID uint) ([]models.Transaction, error) {
	var created []models.Transaction
	err := s.txns.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		created, err = s.payWages(ctx, tx, eventID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, ErrNothingToPay
	}

	_ = s.eventSvc.Journal(ctx, eventID, actorID,
		fmt.Sprintf("Wages paid to %d employee(s)", len(created)), false)
	return created, nil
}

// payWages runs inside the wage transaction. The event row and its
// assignments are read with FOR UPDATE so a concurrent payout blocks here and
// then sees payment_status already Paid; an assignment is never paid twice.
func (s *transactionService) payWages(ctx context.Context, tx *gorm.DB, eventID uint) ([]models.Transaction, error) {
	event, err := s.events.FindByIDForUpdate(ctx, tx, eventID)
	if err != nil {
		return nil, ErrEventNotFound
	}

	assignments, err := s.events.ListEmployeesForUpdate(ctx, tx, eventID)
	if err != nil {
		return nil, err
	}

	var created []models.Transaction
	for i := range assignments {
		a := &assignments[i]
		if a.PaymentStatus == models.PaymentPaid || a.Wage <= 0 {
			continue
		}

		employee, err := s.users.FindByID(ctx, a.EmployeeID)
		if err != nil {
			return nil, fmt.Errorf("employee %d: %w", a.EmployeeID, err)
		}

		// The wage transaction is always created before the assignment
		// references its ID, so a half-paid state cannot point at a
		// transaction that does not exist.
		txn := models.Transaction{
			EventID:   &event.ID,
			Status:    models.TxnCompleted,
			Direction: models.TxnExpenditure,
			Amount:    a.Wage,
			Party:     employee.DisplayName(),
			Source:    "wages",
			Detail:    fmt.Sprintf("Wage payment for %s", event.Name),
		}
		if err := s.txns.Create(ctx, tx, &txn); err != nil {
			return nil, err
		}

		a.PaymentStatus = models.PaymentPaid
		a.WageTxnID = &txn.ID
		if err := s.events.UpdateEmployee(ctx, tx, a); err != nil {
			return nil, err
		}
		created = append(created, txn)
	}
	return created, nil
}
