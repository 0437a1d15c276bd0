package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sergiom84/Lucy3000/internal/dto"
	"github.com/Sergiom84/Lucy3000/internal/model"
	"github.com/Sergiom84/Lucy3000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sentinel errors for drawer invariant violations. Handlers map these to
// HTTP statuses with errors.Is.
var (
	ErrSessionAlreadyOpen = errors.New("a cash session is already open")
	ErrSessionClosed      = errors.New("cash session is closed")
	ErrSessionNotFound    = errors.New("cash session not found")
)

type CashService interface {
	Open(ctx context.Context, userID uuid.UUID, req dto.OpenSessionRequest) (*dto.CashSessionResponse, error)
	Close(ctx context.Context, id uuid.UUID, req dto.CloseSessionRequest) (*dto.CashSessionResponse, error)
	AddMovement(ctx context.Context, sessionID, userID uuid.UUID, req dto.AddMovementRequest) (*dto.CashMovementResponse, error)
	Current(ctx context.Context) (*dto.CashSessionResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CashSessionResponse, error)
	List(ctx context.Context, filter dto.CashSessionFilter) (*dto.CashSessionListResponse, error)
}

type cashService struct {
	repo repository.CashRepository
}

func NewCashService(repo repository.CashRepository) CashService {
	return &cashService{repo: repo}
}

// ── ComputeExpectedBalance ────────────────────────────────────────────────────

// ComputeExpectedBalance folds the movement ledger over the opening balance.
// INCOME and DEPOSIT add to the drawer, EXPENSE and WITHDRAWAL subtract.
// An unrecognized kind aborts the whole computation rather than producing a
// silently wrong balance. Addition commutes, so the result is independent of
// movement order.
func ComputeExpectedBalance(opening decimal.Decimal, movements []model.CashMovement) (decimal.Decimal, error) {
	balance := opening
	for _, m := range movements {
		switch m.Type {
		case model.MovementIncome, model.MovementDeposit:
			balance = balance.Add(m.Amount)
		case model.MovementExpense, model.MovementWithdrawal:
			balance = balance.Sub(m.Amount)
		default:
			return decimal.Zero, fmt.Errorf("unknown cash movement kind %q", m.Type)
		}
	}
	return balance, nil
}

// ── Open ──────────────────────────────────────────────────────────────────────

// Open starts a drawer session. The pre-flight lookup gives a friendly error;
// the partial unique index on status='OPEN' is what actually guarantees
// at-most-one under concurrent opens — the duplicate insert fails and is
// reported the same way.
func (s *cashService) Open(ctx context.Context, userID uuid.UUID, req dto.OpenSessionRequest) (*dto.CashSessionResponse, error) {
	if existing, err := s.repo.FindOpenSession(ctx); err == nil && existing != nil {
		return nil, ErrSessionAlreadyOpen
	}

	session := &model.CashSession{
		Date:           time.Now(),
		OpeningBalance: req.OpeningBalance,
		Status:         model.CashOpen,
		Notes:          req.Notes,
		OpenedAt:       time.Now(),
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateSession(ctx, tx, session); err != nil {
			// Only a unique violation on the OPEN index means a race with
			// another open; anything else propagates as-is.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSessionAlreadyOpen
			}
			return err
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.toResponse(session, nil), nil
}

// ── Close ─────────────────────────────────────────────────────────────────────

// Close reconciles and freezes the session. The row lock serializes against
// concurrent AddMovement calls so the expected balance covers every movement
// that made it in. Variance = counted − expected, reported as-is (a shortage
// is negative, an overage positive).
func (s *cashService) Close(ctx context.Context, id uuid.UUID, req dto.CloseSessionRequest) (*dto.CashSessionResponse, error) {
	var session *model.CashSession
	var movements []model.CashMovement

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		session, err = s.repo.LockSessionTx(ctx, tx, id)
		if err != nil {
			return ErrSessionNotFound
		}
		if session.Status != model.CashOpen {
			return ErrSessionClosed
		}

		movements, err = s.repo.ListMovementsTx(ctx, tx, id)
		if err != nil {
			return err
		}

		expected, err := ComputeExpectedBalance(session.OpeningBalance, movements)
		if err != nil {
			return err
		}
		variance := req.ClosingBalance.Sub(expected)

		now := time.Now()
		session.ClosingBalance = &req.ClosingBalance
		session.ExpectedBalance = &expected
		session.Variance = &variance
		session.Status = model.CashClosed
		session.ClosedAt = &now
		if req.Notes != nil {
			session.Notes = req.Notes
		}

		return s.repo.UpdateSessionTx(ctx, tx, session)
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.toResponse(session, movements), nil
}

// ── AddMovement ───────────────────────────────────────────────────────────────

// AddMovement appends an immutable ledger entry. The session row lock closes
// the race against a concurrent Close: once Close commits, the status check
// here sees CLOSED and the append is rejected.
func (s *cashService) AddMovement(ctx context.Context, sessionID, userID uuid.UUID, req dto.AddMovementRequest) (*dto.CashMovementResponse, error) {
	movement := &model.CashMovement{
		CashSessionID: sessionID,
		UserID:        userID,
		Type:          req.Type,
		Amount:        req.Amount,
		Category:      req.Category,
		Description:   req.Description,
		Reference:     req.Reference,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		session, err := s.repo.LockSessionTx(ctx, tx, sessionID)
		if err != nil {
			return ErrSessionNotFound
		}
		if session.Status != model.CashOpen {
			return ErrSessionClosed
		}
		return s.repo.CreateMovementTx(ctx, tx, movement)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := movementToResponse(movement)
	return &resp, nil
}

// ── Queries ───────────────────────────────────────────────────────────────────

func (s *cashService) Current(ctx context.Context) (*dto.CashSessionResponse, error) {
	session, err := s.repo.FindOpenSession(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return s.toResponse(session, session.Movements), nil
}

func (s *cashService) Get(ctx context.Context, id uuid.UUID) (*dto.CashSessionResponse, error) {
	session, err := s.repo.FindSessionByID(ctx, id)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	return s.toResponse(session, session.Movements), nil
}

func (s *cashService) List(ctx context.Context, filter dto.CashSessionFilter) (*dto.CashSessionListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	sessions, total, err := s.repo.ListSessions(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CashSessionResponse, 0, len(sessions))
	for i := range sessions {
		items = append(items, *s.toResponse(&sessions[i], nil))
	}
	return &dto.CashSessionListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *cashService) toResponse(session *model.CashSession, movements []model.CashMovement) *dto.CashSessionResponse {
	resp := &dto.CashSessionResponse{
		ID:              session.ID.String(),
		Date:            session.Date.Format("2006-01-02"),
		OpeningBalance:  session.OpeningBalance,
		ClosingBalance:  session.ClosingBalance,
		ExpectedBalance: session.ExpectedBalance,
		Variance:        session.Variance,
		Status:          session.Status,
		Notes:           session.Notes,
		OpenedAt:        session.OpenedAt.Format("2006-01-02T15:04:05Z"),
	}
	if session.ClosedAt != nil {
		t := session.ClosedAt.Format("2006-01-02T15:04:05Z")
		resp.ClosedAt = &t
	}

	switch {
	case session.Status == model.CashOpen:
		// Live balance over whatever movements were loaded. Unknown kinds
		// can't normally reach storage, so the error path degrades to the
		// opening balance.
		if balance, err := ComputeExpectedBalance(session.OpeningBalance, movements); err == nil {
			resp.CurrentBalance = balance
		} else {
			resp.CurrentBalance = session.OpeningBalance
		}
	case session.ExpectedBalance != nil:
		resp.CurrentBalance = *session.ExpectedBalance
	}

	for _, m := range movements {
		resp.Movements = append(resp.Movements, movementToResponse(&m))
	}
	return resp
}

func movementToResponse(m *model.CashMovement) dto.CashMovementResponse {
	userName := ""
	if m.User != nil {
		userName = m.User.Name
	}
	return dto.CashMovementResponse{
		ID:          m.ID.String(),
		Type:        m.Type,
		Amount:      m.Amount,
		Category:    m.Category,
		Description: m.Description,
		Reference:   m.Reference,
		UserName:    userName,
		CreatedAt:   m.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
