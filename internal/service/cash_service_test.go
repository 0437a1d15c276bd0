package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Sergiom84/Lucy3000/internal/dto"
	"github.com/Sergiom84/Lucy3000/internal/model"
	"github.com/Sergiom84/Lucy3000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Full in-memory CashRepository ────────────────────────────────────────────

type fakeCashRepo struct {
	sessions  map[uuid.UUID]*model.CashSession
	movements []model.CashMovement
	// createSessionErr simulates a storage failure on insert
	createSessionErr error
}

func newFakeCashRepo() *fakeCashRepo {
	return &fakeCashRepo{sessions: make(map[uuid.UUID]*model.CashSession)}
}

func (r *fakeCashRepo) DB() *gorm.DB { return nil }

func (r *fakeCashRepo) CreateSession(_ context.Context, _ *gorm.DB, s *model.CashSession) error {
	if r.createSessionErr != nil {
		return r.createSessionErr
	}
	for _, existing := range r.sessions {
		if existing.Status == model.CashOpen {
			return gorm.ErrDuplicatedKey
		}
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sessions[s.ID] = s
	return nil
}

func (r *fakeCashRepo) FindOpenSession(_ context.Context) (*model.CashSession, error) {
	for _, s := range r.sessions {
		if s.Status == model.CashOpen {
			s.Movements = r.movementsOf(s.ID)
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCashRepo) FindSessionByID(_ context.Context, id uuid.UUID) (*model.CashSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	s.Movements = r.movementsOf(id)
	return s, nil
}

func (r *fakeCashRepo) LockSessionTx(_ context.Context, _ *gorm.DB, id uuid.UUID) (*model.CashSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *fakeCashRepo) UpdateSessionTx(_ context.Context, _ *gorm.DB, s *model.CashSession) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *fakeCashRepo) ListSessions(_ context.Context, _ dto.CashSessionFilter) ([]model.CashSession, int64, error) {
	all := make([]model.CashSession, 0, len(r.sessions))
	for _, s := range r.sessions {
		all = append(all, *s)
	}
	return all, int64(len(all)), nil
}

func (r *fakeCashRepo) CreateMovementTx(_ context.Context, _ *gorm.DB, m *model.CashMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movements = append(r.movements, *m)
	return nil
}

func (r *fakeCashRepo) ListMovements(_ context.Context, sessionID uuid.UUID) ([]model.CashMovement, error) {
	return r.movementsOf(sessionID), nil
}

func (r *fakeCashRepo) ListMovementsTx(_ context.Context, _ *gorm.DB, sessionID uuid.UUID) ([]model.CashMovement, error) {
	return r.movementsOf(sessionID), nil
}

func (r *fakeCashRepo) ListMovementsBetween(_ context.Context, _, _ string) ([]model.CashMovement, error) {
	return r.movements, nil
}

func (r *fakeCashRepo) movementsOf(sessionID uuid.UUID) []model.CashMovement {
	var result []model.CashMovement
	for _, m := range r.movements {
		if m.CashSessionID == sessionID {
			result = append(result, m)
		}
	}
	return result
}

var _ repository.CashRepository = (*fakeCashRepo)(nil)

func mov(kind string, amount float64) model.CashMovement {
	return model.CashMovement{Type: kind, Amount: decimal.NewFromFloat(amount)}
}

// ── ComputeExpectedBalance ────────────────────────────────────────────────────

func TestComputeExpectedBalance(t *testing.T) {
	movements := []model.CashMovement{
		mov(model.MovementIncome, 100),
		mov(model.MovementExpense, 30),
		mov(model.MovementDeposit, 50),
		mov(model.MovementWithdrawal, 20),
	}

	balance, err := ComputeExpectedBalance(decimal.NewFromInt(200), movements)
	require.NoError(t, err)
	// 200 + 100 - 30 + 50 - 20 = 300
	assert.Equal(t, "300", balance.String())
}

func TestComputeExpectedBalanceOrderIndependent(t *testing.T) {
	forward := []model.CashMovement{
		mov(model.MovementIncome, 75.50),
		mov(model.MovementWithdrawal, 12.25),
		mov(model.MovementDeposit, 40),
	}
	reversed := []model.CashMovement{forward[2], forward[1], forward[0]}

	a, err := ComputeExpectedBalance(decimal.NewFromInt(100), forward)
	require.NoError(t, err)
	b, err := ComputeExpectedBalance(decimal.NewFromInt(100), reversed)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestComputeExpectedBalanceUnknownKind(t *testing.T) {
	movements := []model.CashMovement{
		mov(model.MovementIncome, 100),
		mov("REFUND", 10),
	}
	_, err := ComputeExpectedBalance(decimal.Zero, movements)
	assert.ErrorContains(t, err, "unknown cash movement kind")
}

func TestComputeExpectedBalanceEmpty(t *testing.T) {
	balance, err := ComputeExpectedBalance(decimal.NewFromFloat(150.75), nil)
	require.NoError(t, err)
	assert.Equal(t, "150.75", balance.String())
}

// ── Open ──────────────────────────────────────────────────────────────────────

func TestOpenSession(t *testing.T) {
	repo := newFakeCashRepo()
	svc := NewCashService(repo)

	resp, err := svc.Open(context.Background(), uuid.New(), dto.OpenSessionRequest{
		OpeningBalance: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.Equal(t, model.CashOpen, resp.Status)
	assert.Equal(t, "100", resp.OpeningBalance.String())
	assert.Nil(t, resp.ClosingBalance)
	assert.Nil(t, resp.Variance)
}

func TestOpenSessionTwice(t *testing.T) {
	repo := newFakeCashRepo()
	svc := NewCashService(repo)

	_, err := svc.Open(context.Background(), uuid.New(), dto.OpenSessionRequest{
		OpeningBalance: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	_, err = svc.Open(context.Background(), uuid.New(), dto.OpenSessionRequest{
		OpeningBalance: decimal.NewFromInt(50),
	})
	assert.ErrorIs(t, err, ErrSessionAlreadyOpen)
}

func TestOpenSessionStorageErrorIsNotAlreadyOpen(t *testing.T) {
	repo := newFakeCashRepo()
	svc := NewCashService(repo)

	// A dropped connection must not masquerade as "session already open";
	// only a unique violation on the OPEN index means that.
	repo.createSessionErr = errors.New("connection reset by peer")
	_, err := svc.Open(context.Background(), uuid.New(), dto.OpenSessionRequest{
		OpeningBalance: decimal.NewFromInt(100),
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionAlreadyOpen)
	assert.ErrorContains(t, err, "connection reset")
}

// ── Close ─────────────────────────────────────────────────────────────────────

func TestCloseComputesVariance(t *testing.T) {
	repo := newFakeCashRepo()
	svc := NewCashService(repo)

	open, err := svc.Open(context.Background(), uuid.New(), dto.OpenSessionRequest{
		OpeningBalance: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	sessionID := uuid.MustParse(open.ID)

	_, err = svc.AddMovement(context.Background(), sessionID, uuid.New(), dto.AddMovementRequest{
		Type: model.MovementIncome, Amount: decimal.NewFromInt(50),
		Category: "sale", Description: "cash sale",
	})
	require.NoError(t, err)

	// Expected = 100 + 50 = 150; counted 160 → variance +10
	resp, err := svc.Close(context.Background(), sessionID, dto.CloseSessionRequest{
		ClosingBalance: decimal.NewFromInt(160),
	})
	require.NoError(t, err)
	assert.Equal(t, model.CashClosed, resp.Status)
	require.NotNil(t, resp.ExpectedBalance)
	require.NotNil(t, resp.Variance)
	assert.Equal(t, "150", resp.ExpectedBalance.String())
	assert.Equal(t, "10", resp.Variance.String())
}

func TestCloseShortageIsNegative(t *testing.T) {
	repo := newFakeCashRepo()
	svc := NewCashService(repo)

	open, err := svc.Open(context.Background(), uuid.New(), dto.OpenSessionRequest{
		OpeningBalance: decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	sessionID := uuid.MustParse(open.ID)

	// Counted far below expected: variance must carry the full negative amount,
	// never clamped to zero.
	resp, err := svc.Close(context.Background(), sessionID, dto.CloseSessionRequest{
		ClosingBalance: decimal.NewFromInt(120),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Variance)
	assert.Equal(t, "-380", resp.Variance.String())
}

func TestCloseTwice(t *testing.T) {
	repo := newFakeCashRepo()
	svc := NewCashService(repo)

	open, err := svc.Open(context.Background(), uuid.New(), dto.OpenSessionRequest{
		OpeningBalance: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	sessionID := uuid.MustParse(open.ID)

	_, err = svc.Close(context.Background(), sessionID, dto.CloseSessionRequest{
		ClosingBalance: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	_, err = svc.Close(context.Background(), sessionID, dto.CloseSessionRequest{
		ClosingBalance: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestCloseUnknownSession(t *testing.T) {
	repo := newFakeCashRepo()
	svc := NewCashService(repo)

	_, err := svc.Close(context.Background(), uuid.New(), dto.CloseSessionRequest{
		ClosingBalance: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

// ── AddMovement ───────────────────────────────────────────────────────────────

func TestAddMovementToClosedSession(t *testing.T) {
	repo := newFakeCashRepo()
	svc := NewCashService(repo)

	open, err := svc.Open(context.Background(), uuid.New(), dto.OpenSessionRequest{
		OpeningBalance: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	sessionID := uuid.MustParse(open.ID)

	_, err = svc.Close(context.Background(), sessionID, dto.CloseSessionRequest{
		ClosingBalance: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	_, err = svc.AddMovement(context.Background(), sessionID, uuid.New(), dto.AddMovementRequest{
		Type: model.MovementExpense, Amount: decimal.NewFromInt(10),
		Category: "supplies", Description: "late entry",
	})
	assert.ErrorIs(t, err, ErrSessionClosed)
	// Ledger unchanged
	assert.Empty(t, repo.movements)
}

func TestMovementsAreImmutable(t *testing.T) {
	// Movements are created, never updated — the interface has no update
	// method, so this is a compile-time guarantee; here we check the ledger
	// only grows.
	repo := newFakeCashRepo()
	svc := NewCashService(repo)

	open, err := svc.Open(context.Background(), uuid.New(), dto.OpenSessionRequest{
		OpeningBalance: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	sessionID := uuid.MustParse(open.ID)

	for i := 0; i < 3; i++ {
		_, err = svc.AddMovement(context.Background(), sessionID, uuid.New(), dto.AddMovementRequest{
			Type: model.MovementIncome, Amount: decimal.NewFromInt(10),
			Category: "sale", Description: "cash sale",
		})
		require.NoError(t, err)
	}
	assert.Len(t, repo.movements, 3)
}

// ── Current ───────────────────────────────────────────────────────────────────

func TestCurrentReportsLiveBalance(t *testing.T) {
	repo := newFakeCashRepo()
	svc := NewCashService(repo)

	open, err := svc.Open(context.Background(), uuid.New(), dto.OpenSessionRequest{
		OpeningBalance: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	sessionID := uuid.MustParse(open.ID)

	_, err = svc.AddMovement(context.Background(), sessionID, uuid.New(), dto.AddMovementRequest{
		Type: model.MovementIncome, Amount: decimal.NewFromInt(25),
		Category: "sale", Description: "cash sale",
	})
	require.NoError(t, err)
	_, err = svc.AddMovement(context.Background(), sessionID, uuid.New(), dto.AddMovementRequest{
		Type: model.MovementWithdrawal, Amount: decimal.NewFromInt(40),
		Category: "bank", Description: "bank drop",
	})
	require.NoError(t, err)

	resp, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "85", resp.CurrentBalance.String())
	assert.Len(t, resp.Movements, 2)
}

func TestCurrentWithoutOpenSession(t *testing.T) {
	repo := newFakeCashRepo()
	svc := NewCashService(repo)

	_, err := svc.Current(context.Background())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
