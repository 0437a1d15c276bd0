package repository

import (
	"context"

	"github.com/Sergiom84/Lucy3000/internal/dto"
	"github.com/Sergiom84/Lucy3000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CashRepository interface {
	CreateSession(ctx context.Context, tx *gorm.DB, s *model.CashSession) error
	FindOpenSession(ctx context.Context) (*model.CashSession, error)
	FindSessionByID(ctx context.Context, id uuid.UUID) (*model.CashSession, error)
	// LockSessionTx loads the session row FOR UPDATE so concurrent
	// close/add-movement calls serialize on it.
	LockSessionTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.CashSession, error)
	UpdateSessionTx(ctx context.Context, tx *gorm.DB, s *model.CashSession) error
	ListSessions(ctx context.Context, filter dto.CashSessionFilter) ([]model.CashSession, int64, error)
	CreateMovementTx(ctx context.Context, tx *gorm.DB, m *model.CashMovement) error
	ListMovements(ctx context.Context, sessionID uuid.UUID) ([]model.CashMovement, error)
	ListMovementsTx(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]model.CashMovement, error)
	ListMovementsBetween(ctx context.Context, start, end string) ([]model.CashMovement, error)
	DB() *gorm.DB
}

type cashRepo struct{ db *gorm.DB }

func NewCashRepository(db *gorm.DB) CashRepository { return &cashRepo{db: db} }

func (r *cashRepo) DB() *gorm.DB { return r.db }

func (r *cashRepo) CreateSession(ctx context.Context, tx *gorm.DB, s *model.CashSession) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *cashRepo) FindOpenSession(ctx context.Context) (*model.CashSession, error) {
	var s model.CashSession
	err := r.db.WithContext(ctx).
		Preload("Movements.User").
		Where("status = ?", model.CashOpen).
		First(&s).Error
	return &s, err
}

func (r *cashRepo) FindSessionByID(ctx context.Context, id uuid.UUID) (*model.CashSession, error) {
	var s model.CashSession
	err := r.db.WithContext(ctx).Preload("Movements.User").First(&s, id).Error
	return &s, err
}

func (r *cashRepo) LockSessionTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.CashSession, error) {
	var s model.CashSession
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&s, id).Error
	return &s, err
}

func (r *cashRepo) UpdateSessionTx(ctx context.Context, tx *gorm.DB, s *model.CashSession) error {
	return tx.WithContext(ctx).Save(s).Error
}

func (r *cashRepo) ListSessions(ctx context.Context, filter dto.CashSessionFilter) ([]model.CashSession, int64, error) {
	var sessions []model.CashSession
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.CashSession{})

	if filter.StartDate != "" {
		q = q.Where("DATE(date) >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		q = q.Where("DATE(date) <= ?", filter.EndDate)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("opened_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&sessions).Error

	return sessions, total, err
}

func (r *cashRepo) CreateMovementTx(ctx context.Context, tx *gorm.DB, m *model.CashMovement) error {
	return tx.WithContext(ctx).Create(m).Error
}

func (r *cashRepo) ListMovements(ctx context.Context, sessionID uuid.UUID) ([]model.CashMovement, error) {
	var movs []model.CashMovement
	err := r.db.WithContext(ctx).Preload("User").
		Where("cash_session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&movs).Error
	return movs, err
}

func (r *cashRepo) ListMovementsTx(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]model.CashMovement, error) {
	var movs []model.CashMovement
	err := tx.WithContext(ctx).
		Where("cash_session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&movs).Error
	return movs, err
}

func (r *cashRepo) ListMovementsBetween(ctx context.Context, start, end string) ([]model.CashMovement, error) {
	var movs []model.CashMovement
	q := r.db.WithContext(ctx).Model(&model.CashMovement{})
	if start != "" {
		q = q.Where("DATE(created_at) >= ?", start)
	}
	if end != "" {
		q = q.Where("DATE(created_at) <= ?", end)
	}
	err := q.Order("created_at ASC").Find(&movs).Error
	return movs, err
}
