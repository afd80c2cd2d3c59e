package auth

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/persx/persx-sub000/internal/domain"
	"github.com/persx/persx-sub000/internal/pkg/dbctx"
	perrors "github.com/persx/persx-sub000/internal/pkg/errors"
	"github.com/persx/persx-sub000/internal/platform/logger"
)

type AdminUserRepo interface {
	Create(dbc dbctx.Context, user *types.AdminUser) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.AdminUser, error)
	GetByEmail(dbc dbctx.Context, email string) (*types.AdminUser, error)
}

type adminUserRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAdminUserRepo(db *gorm.DB, baseLog *logger.Logger) AdminUserRepo {
	return &adminUserRepo{db: db, log: baseLog.With("repo", "AdminUserRepo")}
}

func (r *adminUserRepo) Create(dbc dbctx.Context, user *types.AdminUser) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if user == nil {
		return nil
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	err := transaction.WithContext(dbc.Ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return perrors.ErrConflict
	}
	return err
}

func (r *adminUserRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.AdminUser, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var u types.AdminUser
	if err := transaction.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&u).Error; err != nil {
		return nil, err
	}
	if u.ID == uuid.Nil {
		return nil, nil
	}
	return &u, nil
}

func (r *adminUserRepo) GetByEmail(dbc dbctx.Context, email string) (*types.AdminUser, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, nil
	}
	var u types.AdminUser
	if err := transaction.WithContext(dbc.Ctx).Where("email = ?", email).Limit(1).Find(&u).Error; err != nil {
		return nil, err
	}
	if u.ID == uuid.Nil {
		return nil, nil
	}
	return &u, nil
}
