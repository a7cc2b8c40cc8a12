package usecase

import (
	"context"

	"clinic-scheduler/internal/converter"
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/domain/repository"
	"clinic-scheduler/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// TokenRevoker invalidates the live tokens of a user. Role changes go
// through it so stale claims stop working immediately.
type TokenRevoker interface {
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

type UserUsecase interface {
	FindByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	FindAll(ctx context.Context) (*dto.UserListResponse, error)
	FindByRole(ctx context.Context, roleName string) (*dto.UserListResponse, error)
	Update(ctx context.Context, actorID, id uuid.UUID, roleID int, request *dto.UpdateUserRequest) (*dto.UserResponse, error)
	ChangeRole(ctx context.Context, actorID, id uuid.UUID, request *dto.ChangeRoleRequest) (*dto.UserResponse, error)
}

type userUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	userRepo   repository.UserRepository
	authorizer entity.Authorizer
	revoker    TokenRevoker
	audit      service.AuditService
}

func NewUserUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	authorizer entity.Authorizer,
	revoker TokenRevoker,
	audit service.AuditService,
) UserUsecase {
	return &userUsecase{
		db:         db,
		log:        log,
		userRepo:   userRepo,
		authorizer: authorizer,
		revoker:    revoker,
		audit:      audit,
	}
}

func (u *userUsecase) FindByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.WithError(err).Error("failed to load user")
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return converter.UserToResponse(user), nil
}

func (u *userUsecase) FindAll(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := u.userRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.WithError(err).Error("failed to list users")
		return nil, err
	}
	return converter.UsersToListResponse(users), nil
}

func (u *userUsecase) FindByRole(ctx context.Context, roleName string) (*dto.UserListResponse, error) {
	roleID, ok := entity.RoleIDByName(roleName)
	if !ok {
		return nil, ErrRoleNotFound
	}
	users, err := u.userRepo.FindByRoleID(u.db.WithContext(ctx), roleID)
	if err != nil {
		u.log.WithError(err).Error("failed to list users by role")
		return nil, err
	}
	return converter.UsersToListResponse(users), nil
}

func (u *userUsecase) Update(ctx context.Context, actorID, id uuid.UUID, roleID int, request *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	// Users edit their own profile; administrators edit anyone.
	if actorID != id && !u.authorizer.IsPrivileged(roleID) {
		return nil, ErrForbidden
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.WithError(err).Error("failed to load user")
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if request.FirstName != nil {
		user.FirstName = *request.FirstName
	}
	if request.LastName != nil {
		user.LastName = *request.LastName
	}
	if request.Phone != nil {
		user.Phone = *request.Phone
	}
	if request.DateOfBirth != nil {
		user.DateOfBirth = request.DateOfBirth
	}
	if request.Address != nil {
		user.Address = *request.Address
	}
	if request.MedicalHistory != nil {
		user.MedicalHistory = *request.MedicalHistory
	}
	if request.Specialization != nil {
		user.Specialization = *request.Specialization
	}

	deactivated := false
	if request.IsActive != nil {
		if !u.authorizer.IsPrivileged(roleID) {
			return nil, ErrForbidden
		}
		deactivated = user.IsActive != nil && *user.IsActive && !*request.IsActive
		user.IsActive = request.IsActive
	}

	if err := u.userRepo.Update(u.db.WithContext(ctx), user); err != nil {
		u.log.WithError(err).Error("failed to update user")
		return nil, err
	}

	if deactivated {
		if err := u.revoker.RevokeAllUserTokens(ctx, user.ID); err != nil {
			u.log.WithError(err).Warn("failed to revoke tokens of deactivated user")
		}
	}

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) ChangeRole(ctx context.Context, actorID, id uuid.UUID, request *dto.ChangeRoleRequest) (*dto.UserResponse, error) {
	newRoleID, ok := entity.RoleIDByName(request.Role)
	if !ok {
		return nil, ErrRoleNotFound
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.WithError(err).Error("failed to load user")
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	previousRole := entity.RoleName(user.RoleID)
	if user.RoleID == newRoleID {
		return converter.UserToResponse(user), nil
	}
	user.RoleID = newRoleID

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.userRepo.Update(tx, user); err != nil {
			return err
		}
		return u.audit.LogUpdate(tx, &actorID, entity.AuditActionUserRoleChange, "user", user.ID.String(), map[string]interface{}{
			"role": previousRole,
		}, map[string]interface{}{
			"role": request.Role,
		})
	})
	if err != nil {
		u.log.WithError(err).Error("failed to change user role")
		return nil, err
	}

	// The old tokens still carry the previous role in their claims.
	if err := u.revoker.RevokeAllUserTokens(ctx, user.ID); err != nil {
		u.log.WithError(err).Warn("failed to revoke tokens after role change")
	}

	return converter.UserToResponse(user), nil
}
