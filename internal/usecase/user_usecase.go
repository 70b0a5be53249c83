package usecase

import (
	"context"

	"university-clinic-api/internal/converter"
	"university-clinic-api/internal/delivery/dto"
	"university-clinic-api/internal/delivery/http/middleware"
	"university-clinic-api/internal/domain/entity"
	"university-clinic-api/internal/domain/repository"
	"university-clinic-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// UserUsecase is the admin-facing user directory.
type UserUsecase interface {
	List(ctx context.Context, roleName string) (*dto.UserListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*dto.UserResponse, error)
	ListDoctors(ctx context.Context) (*dto.UserListResponse, error)
}

type userUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	userRepo          repository.UserRepository
	roleRepo          repository.RoleRepository
	doctorProfileRepo repository.DoctorProfileRepository
	auditService      service.AuditService
}

func NewUserUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
) UserUsecase {
	return &userUsecase{
		db:                db,
		log:               log,
		userRepo:          userRepo,
		roleRepo:          roleRepo,
		doctorProfileRepo: doctorProfileRepo,
		auditService:      auditService,
	}
}

// List returns users, optionally filtered by role name.
func (u *userUsecase) List(ctx context.Context, roleName string) (*dto.UserListResponse, error) {
	var (
		users []entity.User
		err   error
	)
	if roleName != "" {
		role, roleErr := u.roleRepo.FindByName(u.db.WithContext(ctx), roleName)
		if roleErr != nil {
			return nil, roleErr
		}
		if role == nil {
			return nil, ErrRoleNotFound
		}
		users, err = u.userRepo.FindByRoleID(u.db.WithContext(ctx), role.ID)
	} else {
		users, err = u.userRepo.FindAll(u.db.WithContext(ctx))
	}
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, err
	}

	return &dto.UserListResponse{
		Users: converter.UsersToResponses(users),
		Total: len(users),
	}, nil
}

func (u *userUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", id, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

// SetActive enables or disables an account. Disabled accounts cannot log
// in; issued tokens still expire on their own TTL.
func (u *userUsecase) SetActive(ctx context.Context, id uuid.UUID, active bool) (*dto.UserResponse, error) {
	adminID, _ := middleware.GetUserIDFromContext(ctx)

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	user.IsActive = &active

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.userRepo.Update(tx, user); err != nil {
		u.log.Warnf("Failed to update user %s: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(tx, &adminID, entity.AuditActionUserUpdate, "user", id.String(), nil, map[string]any{
		"is_active": active,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

// ListDoctors returns active doctors for the booking flow. Open to any
// authenticated user.
func (u *userUsecase) ListDoctors(ctx context.Context) (*dto.UserListResponse, error) {
	profiles, err := u.doctorProfileRepo.FindAllActive(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	users := make([]dto.UserResponse, 0, len(profiles))
	for i := range profiles {
		user := profiles[i].User
		user.RoleID = entity.RoleIDDoctor
		resp := converter.UserToResponse(&user)
		if resp != nil {
			users = append(users, *resp)
		}
	}

	return &dto.UserListResponse{
		Users: users,
		Total: len(users),
	}, nil
}
