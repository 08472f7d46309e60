package service

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"

	identitypb "github.com/Leganyst/meeting-planner/internal/api/identity/v1"
	"github.com/Leganyst/meeting-planner/internal/model"
	"github.com/Leganyst/meeting-planner/internal/repository"
)

// IdentityService реализует регистрацию и управление профилем по Telegram ID.
type IdentityService struct {
	identitypb.UnimplementedIdentityServiceServer

	userRepo repository.UserRepository
}

func NewIdentityService(userRepo repository.UserRepository) *IdentityService {
	return &IdentityService{userRepo: userRepo}
}

// RegisterUser создаёт пользователя по Telegram ID или возвращает существующего, обновляя контактные данные.
func (s *IdentityService) RegisterUser(ctx context.Context, req *identitypb.RegisterUserRequest) (*identitypb.RegisterUserResponse, error) {
	if req.TelegramId <= 0 {
		return nil, status.Error(codes.InvalidArgument, "telegram_id is required")
	}

	u, err := s.userRepo.UpsertUser(ctx, req.TelegramId, req.DisplayName, req.Username, req.ContactPhone)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "register user: %v", err)
	}

	return &identitypb.RegisterUserResponse{User: mapUser(u)}, nil
}

// UpdateContacts обновляет отображаемое имя, username и телефон; пустые поля не трогает.
func (s *IdentityService) UpdateContacts(ctx context.Context, req *identitypb.UpdateContactsRequest) (*identitypb.UpdateContactsResponse, error) {
	if req.TelegramId <= 0 {
		return nil, status.Error(codes.InvalidArgument, "telegram_id is required")
	}

	u, err := s.userRepo.UpdateContacts(ctx, req.TelegramId, req.DisplayName, req.Username, req.ContactPhone)
	if err != nil {
		return nil, userError("update contacts", err)
	}

	return &identitypb.UpdateContactsResponse{User: mapUser(u)}, nil
}

// SetBlocked блокирует или разблокирует пользователя: заблокированный не может бронировать.
func (s *IdentityService) SetBlocked(ctx context.Context, req *identitypb.SetBlockedRequest) (*identitypb.SetBlockedResponse, error) {
	if req.TelegramId <= 0 {
		return nil, status.Error(codes.InvalidArgument, "telegram_id is required")
	}

	u, err := s.userRepo.SetBlocked(ctx, req.TelegramId, req.Blocked)
	if err != nil {
		return nil, userError("set blocked", err)
	}

	return &identitypb.SetBlockedResponse{User: mapUser(u)}, nil
}

// GetProfile возвращает профиль пользователя по Telegram ID.
func (s *IdentityService) GetProfile(ctx context.Context, req *identitypb.GetProfileRequest) (*identitypb.GetProfileResponse, error) {
	if req.TelegramId <= 0 {
		return nil, status.Error(codes.InvalidArgument, "telegram_id is required")
	}

	u, err := s.userRepo.FindByTelegramID(ctx, req.TelegramId)
	if err != nil {
		return nil, userError("get profile", err)
	}

	return &identitypb.GetProfileResponse{User: mapUser(u)}, nil
}

func userError(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return status.Error(codes.NotFound, "user not found")
	}
	return status.Errorf(codes.Internal, "%s: %v", op, err)
}

func mapUser(u *model.User) *identitypb.User {
	if u == nil {
		return nil
	}
	return &identitypb.User{
		Id:           u.ID.String(),
		TelegramId:   u.TelegramID,
		DisplayName:  u.DisplayName,
		Username:     u.Username,
		ContactPhone: u.ContactPhone,
		Blocked:      u.Blocked,
		CreatedAt:    u.CreatedAt,
	}
}
