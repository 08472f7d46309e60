package service

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"

	"github.com/Leganyst/meeting-planner/internal/calendar"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// toStatus переводит ошибку сценария в gRPC-статус.
func toStatus(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, calendar.ErrUserNotFound):
		return status.Errorf(codes.NotFound, "%s: %v", op, err)
	case errors.Is(err, calendar.ErrUserBlocked):
		return status.Errorf(codes.PermissionDenied, "%s: %v", op, err)
	case errors.Is(err, ErrInvalidArgument),
		errors.Is(err, calendar.ErrInvalidInterval),
		errors.Is(err, calendar.ErrInvalidTimeOfDay),
		errors.Is(err, calendar.ErrInvalidDate),
		errors.Is(err, calendar.ErrInvalidTelegramID),
		errors.Is(err, calendar.ErrSlotDuration):
		return status.Errorf(codes.InvalidArgument, "%s: %v", op, err)
	default:
		return status.Errorf(codes.Internal, "%s: %v", op, err)
	}
}
