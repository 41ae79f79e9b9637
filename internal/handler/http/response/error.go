package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/group"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/master/rank"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/master/specialization"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/shift"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/trainee"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/trainee-attendance-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenRevoked),
		errors.Is(err, auth.ErrMissingClaims):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrRefreshTokenCookieNotFound):
		Unauthorized(w, "Refresh token missing")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User account is disabled")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")

	// Master data errors
	case errors.Is(err, rank.ErrRankNotFound):
		NotFound(w, "Rank not found")
	case errors.Is(err, rank.ErrRankNameExists):
		Conflict(w, "Rank name already exists")
	case errors.Is(err, rank.ErrRankInUse):
		Conflict(w, "Rank is still assigned to trainees")
	case errors.Is(err, specialization.ErrSpecializationNotFound):
		NotFound(w, "Specialization not found")
	case errors.Is(err, specialization.ErrSpecializationNameExists):
		Conflict(w, "Specialization name already exists")
	case errors.Is(err, specialization.ErrSpecializationInUse):
		Conflict(w, "Specialization is still assigned to trainees")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrShiftNameExists):
		Conflict(w, "Shift name already exists")
	case errors.Is(err, shift.ErrShiftInUse):
		Conflict(w, "Shift is still assigned to trainees or schedules")
	case errors.Is(err, shift.ErrInvalidTimeFormat),
		errors.Is(err, shift.ErrNegativeGrace),
		errors.Is(err, shift.ErrShiftNameRequired):
		BadRequest(w, err.Error(), nil)

	// Trainee domain errors
	case errors.Is(err, trainee.ErrTraineeNotFound),
		errors.Is(err, attendance.ErrTraineeNotActive):
		NotFound(w, "Trainee not found")
	case errors.Is(err, trainee.ErrCivilIDExists):
		Conflict(w, "Civil ID already registered")
	case errors.Is(err, trainee.ErrMilitaryIDExists):
		Conflict(w, "Military ID already registered")
	case errors.Is(err, trainee.ErrBarcodeExists):
		Conflict(w, "Barcode already assigned to another trainee")
	case errors.Is(err, trainee.ErrInvalidRank),
		errors.Is(err, trainee.ErrInvalidSpecialization),
		errors.Is(err, trainee.ErrInvalidShift),
		errors.Is(err, trainee.ErrInvalidGroup):
		BadRequest(w, err.Error(), nil)

	// Group domain errors
	case errors.Is(err, group.ErrGroupNotFound):
		NotFound(w, "Group not found")
	case errors.Is(err, group.ErrGroupNameExists):
		Conflict(w, "Group name already exists")
	case errors.Is(err, group.ErrScheduleNotFound):
		NotFound(w, "Group schedule not found")
	case errors.Is(err, group.ErrScheduleRange):
		BadRequest(w, err.Error(), nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrSessionNotFound):
		NotFound(w, "Attendance session not found")
	case errors.Is(err, attendance.ErrNoShiftToday):
		UnprocessableEntity(w, "NO_SHIFT_TODAY", err.Error())
	case errors.Is(err, attendance.ErrNoActiveCheckIn):
		UnprocessableEntity(w, "NO_ACTIVE_CHECK_IN", err.Error())
	case errors.Is(err, attendance.ErrClockSkew):
		UnprocessableEntity(w, "CLOCK_SKEW", err.Error())
	case errors.Is(err, attendance.ErrInvalidScanMode),
		errors.Is(err, attendance.ErrInvalidStatus):
		BadRequest(w, err.Error(), nil)

	// Report domain errors
	case errors.Is(err, report.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
