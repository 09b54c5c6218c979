package util

import "errors"

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionExpired     = errors.New("session expired")

	ErrUserNotFound           = errors.New("user not found")
	ErrEmailRegistered        = errors.New("email or username already exists")
	ErrPasswordTooShort       = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch       = errors.New("passwords do not match")
	ErrTermsNotAccepted       = errors.New("you must accept the privacy policy before creating an account")
	ErrMissingLoginFields     = errors.New("please fill in all fields")
	ErrTitleRequired          = errors.New("title is required")
	ErrInvalidTheme           = errors.New("invalid theme")
	ErrInvalidStatus          = errors.New("invalid status")
	ErrInvalidModuleType      = errors.New("invalid module type")
	ErrInvalidDate            = errors.New("invalid date, expected YYYY-MM-DD")
	ErrCourseNotFound         = errors.New("course not found")
	ErrModuleNotFound         = errors.New("module not found")
	ErrPathNotFound           = errors.New("learning path not found")
	ErrTrainingNotFound       = errors.New("training not found")
	ErrEventNotFound          = errors.New("calendar event not found")
	ErrModuleLocked           = errors.New("module is locked until previous modules are completed")
	ErrManualCompletionDenied = errors.New("select this module before marking it complete")
	ErrEditSessionClosed      = errors.New("edit session already committed or discarded")
	ErrInvalidVideoExt        = errors.New("unsupported video format")
	ErrInvalidImageExt        = errors.New("unsupported image format")
	ErrNotVideoModule         = errors.New("module is not a video module")
	ErrInvalidPeriod          = errors.New("invalid period, expected week or month")
	ErrEventTitleRequired     = errors.New("event title is required")
	ErrDuplicateModule        = errors.New("module listed more than once")
	ErrCompletionOrder        = errors.New("completed modules must come before incomplete ones")
)
