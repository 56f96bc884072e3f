package handlers

// Error codes carried in ErrorResponse.Code. Generic codes mirror the HTTP
// status; domain codes name the operation that failed.
const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeForbidden        = "forbidden"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:
	ErrCodeListFailed         = "list_failed"
	ErrCodeCreateFailed       = "create_failed"
	ErrCodeUpdateFailed       = "update_failed"
	ErrCodeDeleteFailed       = "delete_failed"
	ErrCodeUploadFailed       = "upload_failed"
	ErrCodeSearchFailed       = "search_failed"
	ErrCodeAnalyticsFailed    = "analytics_failed"
	ErrCodeChatbotUnavailable = "chatbot_unavailable"
	ErrCodeChatbotFailed      = "chatbot_failed"
)
