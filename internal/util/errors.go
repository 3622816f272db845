package util

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidPromotion     = errors.New("invalid promotion path")
	ErrSubjectNotFound      = errors.New("subject not found")
	ErrSubjectExists        = errors.New("a subject with this GCE paper code already exists")
	ErrBranchNotFound       = errors.New("branch not found")
	ErrTopicNotFound        = errors.New("topic not found")
	ErrQuestionNotFound     = errors.New("question not found")
	ErrScopeRequired        = errors.New("a subject, branch or topic scope is required")
	ErrNoQuestionsAvailable = errors.New("no approved questions match the requested scope")
	ErrSessionNotFound      = errors.New("quiz session not found")
	ErrSessionClosed        = errors.New("quiz session already submitted")
	ErrSessionStillOpen     = errors.New("quiz session not yet submitted")
)
