package api

import (
	"errors"
	"net/http"

	"splitpal/internal/auth"
	"splitpal/internal/service"
	"splitpal/internal/split"
	"splitpal/internal/storage"
)

// respondDomainError translates a service or split-core error into the HTTP
// error envelope. Validation failures carry their domain code through
// unchanged so callers can identify the offending field or participant.
func respondDomainError(w http.ResponseWriter, err error) {
	if code := split.CodeOf(err); code != "" {
		respondSplitError(w, code, err)
		return
	}

	switch {
	case is(err, storage.ErrUserNotFound, storage.ErrGroupNotFound,
		storage.ErrExpenseNotFound, storage.ErrFriendshipNotFound):
		notFound(w, err)
	case is(err, storage.ErrEmailExists):
		RespondWithError(w, http.StatusConflict, "EMAIL_EXISTS", err.Error(), "email")
	case is(err, storage.ErrFriendshipExists):
		RespondWithError(w, http.StatusConflict, "FRIENDSHIP_EXISTS", err.Error(), "to_user_id")
	case is(err, service.ErrNotParticipant, service.ErrNotGroupMember,
		service.ErrNotGroupAdmin, service.ErrNotFriendRecipient):
		forbidden(w, err)
	case is(err, auth.ErrInvalidCredentials):
		RespondWithError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error(), "")
	case is(err, auth.ErrWeakPassword):
		RespondWithError(w, http.StatusBadRequest, "WEAK_PASSWORD", err.Error(), "password")
	case is(err, service.ErrSelfFriendship, service.ErrFriendshipResolved):
		badRequest(w, err)
	default:
		internalError(w, err)
	}
}

func respondSplitError(w http.ResponseWriter, code split.ErrorCode, err error) {
	field := ""
	var e *split.Error
	if errors.As(err, &e) {
		field = e.Field
	}

	status := http.StatusBadRequest
	switch code {
	case split.CodeGroupNotFound:
		status = http.StatusNotFound
	case split.CodeNotAGroupMember:
		status = http.StatusForbidden
	}
	RespondWithError(w, status, string(code), err.Error(), field)
}
