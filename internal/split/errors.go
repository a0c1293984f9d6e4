package split

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a validation failure in the split core. Every code is
// rejected synchronously before anything is persisted.
type ErrorCode string

const (
	// CodeInvalidAmount indicates a non-positive total or a malformed
	// per-participant amount.
	CodeInvalidAmount ErrorCode = "INVALID_AMOUNT"
	// CodeInvalidSplitType indicates an unrecognized split strategy tag.
	CodeInvalidSplitType ErrorCode = "INVALID_SPLIT_TYPE"
	// CodeGroupNotFound indicates the named group does not exist.
	CodeGroupNotFound ErrorCode = "GROUP_NOT_FOUND"
	// CodeNotAGroupMember indicates the payer is not a member of the group.
	CodeNotAGroupMember ErrorCode = "NOT_A_GROUP_MEMBER"
	// CodeDuplicateParticipant indicates a participant referenced twice.
	CodeDuplicateParticipant ErrorCode = "DUPLICATE_PARTICIPANT"
	// CodeUnknownParticipant indicates a referenced identity that does not exist.
	CodeUnknownParticipant ErrorCode = "UNKNOWN_PARTICIPANT"
	// CodeParticipantNotGroupMember indicates a referenced participant
	// outside the group's membership.
	CodeParticipantNotGroupMember ErrorCode = "PARTICIPANT_NOT_GROUP_MEMBER"
	// CodePayerNotInSplits indicates the payer is missing from the
	// participant references.
	CodePayerNotInSplits ErrorCode = "PAYER_NOT_IN_SPLITS"
	// CodeParticipantMismatch indicates split inputs that do not match the
	// resolved participant set exactly.
	CodeParticipantMismatch ErrorCode = "PARTICIPANT_MISMATCH"
	// CodeExactTotalMismatch indicates exact amounts that do not sum to the total.
	CodeExactTotalMismatch ErrorCode = "EXACT_TOTAL_MISMATCH"
	// CodePercentSumMismatch indicates percentages that do not sum to 100.
	CodePercentSumMismatch ErrorCode = "PERCENT_SUM_MISMATCH"
	// CodeInvalidPercent indicates a missing or out-of-range percentage.
	CodeInvalidPercent ErrorCode = "INVALID_PERCENT"
	// CodeInvalidShareWeight indicates a missing or non-positive share weight.
	CodeInvalidShareWeight ErrorCode = "INVALID_SHARE_WEIGHT"
)

// Error is a validation failure carrying the code, the offending field or
// participant, and a human-readable message. Failures are values returned to
// the caller, never panics.
type Error struct {
	Code    ErrorCode
	Field   string
	Message string
}

// Error returns the formatted error string.
func (e *Error) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
}

// NewError creates a split domain error.
func NewError(code ErrorCode, field, message string) *Error {
	return &Error{Code: code, Field: field, Message: message}
}

// CodeOf extracts the domain error code from err, or "" if err is not a
// split error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
