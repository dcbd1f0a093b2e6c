/*
Package errs provides the application error type and the error code constants
used across the Learnly server.

This file maps every error code to its CustomError template, standardizing the
message and HTTP status for each failure.
*/
package errs

import "net/http"

// errorMap stores the CustomError template for every application error code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters: %s.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Content and Social Business Logic Errors
	ErrGroupNotFound:         {Code: ErrGroupNotFound, Message: "Group not found.", Status: http.StatusNotFound},
	ErrMessageContentTooLong: {Code: ErrMessageContentTooLong, Message: "Message is too long.", Status: http.StatusBadRequest},
	ErrPostNotFound:          {Code: ErrPostNotFound, Message: "Post not found.", Status: http.StatusNotFound},
	ErrCommentNotFound:       {Code: ErrCommentNotFound, Message: "Comment not found.", Status: http.StatusNotFound},
	ErrAlreadyLiked:          {Code: ErrAlreadyLiked, Message: "You already liked this post.", Status: http.StatusConflict},
	ErrLikeNotFound:          {Code: ErrLikeNotFound, Message: "Like not found.", Status: http.StatusNotFound},
	ErrPlanNotFound:          {Code: ErrPlanNotFound, Message: "Learning plan not found.", Status: http.StatusNotFound},
	ErrPlanNotPublic:         {Code: ErrPlanNotPublic, Message: "This learning plan is private.", Status: http.StatusForbidden},
	ErrProgressNotFound:      {Code: ErrProgressNotFound, Message: "Progress update not found.", Status: http.StatusNotFound},
	ErrFileSizeTooLarge:      {Code: ErrFileSizeTooLarge, Message: "File is too large. The maximum size is %dMB.", Status: http.StatusBadRequest},
	ErrFileTypeInvalid:       {Code: ErrFileTypeInvalid, Message: "File type is not allowed.", Status: http.StatusBadRequest},

	// 3xxx: User, Session, and Security Errors
	ErrUnauthorized:         {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},
	ErrForbidden:            {Code: ErrForbidden, Message: "You do not have permission to do that.", Status: http.StatusForbidden},
	ErrUserNotFound:         {Code: ErrUserNotFound, Message: "Account not found.", Status: http.StatusNotFound},
	ErrIdentityNotFound:     {Code: ErrIdentityNotFound, Message: "No account matches your sign-in identity.", Status: http.StatusNotFound},
	ErrOAuthProviderInvalid: {Code: ErrOAuthProviderInvalid, Message: "Unsupported sign-in provider.", Status: http.StatusBadRequest},
	ErrOAuthExchangeFailed:  {Code: ErrOAuthExchangeFailed, Message: "Sign-in failed. Please try again.", Status: http.StatusUnauthorized},
	ErrOAuthStateMismatch:   {Code: ErrOAuthStateMismatch, Message: "Sign-in session expired. Please try again.", Status: http.StatusUnauthorized},
	ErrSelfFollow:           {Code: ErrSelfFollow, Message: "You cannot follow yourself.", Status: http.StatusBadRequest},

	// 5xxx: Internal System Errors
	ErrUnknown:           {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrFileStorageFailed: {Code: ErrFileStorageFailed, Message: "File upload failed. Please try again.", Status: http.StatusBadGateway},
}
