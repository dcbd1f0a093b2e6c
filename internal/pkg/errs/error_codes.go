/*
Package errs provides the application error type and the error code constants
used across the Learnly server.

The codes identify specific business or system failures both internally and in
responses sent to clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON is malformed.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates trailing content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates that the request rate exceeded the limit.
	ErrRateLimitExceeded = 1005
)

// 2xxx: Content and Social Business Logic Errors
const (
	// ErrGroupNotFound indicates that the target group does not exist.
	ErrGroupNotFound = 2101

	// ErrMessageContentTooLong indicates the chat message exceeded the length limit.
	ErrMessageContentTooLong = 2102

	// ErrPostNotFound indicates that the target post does not exist.
	ErrPostNotFound = 2201

	// ErrCommentNotFound indicates that the target comment does not exist.
	ErrCommentNotFound = 2202

	// ErrAlreadyLiked indicates the user already liked the post.
	ErrAlreadyLiked = 2203

	// ErrLikeNotFound indicates no like exists for the post/user pair.
	ErrLikeNotFound = 2204

	// ErrPlanNotFound indicates that the target learning plan does not exist.
	ErrPlanNotFound = 2301

	// ErrPlanNotPublic indicates an attempt to read or import a private plan.
	ErrPlanNotPublic = 2302

	// ErrProgressNotFound indicates that the target progress update does not exist.
	ErrProgressNotFound = 2401

	// ErrFileSizeTooLarge indicates the upload exceeded the size limit.
	ErrFileSizeTooLarge = 2501

	// ErrFileTypeInvalid indicates a disallowed upload MIME type or extension.
	ErrFileTypeInvalid = 2502
)

// 3xxx: User, Session, and Security Errors
const (
	// ErrUnauthorized indicates the request carries no valid session identity.
	ErrUnauthorized = 3001

	// ErrForbidden indicates the identity is valid but lacks ownership of the record.
	ErrForbidden = 3002

	// ErrUserNotFound indicates no durable user record matches the request.
	ErrUserNotFound = 3003

	// ErrIdentityNotFound indicates an authenticated provider identity with no
	// durable user record behind it. This is a data-consistency fault.
	ErrIdentityNotFound = 3004

	// ErrOAuthProviderInvalid indicates an unsupported OAuth2 provider name.
	ErrOAuthProviderInvalid = 3005

	// ErrOAuthExchangeFailed indicates the authorization code exchange failed.
	ErrOAuthExchangeFailed = 3006

	// ErrOAuthStateMismatch indicates the OAuth2 state parameter did not match.
	ErrOAuthStateMismatch = 3007

	// ErrSelfFollow indicates an attempt to follow oneself.
	ErrSelfFollow = 3008
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified server internal error.
	ErrUnknown = 5000

	// ErrFileStorageFailed indicates a media storage operation failed.
	ErrFileStorageFailed = 5001
)
