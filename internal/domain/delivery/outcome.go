// internal/domain/delivery/outcome.go
package delivery

import "promo_broadcast_bot/internal/domain/recipient"

// Category classifies why a delivery failed.
type Category string

const (
	CategoryNone             Category = "NONE"
	CategoryMissingImage     Category = "MISSING_IMAGE"
	CategoryRecipientBlocked Category = "RECIPIENT_BLOCKED" // blocked the bot or never started it
	CategoryBadRequest       Category = "BAD_REQUEST"
	CategoryPlatformError    Category = "PLATFORM_ERROR"
	CategoryUnexpected       Category = "UNEXPECTED"
)

// Categories lists every failure category in reporting order.
var Categories = []Category{
	CategoryMissingImage,
	CategoryRecipientBlocked,
	CategoryBadRequest,
	CategoryPlatformError,
	CategoryUnexpected,
}

// Step names the part of a delivery that was being performed.
type Step string

const (
	StepCaption  Step = "CAPTION"
	StepDetailed Step = "DETAILED"
)

// Outcome is the result of delivering the promotional message to one recipient.
type Outcome struct {
	Recipient  recipient.ID
	Category   Category
	Step       Step  // step that failed; empty on success
	Err        error // nil on success
	ImagesSent int
}

// Succeeded reports whether both messages reached the recipient.
func (o Outcome) Succeeded() bool {
	return o.Category == CategoryNone
}

// Success builds a successful outcome.
func Success(id recipient.ID, imagesSent int) Outcome {
	return Outcome{Recipient: id, Category: CategoryNone, ImagesSent: imagesSent}
}

// Failure builds a failed outcome.
func Failure(id recipient.ID, step Step, category Category, err error) Outcome {
	return Outcome{Recipient: id, Category: category, Step: step, Err: err}
}
