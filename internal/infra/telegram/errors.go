package telegram

import (
	"errors"
	"io/fs"
	"net"
	"net/http"
	"strings"

	"promo_broadcast_bot/internal/domain/delivery"

	"gopkg.in/telebot.v3"
)

// Classify maps an error returned by a send into a delivery failure category.
func Classify(err error) delivery.Category {
	if err == nil {
		return delivery.CategoryNone
	}
	if errors.Is(err, fs.ErrNotExist) {
		return delivery.CategoryMissingImage
	}

	var apiErr *telebot.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusForbidden:
			return delivery.CategoryRecipientBlocked
		case http.StatusBadRequest:
			return delivery.CategoryBadRequest
		default:
			return delivery.CategoryPlatformError
		}
	}

	// telebot reports descriptions it has no sentinel for as "telegram: <desc> (<code>)".
	msg := err.Error()
	switch {
	case strings.Contains(msg, "(403)") || strings.Contains(msg, "Forbidden"):
		return delivery.CategoryRecipientBlocked
	case strings.Contains(msg, "(400)") || strings.Contains(msg, "Bad Request"):
		return delivery.CategoryBadRequest
	case strings.HasPrefix(msg, "telegram:") || strings.HasPrefix(msg, "telebot:"):
		return delivery.CategoryPlatformError
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return delivery.CategoryPlatformError
	}
	return delivery.CategoryUnexpected
}
