package errors

import (
	"errors"

	"github.com/hunty/huntcore/internal/platform/errors/i18n"
)

// DefaultLocale is the default locale for user-facing error messages.
const DefaultLocale = "en-US"

// UserMessage renders a user-facing message for an error using the i18n
// catalog for the given locale, defaulting to en-US if the locale is empty.
// Unknown errors render as a generic message so internal details never leak.
func UserMessage(err error, locale string) string {
	if err == nil {
		return ""
	}

	if locale == "" {
		locale = DefaultLocale
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		catalog := i18n.GetCatalog(locale)
		return catalog.Format(string(appErr.Code), appErr.Metadata)
	}

	return "an unexpected error occurred"
}
