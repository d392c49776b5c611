package contact

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"
	"github.com/registers/backend/internal/domain/contact"
)

// defaultPhoneRegion is assumed when a phone number has no international prefix
const defaultPhoneRegion = "GB"

var validate = validator.New()

// validateRequest normalizes and validates every supplied channel value,
// aggregating failures into a single error with messages sorted
// alphabetically for determinism.
func validateRequest(req ContactDetailsRequest) (ContactDetailsRequest, error) {
	var messages []string
	for _, ch := range contact.AllChannels {
		raw := req.value(ch)
		if raw == nil {
			continue
		}
		normalized, err := validateChannelValue(ch, *raw)
		if err != nil {
			messages = append(messages, err.Error())
			continue
		}
		req = req.withValue(ch, &normalized)
	}
	if len(messages) > 0 {
		sort.Strings(messages)
		return req, contact.NewValidationError(strings.Join(messages, ", "))
	}
	return req, nil
}

// validateChannelValue normalizes and validates a single channel value
func validateChannelValue(channel contact.Channel, raw string) (string, error) {
	value := strings.TrimSpace(raw)
	switch channel {
	case contact.ChannelEmail:
		return validateEmail(value)
	case contact.ChannelPhone:
		return validatePhone(value)
	case contact.ChannelWeb:
		return validateWeb(value)
	}
	return "", contact.NewValidationError(fmt.Sprintf("Unknown contact channel %s", channel))
}

func validateEmail(value string) (string, error) {
	if err := validate.Var(value, "required,email"); err != nil {
		return "", contact.NewValidationError(fmt.Sprintf("Email address %s is invalid", value))
	}
	return value, nil
}

func validatePhone(value string) (string, error) {
	region := defaultPhoneRegion
	if strings.HasPrefix(value, "+") {
		region = ""
	}
	number, err := phonenumbers.Parse(value, region)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return "", contact.NewValidationError(fmt.Sprintf("Phone number %s is invalid", value))
	}
	return value, nil
}

func validateWeb(value string) (string, error) {
	if value == "" {
		return "", contact.NewValidationError(fmt.Sprintf("Web address %s is invalid", value))
	}
	// Scheme is inferred when missing
	candidate := value
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}
	parsed, err := url.Parse(candidate)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", contact.NewValidationError(fmt.Sprintf("Web address %s is invalid", value))
	}
	return candidate, nil
}
