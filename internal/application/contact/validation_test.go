package contact

import (
	"testing"

	"github.com/registers/backend/internal/domain/contact"
	"github.com/registers/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateChannelValue_Email(t *testing.T) {
	valid := []string{
		"visits@example.gov.uk",
		"omu@justice.gov.uk",
		"first.last@sub.domain.org",
	}
	for _, v := range valid {
		normalized, err := validateChannelValue(contact.ChannelEmail, v)
		require.NoError(t, err, v)
		assert.Equal(t, v, normalized)
	}

	invalid := []string{"", "plainaddress", "missing@domain@twice", "@nouser.com"}
	for _, v := range invalid {
		_, err := validateChannelValue(contact.ChannelEmail, v)
		require.Error(t, err, v)
		assert.EqualError(t, err, "Email address "+v+" is invalid")
	}
}

func TestValidateChannelValue_Phone(t *testing.T) {
	valid := []string{
		"01348811540",
		"0113 203 2625",
		"+44 113 203 2625",
		"+33 1 23 45 67 89",
	}
	for _, v := range valid {
		_, err := validateChannelValue(contact.ChannelPhone, v)
		assert.NoError(t, err, v)
	}

	invalid := []string{"", "12345", "not a number", "+44 0000"}
	for _, v := range invalid {
		_, err := validateChannelValue(contact.ChannelPhone, v)
		assert.Error(t, err, v)
	}
}

func TestValidateChannelValue_Web(t *testing.T) {
	t.Run("scheme inferred when missing", func(t *testing.T) {
		normalized, err := validateChannelValue(contact.ChannelWeb, "www.gov.uk/moorland")
		require.NoError(t, err)
		assert.Equal(t, "https://www.gov.uk/moorland", normalized)
	})

	t.Run("explicit scheme preserved", func(t *testing.T) {
		normalized, err := validateChannelValue(contact.ChannelWeb, "http://www.gov.uk")
		require.NoError(t, err)
		assert.Equal(t, "http://www.gov.uk", normalized)
	})

	t.Run("non-http scheme rejected", func(t *testing.T) {
		_, err := validateChannelValue(contact.ChannelWeb, "ftp://www.gov.uk")
		assert.EqualError(t, err, "Web address ftp://www.gov.uk is invalid")
	})

	t.Run("empty rejected", func(t *testing.T) {
		_, err := validateChannelValue(contact.ChannelWeb, "")
		assert.Error(t, err)
	})
}

func TestValidateRequest_AggregatesSortedMessages(t *testing.T) {
	_, err := validateRequest(ContactDetailsRequest{
		EmailAddress: strPtr("bogus"),
		PhoneNumber:  strPtr("nope"),
		WebAddress:   strPtr("ftp://x.com"),
	})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, contact.ErrCodeValidation, domainErr.Code)
	assert.Equal(t,
		"Email address bogus is invalid, Phone number nope is invalid, Web address ftp://x.com is invalid",
		domainErr.Message)
}

func TestValidateRequest_TrimsWhitespace(t *testing.T) {
	req, err := validateRequest(ContactDetailsRequest{
		EmailAddress: strPtr("  visits@example.gov.uk  "),
	})
	require.NoError(t, err)
	assert.Equal(t, "visits@example.gov.uk", *req.EmailAddress)
}
