package services

import (
	"regexp"
	"strings"

	"github.com/ArowuTest/lottery-ticket-backend/internal/apperrors"
	"github.com/ArowuTest/lottery-ticket-backend/internal/models"
)

var (
	mobilePattern  = regexp.MustCompile(`^\d{10}$`)
	aadhaarPattern = regexp.MustCompile(`^\d{12}$`)
)

// ValidMobile reports whether mobile is exactly ten digits.
func ValidMobile(mobile string) bool {
	return mobilePattern.MatchString(mobile)
}

// normalizeBuyer trims the buyer fields in place, lower-cases the email and validates the result.
func normalizeBuyer(buyer *models.BuyerData) error {
	if buyer == nil {
		return apperrors.InvalidField("userData", "User data is required")
	}
	buyer.FullName = strings.TrimSpace(buyer.FullName)
	buyer.Mobile = strings.TrimSpace(buyer.Mobile)
	buyer.Email = strings.ToLower(strings.TrimSpace(buyer.Email))
	buyer.Aadhaar = strings.TrimSpace(buyer.Aadhaar)
	buyer.State = strings.TrimSpace(buyer.State)

	switch {
	case buyer.FullName == "":
		return apperrors.InvalidField("fullName", "Full name is required")
	case !ValidMobile(buyer.Mobile):
		return apperrors.InvalidField("mobile", "Mobile number must be 10 digits")
	case buyer.Aadhaar != "" && !aadhaarPattern.MatchString(buyer.Aadhaar):
		return apperrors.InvalidField("aadhaar", "Aadhaar number must be 12 digits")
	case buyer.State == "":
		return apperrors.InvalidField("state", "State is required")
	case buyer.Age <= 18:
		return apperrors.InvalidField("age", "Buyer must be older than 18")
	}
	return nil
}

// schemeFor resolves a purchasable scheme and checks the requested index against its range.
func schemeFor(schemeID string, index int) (Scheme, error) {
	scheme, ok := LookupScheme(strings.TrimSpace(schemeID))
	if !ok {
		return Scheme{}, apperrors.InvalidField("schemeId", "Unknown scheme")
	}
	if !scheme.ValidIndex(index) {
		return Scheme{}, apperrors.InvalidField("ticketNumber", "Ticket number is out of range for this scheme")
	}
	return scheme, nil
}
