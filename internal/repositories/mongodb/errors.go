package mongodb

import (
	"errors"
	"strings"

	"github.com/ArowuTest/lottery-ticket-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
)

// indexFields maps unique index names to the logical field reported to callers.
var indexFields = map[string]string{
	userMobileIndex:         "mobile",
	userEmailIndex:          "email",
	userAadhaarIndex:        "aadhaar",
	ticketSchemeNumberIndex: "ticketNumber",
	winnerSchemeNumberIndex: "ticketNumber",
	adminUsernameIndex:      "username",
}

// translateError maps driver errors onto the repository error contract.
func translateError(collection string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repositories.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return &repositories.DuplicateKeyError{
			Collection: collection,
			Field:      duplicateField(err),
			Err:        err,
		}
	}
	return err
}

// duplicateField finds the violated index in the server message ("... index: mobile_unique dup key ...").
func duplicateField(err error) string {
	msg := err.Error()
	for index, field := range indexFields {
		if strings.Contains(msg, "index: "+index) {
			return field
		}
	}
	return "field"
}
