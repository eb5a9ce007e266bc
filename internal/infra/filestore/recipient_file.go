// internal/infra/filestore/recipient_file.go
package filestore

import (
	"context"
	"fmt"
	"os"

	"promo_broadcast_bot/internal/domain/recipient"

	"github.com/sirupsen/logrus"
)

type recipientDocument struct {
	UserIDs []any `json:"user_ids"`
}

// RecipientFile reads recipient IDs from the "user_ids" list of a JSON or YAML file.
type RecipientFile struct {
	path   string
	logger *logrus.Entry
}

func NewRecipientFile(path string, logger *logrus.Entry) *RecipientFile {
	return &RecipientFile{path: path, logger: logger.WithField("source", "file")}
}

// Resolve returns the valid IDs in file order. Invalid entries are logged and skipped.
func (f *RecipientFile) Resolve(_ context.Context) ([]recipient.ID, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read recipient file %s: %w", f.path, err)
	}

	var doc recipientDocument
	if err := decodeDocument(f.path, data, &doc); err != nil {
		return nil, fmt.Errorf("parse recipient file %s: %w", f.path, err)
	}

	ids := recipient.CoerceAll(doc.UserIDs, f.logger)
	f.logger.WithFields(logrus.Fields{
		"path":    f.path,
		"entries": len(doc.UserIDs),
		"valid":   len(ids),
	}).Info("Recipient IDs loaded from file")
	return ids, nil
}
