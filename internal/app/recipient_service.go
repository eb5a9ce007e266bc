package app

import (
	"context"
	"fmt"

	"promo_broadcast_bot/internal/domain/recipient"
	"promo_broadcast_bot/internal/infra/config"
	idb "promo_broadcast_bot/internal/infra/database"
	"promo_broadcast_bot/internal/infra/filestore"

	"github.com/sirupsen/logrus"
)

// NewRecipientSource selects the recipient provider for a run configuration.
func NewRecipientSource(rc config.RunConfig, logger *logrus.Entry) (recipient.Source, error) {
	if rc.Mode == config.ModeTest {
		return recipient.Static{rc.TestRecipient}, nil
	}
	switch rc.Source {
	case config.SourceFile:
		return filestore.NewRecipientFile(rc.RecipientFilePath, logger), nil
	case config.SourceDatabase:
		return idb.NewMongoRecipientSource(rc.MongoURI, rc.MongoDatabase, rc.CollectionName, rc.IDField, logger), nil
	case config.SourcePostgres:
		return idb.NewPostgresRecipientSource(rc.DatabaseURL, rc.CollectionName, rc.IDField, logger), nil
	default:
		return nil, fmt.Errorf("unknown recipient source %q", rc.Source)
	}
}

// ResolveRecipients reads the recipient list. A source failure is logged and treated as
// an empty list; an empty list is reported as recipient.ErrNoRecipients.
func ResolveRecipients(ctx context.Context, src recipient.Source, rc config.RunConfig, logger *logrus.Entry) ([]recipient.ID, error) {
	if rc.SourceTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rc.SourceTimeout)
		defer cancel()
	}

	ids, err := src.Resolve(ctx)
	if err != nil {
		logger.WithError(err).WithField("source", rc.Source).Error("Could not resolve recipient IDs")
		ids = nil
	}
	if len(ids) == 0 {
		return nil, recipient.ErrNoRecipients
	}
	if rc.Mode == config.ModeTest {
		logger.Infof("Test mode: the message will be sent only to %d", ids[0])
	}
	return ids, nil
}
