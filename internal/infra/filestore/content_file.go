// internal/infra/filestore/content_file.go
package filestore

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"promo_broadcast_bot/internal/domain/content"

	"github.com/sirupsen/logrus"
)

type contentDocument struct {
	CaptionText  *string `json:"caption_text"`
	DetailedText *string `json:"detailed_text"`
}

// LoadContent reads the message override file. A missing or malformed file yields the
// built-in texts; each field that is absent or blank falls back to its own default.
func LoadContent(path string, logger *logrus.Entry) content.Message {
	msg := content.Default()
	log := logger.WithField("path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn("Message text file not found, using default text")
		} else {
			log.WithError(err).Error("Could not read message text file, using default text")
		}
		return msg
	}

	var doc contentDocument
	if err := decodeDocument(path, data, &doc); err != nil {
		log.WithError(err).Error("Could not decode message text file, using default text")
		return msg
	}

	if doc.CaptionText != nil && strings.TrimSpace(*doc.CaptionText) != "" {
		msg.Caption = *doc.CaptionText
	} else {
		log.Debug("caption_text not set, using default")
	}
	if doc.DetailedText != nil && strings.TrimSpace(*doc.DetailedText) != "" {
		msg.Detailed = *doc.DetailedText
	} else {
		log.Debug("detailed_text not set, using default")
	}
	return msg
}
