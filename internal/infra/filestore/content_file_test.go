package filestore

import (
	"path/filepath"
	"testing"

	"promo_broadcast_bot/internal/domain/content"
	"promo_broadcast_bot/internal/infra/logger"

	"github.com/stretchr/testify/assert"
)

func TestLoadContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		file string
		body string
		want content.Message
	}{
		{
			name: "empty file",
			file: "message_text.json",
			body: "",
			want: content.Default(),
		},
		{
			name: "malformed file",
			file: "message_text.json",
			body: `{"caption_text": `,
			want: content.Default(),
		},
		{
			name: "not an object",
			file: "message_text.json",
			body: `["a", "b"]`,
			want: content.Default(),
		},
		{
			name: "caption only",
			file: "message_text.json",
			body: `{"caption_text": "<b>Hi</b>"}`,
			want: content.Message{Caption: "<b>Hi</b>", Detailed: content.DefaultDetailed},
		},
		{
			name: "detailed only",
			file: "message_text.json",
			body: `{"detailed_text": "More"}`,
			want: content.Message{Caption: content.DefaultCaption, Detailed: "More"},
		},
		{
			name: "both fields",
			file: "message_text.json",
			body: `{"caption_text": "A", "detailed_text": "B"}`,
			want: content.Message{Caption: "A", Detailed: "B"},
		},
		{
			name: "blank field falls back",
			file: "message_text.json",
			body: `{"caption_text": "  ", "detailed_text": "B"}`,
			want: content.Message{Caption: content.DefaultCaption, Detailed: "B"},
		},
		{
			name: "yaml",
			file: "message_text.yml",
			body: "caption_text: |\n  <b>Sale</b>\n",
			want: content.Message{Caption: "<b>Sale</b>\n", Detailed: content.DefaultDetailed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, tt.file, tt.body)
			assert.Equal(t, tt.want, LoadContent(path, logger.Discard()))
		})
	}
}

func TestLoadContent_MissingFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "message_text.json")
	assert.Equal(t, content.Default(), LoadContent(path, logger.Discard()))
}
