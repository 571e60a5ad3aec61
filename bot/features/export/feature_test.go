package export

import (
	"testing"

	"thumbnailbot/domain/interfaces"

	"github.com/stretchr/testify/assert"
)

func TestExportMessage(t *testing.T) {
	tests := []struct {
		name string
		file *interfaces.ExportFile
		want string
	}{
		{
			name: "single row",
			file: &interfaces.ExportFile{Filename: "thumbnails_March_2026.csv", Rows: 1},
			want: "📄 Exported 1 thumbnail to `thumbnails_March_2026.csv`",
		},
		{
			name: "many rows",
			file: &interfaces.ExportFile{Filename: "thumbnails_April_2026.csv", Rows: 12},
			want: "📄 Exported 12 thumbnails to `thumbnails_April_2026.csv`",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExportMessage(tt.file))
		})
	}
}
