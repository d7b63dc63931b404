package viewer

import (
	"context"
	"testing"

	"capacita/internal/testdb"
	"capacita/models"
	"capacita/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = "https://x.supabase.co/storage/v1/object/public/capacitaciones-archivos/"

func TestPreviewURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{base + "documentos/a.PDF", base + "documentos/a.PDF"},
		{base + "documentos/a.jpeg?t=1", base + "documentos/a.jpeg?t=1"},
		{"https://x/b/a.docx", "https://view.officeapps.live.com/op/embed.aspx?src=https%3A%2F%2Fx%2Fb%2Fa.docx"},
		{"https://x/b/a.pptx", "https://view.officeapps.live.com/op/embed.aspx?src=https%3A%2F%2Fx%2Fb%2Fa.pptx"},
		{"https://x/b/a.zip", "https://docs.google.com/gview?url=https%3A%2F%2Fx%2Fb%2Fa.zip&embedded=true"},
		{"https://x/b/noext", "https://docs.google.com/gview?url=https%3A%2F%2Fx%2Fb%2Fnoext&embedded=true"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, PreviewURL(tt.url))
		})
	}
}

func TestDownloadURL(t *testing.T) {
	tests := []struct {
		name, url, file, want string
	}{
		{"appends extension", "https://x/b/documentos/1.pdf", "Manual del empleado", "https://x/b/documentos/1.pdf?download=Manual%20del%20empleado.pdf"},
		{"keeps extension", "https://x/b/documentos/1.pdf", "Manual.PDF", "https://x/b/documentos/1.pdf?download=Manual.PDF"},
		{"existing query", "https://x/b/documentos/1.xlsx?t=2", "Costos", "https://x/b/documentos/1.xlsx?t=2&download=Costos.xlsx"},
		{"sanitized", "https://x/b/documentos/1.txt", "a/b:c", "https://x/b/documentos/1.txt?download=a_b_c.txt"},
		{"no extension", "https://x/b/documentos/LICENSE", "Licencia", "https://x/b/documentos/LICENSE?download=Licencia"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DownloadURL(tt.url, tt.file))
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "archivo", SanitizeFilename("   "))
	assert.Equal(t, "archivo", SanitizeFilename(".."))
	assert.Equal(t, "Informe_final", SanitizeFilename(`Informe"final`))
	assert.Equal(t, "Video_2_Seguridad_en_planta", VideoDownloadName(" Seguridad en  planta ", 1))
}

func TestLoadNormalizesLegacyDocuments(t *testing.T) {
	db := testdb.Open(t)
	course := models.Course{
		Title:     "Inducción",
		VideoURLs: []string{base + "videos/1.mp4", base + "videos/2.mp4"},
		PDFURLs:   []string{base + "documentos/a.pdf", base + "documentos/b.docx"},
	}
	require.NoError(t, db.Create(&course).Error)

	page, err := NewService(db).Load(context.Background(), course.ID)

	require.NoError(t, err)
	require.Len(t, page.Documents, 2)
	assert.Equal(t, "Documento adjunto 1", page.Documents[0].Name)
	assert.Equal(t, "Documento adjunto 2", page.Documents[1].Name)
	assert.Equal(t, base+"documentos/a.pdf", page.Documents[0].PreviewURL)
	assert.Equal(t, base+"documentos/a.pdf?download=Documento%20adjunto%201.pdf", page.Documents[0].DownloadURL)
	assert.Contains(t, page.Documents[1].PreviewURL, "view.officeapps.live.com")
	assert.Equal(t, 0, page.ActiveDocument)
	assert.Equal(t, 0, page.ActiveVideo)
	assert.Equal(t, base+"videos/2.mp4?download=Video_2_Inducci%C3%B3n.mp4", page.Videos[1].DownloadURL)
}

func TestNewPageWithoutAttachments(t *testing.T) {
	page := NewPage(&models.Course{Title: "Vacío"})

	assert.Empty(t, page.Documents)
	assert.Empty(t, page.Videos)
	assert.Equal(t, -1, page.ActiveDocument)
	assert.Equal(t, -1, page.ActiveVideo)
}

func TestLoadUnknownCourse(t *testing.T) {
	_, err := NewService(testdb.Open(t)).Load(context.Background(), uuid.New())
	assert.ErrorIs(t, err, services.ErrNotFound)
}
