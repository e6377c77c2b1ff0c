package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	appErr "github.com/hirescope/hirescope/internal/pkg/errors"
)

func TestFromUpload_PlainText(t *testing.T) {
	text, err := FromUpload("resume.txt", []byte("Skills: Go, Python\n"))
	require.NoError(t, err)
	require.Equal(t, "Skills: Go, Python", strings.TrimSpace(text))
}

func TestFromUpload_StripsBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Skills: Go")...)
	text, err := FromUpload("resume.txt", data)
	require.NoError(t, err)
	require.Equal(t, "Skills: Go", strings.TrimSpace(text))
}

func TestFromUpload_Markdown(t *testing.T) {
	md := "# Jane Doe\n\n## Skills\n\n- Go\n- **Python**\n"
	text, err := FromUpload("resume.md", []byte(md))
	require.NoError(t, err)
	require.Contains(t, text, "Jane Doe")
	require.Contains(t, text, "Skills")
	require.Contains(t, text, "Python")
	require.NotContains(t, text, "#")
	require.NotContains(t, text, "**")
}

func TestFromUpload_UnsupportedExtension(t *testing.T) {
	_, err := FromUpload("resume.docx", []byte("whatever"))
	require.ErrorIs(t, err, appErr.ErrUnsupportedFormat)
}

func TestFromUpload_BinaryMasqueradingAsText(t *testing.T) {
	_, err := FromUpload("resume.txt", []byte{0x00, 0x01, 0x02, 0xFF})
	require.ErrorIs(t, err, appErr.ErrUnsupportedFormat)
}

func TestFromUpload_EmptyDocument(t *testing.T) {
	_, err := FromUpload("resume.txt", []byte("   \n\t  "))
	require.ErrorIs(t, err, appErr.ErrEmptyDocument)
}

func TestFromUpload_MalformedPDF(t *testing.T) {
	_, err := FromUpload("resume.pdf", []byte("not a pdf at all"))
	require.ErrorIs(t, err, appErr.ErrUnsupportedFormat)
}
