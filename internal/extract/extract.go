package extract

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/dslipak/pdf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	appErr "github.com/hirescope/hirescope/internal/pkg/errors"
)

// FromUpload decodes raw uploaded bytes into plain text. Supported formats
// are PDF, plain text and Markdown, selected by file extension. A decodable
// file with no usable text is EmptyDocument, anything else UnsupportedFormat.
func FromUpload(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	var (
		out string
		err error
	)
	switch ext {
	case ".pdf":
		out, err = fromPDF(data)
	case ".txt":
		out, err = fromPlainText(data)
	case ".md", ".markdown":
		out, err = fromMarkdown(data)
	default:
		return "", appErr.Kind(appErr.ErrUnsupportedFormat,
			fmt.Errorf("unsupported file extension %q, use pdf, txt or md", ext))
	}
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", appErr.Kind(appErr.ErrEmptyDocument,
			fmt.Errorf("%s decoded to no usable text", filename))
	}
	return out, nil
}

func fromPDF(data []byte) (out string, err error) {
	// The pdf library panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			out = ""
			err = appErr.Kind(appErr.ErrUnsupportedFormat, fmt.Errorf("malformed pdf: %v", r))
		}
	}()
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", appErr.Kind(appErr.ErrUnsupportedFormat, fmt.Errorf("parse pdf: %w", err))
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", appErr.Kind(appErr.ErrUnsupportedFormat, fmt.Errorf("extract pdf text: %w", err))
	}
	raw, err := io.ReadAll(plain)
	if err != nil {
		return "", appErr.Kind(appErr.ErrUnsupportedFormat, fmt.Errorf("read pdf text: %w", err))
	}
	return string(raw), nil
}

func fromPlainText(data []byte) (string, error) {
	if looksBinary(data) {
		return "", appErr.Kind(appErr.ErrUnsupportedFormat,
			fmt.Errorf("file does not contain plain text"))
	}
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(data) {
		return string(data), nil
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}

// fromMarkdown walks the goldmark AST and keeps only the text nodes, so
// formatting syntax never leaks into chunks or scoring.
func fromMarkdown(data []byte) (string, error) {
	if looksBinary(data) {
		return "", appErr.Kind(appErr.ErrUnsupportedFormat,
			fmt.Errorf("file does not contain markdown text"))
	}
	md := goldmark.New()
	reader := text.NewReader(data)
	doc := md.Parser().Parse(reader)

	var lines []string
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		if txt := extractText(node, data); txt != "" {
			lines = append(lines, txt)
		}
	}
	return strings.Join(lines, "\n\n"), nil
}

func extractText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if node.Kind() == ast.KindText {
			if sb.Len() > 0 {
				sb.WriteString(" ")
			}
			sb.Write(node.(*ast.Text).Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}

func looksBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if bytes.ContainsRune(data, 0) {
		return true
	}
	contentType := http.DetectContentType(data)
	return !strings.HasPrefix(contentType, "text/")
}
