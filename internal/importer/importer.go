// Package importer reads input documents into plain text.
//
// Word-processing documents (.docx) contribute the text of their body
// paragraphs. Anything else must be text: UTF-8 is tried first, UTF-16 is
// accepted when it carries a byte order mark, and Windows-1256 is the
// fallback for legacy Arabic files.
package importer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	apperrors "github.com/gcbaptista/go-style-checker/internal/errors"
)

const (
	docxMIME  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	zipMIME   = "application/zip"
	plainMIME = "text/plain"
)

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

// Import converts the content of a document called name into text.
// Failures are reported as TextImportError with name as the source.
func Import(name string, data []byte) (string, error) {
	text, err := convert(name, data)
	if err != nil {
		return "", apperrors.NewTextImportError(name, err)
	}
	return text, nil
}

// ImportFile reads and converts the document at path.
func ImportFile(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is chosen by the caller
	if err != nil {
		return "", apperrors.NewTextImportError(path, err)
	}
	text, err := convert(path, data)
	if err != nil {
		return "", apperrors.NewTextImportError(path, err)
	}
	return text, nil
}

// Kind describes how a document will be read.
type Kind string

const (
	KindText Kind = "text"
	KindDOCX Kind = "docx"
)

// Detect classifies a document from its name and content. It returns an
// error for content that is neither text nor a word-processing document.
func Detect(name string, data []byte) (Kind, error) {
	if len(data) == 0 || bytes.HasPrefix(data, utf16LEBOM) || bytes.HasPrefix(data, utf16BEBOM) {
		return KindText, nil
	}
	if strings.EqualFold(filepath.Ext(name), ".docx") {
		return KindDOCX, nil
	}

	mime := mimetype.Detect(data)
	if mime.Is(docxMIME) {
		return KindDOCX, nil
	}
	if mime.Is(zipMIME) && hasDocumentPart(data) {
		return KindDOCX, nil
	}
	for m := mime; m != nil; m = m.Parent() {
		if m.Is(plainMIME) {
			return KindText, nil
		}
	}
	return "", fmt.Errorf("unsupported document type %s", mime.String())
}

func convert(name string, data []byte) (string, error) {
	kind, err := Detect(name, data)
	if err != nil {
		return "", err
	}
	if kind == KindDOCX {
		return extractDOCX(data)
	}
	return DecodeText(data)
}

// DecodeText decodes text bytes: UTF-16 with a byte order mark, then UTF-8
// (a leading BOM is dropped), then Windows-1256.
func DecodeText(data []byte) (string, error) {
	if bytes.HasPrefix(data, utf16LEBOM) || bytes.HasPrefix(data, utf16BEBOM) {
		decoded, err := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("invalid UTF-16 text: %w", err)
		}
		return string(decoded), nil
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, err := charmap.Windows1256.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("text is neither UTF-8 nor Windows-1256: %w", err)
	}
	return string(decoded), nil
}
