// Package format maps uploaded files to a file format tag.
package format

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/hyperjump/briefpipe/internal/models"
)

// byExtension maps lowercase file extensions to formats. Extension lookup is
// authoritative; byte sniffing is only a fallback for unknown extensions.
var byExtension = map[string]models.Format{
	".pdf":  models.FormatPDF,
	".docx": models.FormatDOCX,
	".doc":  models.FormatDoc,
	".xlsx": models.FormatSpreadsheet,
	".xls":  models.FormatSpreadsheet,
	".csv":  models.FormatSpreadsheet,
	".txt":  models.FormatText,
	".md":   models.FormatText,
	".rtf":  models.FormatRTF,
	".png":  models.FormatImage,
	".jpg":  models.FormatImage,
	".jpeg": models.FormatImage,
	".tif":  models.FormatImage,
	".tiff": models.FormatImage,
	".bmp":  models.FormatImage,
	".webp": models.FormatImage,
}

// byMIME maps sniffed MIME types to formats for files whose extension is
// missing or unknown.
var byMIME = map[string]models.Format{
	"application/pdf":    models.FormatPDF,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": models.FormatDOCX,
	"application/msword": models.FormatDoc,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       models.FormatSpreadsheet,
	"application/vnd.ms-excel": models.FormatSpreadsheet,
	"text/csv":                 models.FormatSpreadsheet,
	"text/plain":               models.FormatText,
	"text/rtf":                 models.FormatRTF,
	"application/rtf":          models.FormatRTF,
	"image/png":                models.FormatImage,
	"image/jpeg":               models.FormatImage,
	"image/tiff":               models.FormatImage,
	"image/bmp":                models.FormatImage,
	"image/webp":               models.FormatImage,
}

// Detect returns the format for a file: extension lookup first, MIME sniff of
// the content as fallback, FormatUnsupported otherwise. Pure; never errors.
func Detect(name string, content []byte) models.Format {
	ext := strings.ToLower(filepath.Ext(name))
	if f, ok := byExtension[ext]; ok {
		return f
	}
	if len(content) > 0 {
		mt := mimetype.Detect(content)
		for m := mt; m != nil; m = m.Parent() {
			if f, ok := byMIME[m.String()]; ok {
				return f
			}
		}
	}
	return models.FormatUnsupported
}
