package constants

import "strings"

// FileClass buckets an extension into the extraction strategy it gets.
type FileClass string

const (
	// ClassText is read directly as UTF-8.
	ClassText FileClass = "TEXT"
	// ClassRich goes through the rich-conversion cascade.
	ClassRich FileClass = "RICH"
	// ClassImage is never text-extracted; it is routed to the vision pipeline.
	ClassImage FileClass = "IMAGE"
	// ClassBinary is anything else: best-effort UTF-8 read.
	ClassBinary FileClass = "BINARY"
)

// FileClasses holds the allowed values for the format field in ExtractJob.
var FileClasses = []string{string(ClassText), string(ClassRich), string(ClassImage), string(ClassBinary)}

var textExts = map[string]struct{}{
	"txt": {}, "md": {}, "json": {}, "csv": {}, "log": {},
}

var richExts = map[string]struct{}{
	"pdf": {}, "docx": {}, "xlsx": {}, "pptx": {},
	"html": {}, "htm": {}, "eml": {}, "msg": {},
	"rtf": {}, "odt": {}, "ods": {}, "odp": {},
}

var imageExts = map[string]struct{}{
	"png": {}, "jpg": {}, "jpeg": {}, "gif": {}, "webp": {},
	"bmp": {}, "svg": {}, "tiff": {}, "tif": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// ClassOfExt maps a file extension to its FileClass.
// Unknown extensions fall through to ClassBinary.
func ClassOfExt(ext string) FileClass {
	ext = NormalizeExt(ext)
	if _, ok := textExts[ext]; ok {
		return ClassText
	}
	if _, ok := richExts[ext]; ok {
		return ClassRich
	}
	if _, ok := imageExts[ext]; ok {
		return ClassImage
	}
	return ClassBinary
}

// IsImageExt reports whether ext belongs to the vision-routed image set.
func IsImageExt(ext string) bool {
	_, ok := imageExts[NormalizeExt(ext)]
	return ok
}

// IsSupportedExt reports whether ext has a dedicated extraction strategy
// (text, rich or image). Binary passthrough is excluded from ingest discovery.
func IsSupportedExt(ext string) bool {
	return ClassOfExt(ext) != ClassBinary
}
