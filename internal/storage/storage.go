// Package storage persists uploaded profile images.
package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/xid"
)

// allowedExtensions maps accepted extensions to themselves, everything else is stored without one.
var allowedExtensions = map[string]string{
	".jpg":  ".jpg",
	".jpeg": ".jpeg",
	".png":  ".png",
}

// GenerateFilename returns a collision free name "<unix millis>_<xid><ext>" for an uploaded file.
// Only the extension of the original name is kept.
func GenerateFilename(original string) string {
	ext := allowedExtensions[strings.ToLower(filepath.Ext(original))]
	return fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), xid.New().String(), ext)
}
