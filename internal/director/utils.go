package director

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// GenerateDocumentPath returns a timestamped file name for a path document
// inside dir. Spaces in the path name become underscores.
func GenerateDocumentPath(dir, name, ext string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	cleanName := strings.ReplaceAll(name, " ", "_")
	return filepath.Join(dir, fmt.Sprintf("%s_%s%s", cleanName, timestamp, ext))
}
