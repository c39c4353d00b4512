package upload

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"thenest/internal/pkg/utils"

	"github.com/google/uuid"
)

const MaxFileSize = 10 << 20

var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Service stores product and game images on local disk.
type Service struct {
	baseDir    string
	staticBase string
	now        func() time.Time
}

func NewService(baseDir, staticBase string) *Service {
	return &Service{baseDir: baseDir, staticBase: strings.TrimRight(staticBase, "/"), now: time.Now}
}

// Save writes the file under baseDir/YYYY/MM/DD and returns its public URL.
func (s *Service) Save(fh *multipart.FileHeader) (string, error) {
	if fh.Size == 0 {
		return "", ErrEmptyFile
	}
	if fh.Size > MaxFileSize {
		return "", ErrFileTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	head := make([]byte, 512)
	n, _ := io.ReadFull(src, head)
	mimeType := strings.Split(http.DetectContentType(head[:n]), ";")[0]
	ext, ok := imageTypes[mimeType]
	if !ok {
		return "", ErrInvalidMimeType
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	now := s.now()
	relDir := fmt.Sprintf("%d/%02d/%02d", now.Year(), now.Month(), now.Day())
	absDir := filepath.Join(s.baseDir, filepath.FromSlash(relDir))
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := fmt.Sprintf("%s_%s%s", uuid.NewString(), baseName(fh.Filename), ext)
	absPath := filepath.Join(absDir, name)
	dst, err := os.Create(absPath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	// io.LimitReader guards against a header that under-reports the size.
	written, err := io.Copy(dst, io.LimitReader(src, MaxFileSize+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil || written > MaxFileSize {
		_ = os.Remove(absPath)
		if err == nil {
			return "", ErrFileTooLarge
		}
		return "", fmt.Errorf("write file: %w", err)
	}

	url := s.staticBase + "/" + path.Join(relDir, name)
	log.Printf("admin action: upload path=%s size=%d mime=%s", url, written, mimeType)
	return url, nil
}

func baseName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = utils.Slugify(name)
	if len(name) > 40 {
		name = name[:40]
	}
	if name == "" {
		return "file"
	}
	return name
}
