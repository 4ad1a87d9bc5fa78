// Package upload 將商品圖片寫到本機目錄，只回傳產生的檔名
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"campus-market/internal/api"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	// PlaceholderPath 商品沒有圖片時前端使用的預設圖
	PlaceholderPath = "/img/placeholder.svg"
	// URLPrefix 上傳目錄對外的路徑
	URLPrefix = "/uploads/"
)

var allowedExt = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

var allowedMIME = []string{"image/jpeg", "image/png", "image/gif"}

const msgOnlyImages = "Only image files are allowed!"

// AllowedExtension 判斷副檔名是否為允許的圖片格式（不分大小寫）
func AllowedExtension(name string) bool {
	return allowedExt[strings.ToLower(filepath.Ext(name))]
}

type Store struct {
	Dir      string
	MaxBytes int64

	newName func(ext string) string
}

func NewStore(dir string, maxBytes int64) *Store {
	return &Store{
		Dir:      dir,
		MaxBytes: maxBytes,
		newName:  func(ext string) string { return uuid.NewString() + ext },
	}
}

// Save 檢查大小與格式後寫入檔案，回傳 <uuid><ext>
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	if s.MaxBytes > 0 && fh.Size > s.MaxBytes {
		return "", api.NewError(api.KindPayloadTooLarge,
			fmt.Sprintf("File size exceeds %dMB limit", s.MaxBytes>>20))
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExt[ext] {
		return "", api.NewError(api.KindUnsupportedMediaType, msgOnlyImages)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("upload.Save: %w", err)
	}
	defer src.Close()

	mt, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("upload.Save: %w", err)
	}
	if !mimetype.EqualsAny(mt.String(), allowedMIME...) {
		return "", api.NewError(api.KindUnsupportedMediaType, msgOnlyImages)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("upload.Save: %w", err)
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("upload.Save: %w", err)
	}
	name := s.newName(ext)
	dst, err := os.OpenFile(filepath.Join(s.Dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("upload.Save: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("upload.Save: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("upload.Save: %w", err)
	}
	return name, nil
}

// Remove 刪除先前儲存的檔案，名稱不可含路徑
func (s *Store) Remove(name string) error {
	if name == "" || name != filepath.Base(name) {
		return fmt.Errorf("upload.Remove: invalid name %q", name)
	}
	err := os.Remove(filepath.Join(s.Dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// URL 回傳圖片對外路徑，沒有圖片時回傳預設圖
func URL(name *string) string {
	if name == nil || *name == "" {
		return PlaceholderPath
	}
	return URLPrefix + *name
}
