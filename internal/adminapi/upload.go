package adminapi

import (
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/modderpro/site/internal/app"
	"github.com/modderpro/site/internal/webserver"
)

// MaxUploadSize caps logo uploads at 2 MiB.
const MaxUploadSize = 2 << 20

func registerUploadRoutes() {
	webserver.ApiPOST("/admin/upload-logo", uploadLogo)
}

// uploadLogo accepts a single image under the "logo" field, stores it under
// the upload directory with a timestamp name and records the new logo URL.
// Rejected uploads leave nothing on disk.
func uploadLogo(c echo.Context) error {
	file, err := c.FormFile("logo")
	if err != nil {
		return fail(c, http.StatusBadRequest, "NO_FILE", "No file uploaded", nil)
	}

	if file.Size > MaxUploadSize {
		return fail(c, http.StatusBadRequest, "FILE_TOO_LARGE", "Logo must be 2MB or smaller", nil)
	}
	ctype := file.Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(ctype, "image/") {
		return fail(c, http.StatusBadRequest, "INVALID_TYPE", "Logo must be an image", nil)
	}

	uploadDir := webserver.GetApp(c).Config().Web.UploadDir
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return fail(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to store logo", err.Error())
	}

	src, err := file.Open()
	if err != nil {
		return fail(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to read upload", err.Error())
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := time.Now().Format("20060102150405.000")
	name = strings.ReplaceAll(name, ".", "") + ext

	// Write to a temp name first so an oversized or interrupted body never
	// leaves a partial file at the final path.
	finalPath := filepath.Join(uploadDir, name)
	tmp, err := os.CreateTemp(uploadDir, ".upload-*")
	if err != nil {
		return fail(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to store logo", err.Error())
	}
	tmpPath := tmp.Name()

	written, err := io.Copy(tmp, io.LimitReader(src, MaxUploadSize+1))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return fail(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to store logo", err.Error())
	}
	if written > MaxUploadSize {
		_ = os.Remove(tmpPath)
		return fail(c, http.StatusBadRequest, "FILE_TOO_LARGE", "Logo must be 2MB or smaller", nil)
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return fail(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to store logo", err.Error())
	}

	logoUrl := path.Join("/uploads", name)
	if err := webserver.GetApp(c).SaveSetting(app.SettingLogoUrl, logoUrl); err != nil {
		zap.L().Warn("failed to persist logo setting", zap.Error(err))
	}
	zap.L().Info("logo uploaded", zap.String("path", logoUrl), zap.Int64("size", written))

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"logoUrl": logoUrl,
	})
}
