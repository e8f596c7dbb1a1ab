package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dataset-cutter/internal/dto"
	"dataset-cutter/internal/response"
	"dataset-cutter/log"
	apperrors "dataset-cutter/pkg/errors"
	"dataset-cutter/pkg/util"
)

// UploadVideo stores an uploaded source video under the videos directory.
func (h *Handler) UploadVideo(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}
	if !util.AllowedVideoExts[filepath.Ext(file.Filename)] && !util.IsListableVideo(file.Filename) {
		response.ErrorResponse(c, apperrors.ErrUnsupportedFormat)
		return
	}

	videosDir, err := resolveVideosDir()
	if err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeUnknown, "Cannot resolve videos directory", err))
		return
	}
	if err = os.MkdirAll(videosDir, 0o755); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeFileWriteError, "Cannot create videos directory", err))
		return
	}

	dest := filepath.Join(videosDir, util.SanitizeFilename(file.Filename))
	if err = c.SaveUploadedFile(file, dest); err != nil {
		log.GetLogger().Error("UploadVideo save failed", zap.String("dest", dest), zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeUploadFailed, "Upload failed", err))
		return
	}

	response.Success(c, dto.UploadResData{Filename: filepath.Base(dest)})
}

// ListVideos returns the listable source videos, sorted by name.
func (h *Handler) ListVideos(c *gin.Context) {
	videosDir, err := resolveVideosDir()
	if err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeUnknown, "Cannot resolve videos directory", err))
		return
	}

	var videos []string
	if entries, err := os.ReadDir(videosDir); err == nil {
		for _, entry := range entries {
			if !entry.IsDir() && util.IsListableVideo(entry.Name()) {
				videos = append(videos, entry.Name())
			}
		}
	}
	sort.Strings(videos)

	response.Success(c, dto.VideosResData{Videos: videos})
}

// GetVideo serves one source video. Kept for compatibility; the player uses
// the /videos static mount.
func (h *Handler) GetVideo(c *gin.Context) {
	videosDir, err := resolveVideosDir()
	if err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeUnknown, "Cannot resolve videos directory", err))
		return
	}

	name := filepath.Base(c.Param("filename"))
	path := filepath.Join(videosDir, name)
	if _, err = os.Stat(path); err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.File(path)
}

func resolveVideosDir() (string, error) {
	dirs, err := appDirsResolver()
	if err != nil {
		return "", err
	}
	return dirs.VideosDir, nil
}
