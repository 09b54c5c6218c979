package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"training_portal_backend/internal/model"
	"training_portal_backend/internal/util"
	"training_portal_backend/pkg/logger"

	"go.uber.org/zap"
)

type MediaService struct {
	Storage *StorageService
	Courses *CourseStore
	Probe   util.VideoProber
	TempDir string
}

func NewMediaService(storage *StorageService, courses *CourseStore, tempDir string) *MediaService {
	return &MediaService{
		Storage: storage,
		Courses: courses,
		Probe:   util.GetVideoInfo,
		TempDir: tempDir,
	}
}

// sniff 校验文件内容类型后把读取位置重置到开头
func sniff(src multipart.File, allowed []string) (string, error) {
	mimeType, err := util.ValidateMimeType(src, allowed)
	if err != nil {
		return "", err
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return mimeType, nil
}

// UploadCourseImage 上传课程封面并写回课程
func (s *MediaService) UploadCourseImage(ctx context.Context, courseID uint, file *multipart.FileHeader) (string, error) {
	if !util.HasAllowedExt(file.Filename, util.AllowedImageExtensions) {
		return "", util.ErrInvalidImageExt
	}
	if _, err := s.Courses.GetCourse(courseID); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	mimeType, err := sniff(src, []string{util.MimeImage})
	if err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrInvalidImageExt, err)
	}

	url, err := s.Storage.Upload(ctx, ObjectKey("course-images", file.Filename), src, file.Size, mimeType)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	if err := s.Courses.SetImage(courseID, url); err != nil {
		return "", err
	}
	return url, nil
}

// UploadModuleVideo 上传视频模块的媒体文件，并用 ffprobe 得到的时长（向上取整分钟）更新模块
func (s *MediaService) UploadModuleVideo(ctx context.Context, courseID, moduleID uint, file *multipart.FileHeader) (*model.CourseModule, error) {
	if !util.HasAllowedExt(file.Filename, util.AllowedVideoExtensions) {
		return nil, util.ErrInvalidVideoExt
	}

	course, err := s.Courses.GetCourse(courseID)
	if err != nil {
		return nil, err
	}
	var module *model.CourseModule
	for i := range course.Modules {
		if course.Modules[i].ID == moduleID {
			module = &course.Modules[i]
			break
		}
	}
	if module == nil {
		return nil, util.ErrModuleNotFound
	}
	if module.Type != model.ModuleVideo {
		return nil, util.ErrNotVideoModule
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	mimeType, err := sniff(src, []string{util.MimeVideo})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidVideoExt, err)
	}

	// 先落地到临时文件供 ffprobe 读取
	if err := os.MkdirAll(s.TempDir, 0755); err != nil {
		return nil, err
	}
	tmp, err := os.CreateTemp(s.TempDir, "module-video-*"+filepath.Ext(file.Filename))
	if err != nil {
		return nil, err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	duration := 0
	if info, err := s.Probe(tmpPath); err != nil {
		logger.Log.Warn("probe video failed, keeping module duration", zap.Uint("moduleID", moduleID), zap.Error(err))
	} else {
		duration = info.DurationMinutes()
	}

	url, err := s.Storage.UploadFile(ctx, ObjectKey("module-videos", file.Filename), tmpPath, mimeType)
	if err != nil {
		return nil, fmt.Errorf("upload video: %w", err)
	}
	if err := s.Courses.SetModuleMedia(moduleID, url, duration); err != nil {
		return nil, err
	}

	module.MediaURL = url
	if duration > 0 {
		module.Duration = duration
	}
	return module, nil
}
