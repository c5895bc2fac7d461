// services/media.go
package services

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/edube-platform/edube_api/dto"
	"github.com/edube-platform/edube_api/model"
	"github.com/edube-platform/edube_api/shared"
)

// MediaService handles mentor uploads for lesson content. Files land in
// MinIO, a MediaAsset row tracks them, and the lesson's content URL is
// pointed at the stored object.
type MediaService struct {
	context.DefaultService
	sqlSvc   *PostgresService
	minioSvc *MinIOService
}

const MEDIA_SVC = "media_svc"

func (svc MediaService) Id() string {
	return MEDIA_SVC
}

func (svc *MediaService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *MediaService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.minioSvc = svc.Service(MINIO_SVC).(*MinIOService)
	return nil
}

// ==================== MEDIA UPLOAD METHODS ====================

func (svc *MediaService) UploadLessonVideo(userID, role, lessonID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error) {
	if !svc.isValidVideoFile(file.Filename) {
		return nil, shared.NewBadRequestError(nil, "Invalid video file format. Supported: MP4, MOV, WEBM")
	}

	// 500MB cap for lesson videos
	if file.Size > 500*1024*1024 {
		return nil, shared.NewBadRequestError(nil, "Video file too large. Maximum size: 500MB")
	}

	return svc.uploadFile(userID, role, lessonID, shared.ContentTypeVideo, file)
}

func (svc *MediaService) UploadLessonDocument(userID, role, lessonID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error) {
	if !svc.isValidDocumentFile(file.Filename) {
		return nil, shared.NewBadRequestError(nil, "Invalid document file format. Supported: PDF, EPUB")
	}

	if file.Size > 50*1024*1024 {
		return nil, shared.NewBadRequestError(nil, "Document file too large. Maximum size: 50MB")
	}

	return svc.uploadFile(userID, role, lessonID, shared.ContentTypeDocument, file)
}

func (svc *MediaService) uploadFile(userID, role, lessonID, fileType string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error) {
	lesson, err := svc.sqlSvc.GetLesson(lessonID)
	if err != nil {
		return nil, err
	}

	section, err := svc.sqlSvc.GetSection(lesson.SectionID)
	if err != nil {
		return nil, err
	}

	course, err := svc.sqlSvc.GetCourse(section.CourseID)
	if err != nil {
		return nil, err
	}

	if role != shared.RoleAdmin && course.MentorID != userID {
		return nil, shared.NewForbiddenError(nil, "Only the course mentor may upload lesson media")
	}

	ext := filepath.Ext(file.Filename)
	subDir := "documents"
	if fileType == shared.ContentTypeVideo {
		subDir = "videos"
	}
	objectName := fmt.Sprintf("%s/%s_%d%s", subDir, lessonID, time.Now().Unix(), ext)

	src, err := file.Open()
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to open uploaded file")
	}
	defer src.Close()

	uploadInfo, err := svc.minioSvc.UploadFile(objectName, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to upload file to storage")
	}

	id, _ := uuid.NewV7()
	asset := &model.MediaAsset{
		ID:          id.String(),
		LessonID:    lesson.ID,
		FileType:    fileType,
		ObjectName:  objectName,
		ContentType: file.Header.Get("Content-Type"),
		Size:        file.Size,
	}

	if err := svc.sqlSvc.CreateMediaAsset(asset); err != nil {
		// Clean up the orphaned object if the record fails
		svc.minioSvc.DeleteFile(objectName)
		return nil, err
	}

	lesson.ContentURL = objectName
	if err := svc.sqlSvc.UpdateLesson(lesson); err != nil {
		log.Printf("Failed to set lesson content URL: %v", err)
	}

	log.Printf("Successfully uploaded %s to MinIO: %s", file.Filename, uploadInfo.Key)

	url, err := svc.minioSvc.GetFileURL(objectName, 24*time.Hour)
	if err != nil {
		log.Printf("Failed to generate presigned URL: %v", err)
	}

	return &dto.MediaUploadResponse{
		AssetID:     asset.ID,
		LessonID:    asset.LessonID,
		FileType:    asset.FileType,
		URL:         url,
		ContentType: asset.ContentType,
		Size:        asset.Size,
		UploadedAt:  asset.CreatedAt,
	}, nil
}

// ==================== MEDIA RETRIEVAL METHODS ====================

func (svc *MediaService) GetLessonMedia(lessonID string) (*dto.LessonMediaResponse, error) {
	if _, err := svc.sqlSvc.GetLesson(lessonID); err != nil {
		return nil, err
	}

	assets, err := svc.sqlSvc.GetMediaAssetsByLesson(lessonID)
	if err != nil {
		return nil, err
	}

	response := &dto.LessonMediaResponse{
		LessonID: lessonID,
		Assets:   make([]dto.MediaUploadResponse, 0, len(assets)),
	}

	for _, asset := range assets {
		url, err := svc.minioSvc.GetFileURL(asset.ObjectName, 24*time.Hour)
		if err != nil {
			log.Printf("Failed to generate presigned URL for %s: %v", asset.ObjectName, err)
			continue
		}
		response.Assets = append(response.Assets, dto.MediaUploadResponse{
			AssetID:     asset.ID,
			LessonID:    asset.LessonID,
			FileType:    asset.FileType,
			URL:         url,
			ContentType: asset.ContentType,
			Size:        asset.Size,
			UploadedAt:  asset.CreatedAt,
		})
	}

	return response, nil
}

// ==================== FILE VALIDATION METHODS ====================

func (svc *MediaService) isValidVideoFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".mp4" || ext == ".mov" || ext == ".webm"
}

func (svc *MediaService) isValidDocumentFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".pdf" || ext == ".epub"
}
