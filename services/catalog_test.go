package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edube-platform/edube_api/dto"
	"github.com/edube-platform/edube_api/shared"
)

func TestValidateLessonContent(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.CreateLessonRequest
		wantErr bool
	}{
		{
			name: "valid video",
			req: dto.CreateLessonRequest{
				ContentType:     shared.ContentTypeVideo,
				ContentURL:      "https://cdn.edube.io/videos/intro.mp4",
				DurationSeconds: 300,
			},
		},
		{
			name: "video without url",
			req: dto.CreateLessonRequest{
				ContentType:     shared.ContentTypeVideo,
				DurationSeconds: 300,
			},
			wantErr: true,
		},
		{
			name: "video without duration",
			req: dto.CreateLessonRequest{
				ContentType: shared.ContentTypeVideo,
				ContentURL:  "https://cdn.edube.io/videos/intro.mp4",
			},
			wantErr: true,
		},
		{
			name: "valid document",
			req: dto.CreateLessonRequest{
				ContentType: shared.ContentTypeDocument,
				ContentURL:  "https://cdn.edube.io/documents/syllabus.pdf",
			},
		},
		{
			name: "document without url",
			req: dto.CreateLessonRequest{
				ContentType: shared.ContentTypeDocument,
			},
			wantErr: true,
		},
		{
			name: "valid reading",
			req: dto.CreateLessonRequest{
				ContentType: shared.ContentTypeReading,
				ContentText: "Lesson body",
			},
		},
		{
			name: "reading without text",
			req: dto.CreateLessonRequest{
				ContentType: shared.ContentTypeReading,
			},
			wantErr: true,
		},
		{
			name:    "unknown content type",
			req:     dto.CreateLessonRequest{ContentType: "quiz"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateLessonContent(tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
