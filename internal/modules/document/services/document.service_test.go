package services

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cetime-core/internal/modules/document/dto"
)

func TestUpload_MissingMetadata(t *testing.T) {
	service := &DocumentService{}

	var docErr *dto.DocError

	_, err := service.Upload(context.Background(), &multipart.FileHeader{}, dto.UploadMeta{PrestationID: 1})
	require.ErrorAs(t, err, &docErr)
	assert.Equal(t, "MISSING_REQUIRED_FIELDS", docErr.Code)

	_, err = service.Upload(context.Background(), &multipart.FileHeader{}, dto.UploadMeta{Type: "rapport"})
	require.ErrorAs(t, err, &docErr)
	assert.Equal(t, "MISSING_REQUIRED_FIELDS", docErr.Code)
}

func TestUpload_NoFile(t *testing.T) {
	service := &DocumentService{}

	var docErr *dto.DocError
	_, err := service.Upload(context.Background(), nil, dto.UploadMeta{Type: "rapport", PrestationID: 1})
	require.ErrorAs(t, err, &docErr)
	assert.Equal(t, "NO_FILE", docErr.Code)
}

func TestUploadBulk_Validation(t *testing.T) {
	service := &DocumentService{}

	var docErr *dto.DocError

	_, err := service.UploadBulk(context.Background(), []*multipart.FileHeader{{}}, dto.UploadMeta{})
	require.ErrorAs(t, err, &docErr)
	assert.Equal(t, "MISSING_REQUIRED_FIELDS", docErr.Code)

	_, err = service.UploadBulk(context.Background(), nil, dto.UploadMeta{PrestationID: 1})
	require.ErrorAs(t, err, &docErr)
	assert.Equal(t, "NO_FILE", docErr.Code)
}
