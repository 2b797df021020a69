package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/Grizzway/SalonSync-sub000/apperrors"
	"github.com/Grizzway/SalonSync-sub000/config"
	"github.com/Grizzway/SalonSync-sub000/models"
	"github.com/Grizzway/SalonSync-sub000/utils"
)

// Profile pictures are scaled down to fit this box
const (
	profilePictureSize = 512
	pictureFolder      = "salonsync/profile_pictures"
)

// ImageUploader stores an image with the image host and returns its public URL
type ImageUploader interface {
	Upload(ctx context.Context, image io.Reader, publicID, folder string) (string, error)
}

// CloudinaryUploader uploads images to Cloudinary
type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryUploader(cfg config.CloudinaryConfig) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, err
	}
	return &CloudinaryUploader{cld: cld}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, image io.Reader, publicID, folder string) (string, error) {
	resp, err := u.cld.Upload.Upload(ctx, image, uploader.UploadParams{
		PublicID:       publicID,
		Folder:         folder,
		UniqueFilename: api.Bool(false),
	})
	if err != nil {
		return "", err
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}

// Upload is a profile picture received from a client
type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// MediaService resizes profile pictures and stores them with the image host
type MediaService struct {
	stores   Stores
	uploader ImageUploader
}

// NewMediaService accepts a nil uploader; uploads then fail with an upstream error
func NewMediaService(stores Stores, uploader ImageUploader) *MediaService {
	return &MediaService{stores: stores, uploader: uploader}
}

// ResizeImage decodes an image, scales it to fit the profile picture box and re-encodes it as JPEG
func ResizeImage(r io.Reader) ([]byte, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}
	fitted := imaging.Fit(img, profilePictureSize, profilePictureSize, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, fitted, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *MediaService) SetCustomerPicture(ctx context.Context, actor *models.SessionUser, customerID int, upload Upload) (string, error) {
	if actor == nil || actor.Type != models.UserTypeCustomer || actor.ID != customerID {
		return "", apperrors.NewForbiddenError("Access denied")
	}

	url, err := s.store(ctx, models.RecipientKey(models.UserTypeCustomer, customerID), upload)
	if err != nil {
		return "", err
	}
	ok, err := s.stores.Customers.UpdateProfilePicture(ctx, customerID, url)
	if err != nil {
		return "", apperrors.NewInternalError("Failed to save profile picture", err)
	}
	if !ok {
		return "", apperrors.NewNotFoundError("Customer not found")
	}
	return url, nil
}

func (s *MediaService) SetEmployeePicture(ctx context.Context, actor *models.SessionUser, employeeID int, upload Upload) (string, error) {
	employee, err := s.stores.Employees.FindByID(ctx, employeeID)
	if err != nil {
		return "", apperrors.NewInternalError("Failed to save profile picture", err)
	}
	if employee == nil {
		return "", apperrors.NewNotFoundError("Employee not found")
	}
	if !canEditEmployee(actor, employee) {
		return "", apperrors.NewForbiddenError("Access denied")
	}

	url, err := s.store(ctx, models.RecipientKey(models.UserTypeEmployee, employeeID), upload)
	if err != nil {
		return "", err
	}
	if _, err := s.stores.Employees.UpdateProfilePicture(ctx, employeeID, url); err != nil {
		return "", apperrors.NewInternalError("Failed to save profile picture", err)
	}
	return url, nil
}

func (s *MediaService) store(ctx context.Context, owner string, upload Upload) (string, error) {
	if err := utils.ValidateFile(upload.Filename, upload.Size); err != nil {
		return "", apperrors.NewValidationError("Invalid image: " + err.Error())
	}
	resized, err := ResizeImage(io.LimitReader(upload.Content, utils.MaxImageSize+1))
	if err != nil {
		return "", apperrors.NewValidationError("Invalid image: could not decode")
	}
	if s.uploader == nil {
		return "", apperrors.NewUpstreamError("Image uploads are not configured", nil)
	}

	// a fresh public id per upload so cached URLs of the old picture never serve the new one
	publicID := fmt.Sprintf("%s_%s", strings.ReplaceAll(owner, ":", "_"), uuid.NewString())
	url, err := s.uploader.Upload(ctx, bytes.NewReader(resized), publicID, pictureFolder)
	if err != nil {
		return "", apperrors.NewUpstreamError("Failed to upload image", err)
	}
	return url, nil
}
