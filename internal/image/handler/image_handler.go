package handler

import (
	"io"

	apperror "github.com/RochKDev/warranty-manager/internal/errors"
	"github.com/RochKDev/warranty-manager/internal/image/service"
	"github.com/gofiber/fiber/v2"
)

type ImageHandler struct {
	images *service.ImageService
}

func NewImageHandler(images *service.ImageService) *ImageHandler {
	return &ImageHandler{images: images}
}

type UploadOutput struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Size        int    `json:"size"`
}

// Upload reads the multipart "file" field.
func (h *ImageHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return &apperror.ValidationError{Fields: []apperror.FieldError{{Field: "file", Error: "file is required"}}}
	}
	if fh.Size > h.images.MaxBytes() {
		return apperror.ErrPayloadTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.images.MaxBytes()+1))
	if err != nil {
		return err
	}

	img, err := h.images.Upload(c.UserContext(), fh.Filename, data)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(UploadOutput{
		Name:        img.Name,
		ContentType: img.ContentType,
		Size:        len(img.Data),
	})
}

func (h *ImageHandler) Download(c *fiber.Ctx) error {
	img, err := h.images.Download(c.UserContext(), c.Params("name"))
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, img.ContentType)
	return c.Send(img.Data)
}

func RegisterRoutes(api fiber.Router, h *ImageHandler, requireAuth fiber.Handler) {
	images := api.Group("/images", requireAuth)
	images.Post("/", h.Upload)
	images.Get("/:name", h.Download)
}
