package handler

import (
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"labpipe/internal/service"
)

// UploadFile accepts a multipart upload (field "file", optional
// "metadata_file") plus capture metadata fields and records a file.
func UploadFile(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "cannot open uploaded file")
		}
		defer f.Close()

		in := service.UploadInput{
			Reader:       f,
			OriginalName: fh.Filename,
			ContentType:  contentType(fh),
			Size:         fh.Size,
			Place:        c.FormValue("place"),
			Weather:      c.FormValue("weather"),
		}

		if ts := c.FormValue("timestamp"); ts != "" {
			parsed, err := time.Parse(time.RFC3339, ts)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "timestamp must be RFC3339")
			}
			in.CapturedAt = &parsed
		}

		if mh, err := c.FormFile("metadata_file"); err == nil {
			mf, err := mh.Open()
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "cannot open metadata file")
			}
			defer mf.Close()
			in.MetadataReader = mf
			in.MetadataName = mh.Filename
			in.MetadataSize = mh.Size
		}

		file, err := svc.Upload(c.UserContext(), in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"file": file})
	}
}

// GetFile returns one file record by id.
func GetFile(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		file, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(file)
	}
}

// ListFiles returns all file records, newest first.
func ListFiles(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		files, err := svc.List(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"files": files})
	}
}

func contentType(fh *multipart.FileHeader) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
