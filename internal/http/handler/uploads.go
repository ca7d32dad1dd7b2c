package handler

import (
	"errors"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"farmapi/internal/storage"
)

// ServeUpload handles GET /uploads/:filename by streaming the stored bytes unchanged.
func ServeUpload(store storage.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name, err := url.PathUnescape(c.Params("filename"))
		if err != nil {
			return fiber.ErrNotFound
		}

		rc, info, err := store.Get(c.UserContext(), name)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fiber.ErrNotFound
			}
			return err
		}

		if info.ContentType != "" {
			c.Set(fiber.HeaderContentType, info.ContentType)
		} else {
			c.Type(filepath.Ext(name))
		}
		if !info.LastModified.IsZero() {
			c.Set(fiber.HeaderLastModified, info.LastModified.UTC().Format(http.TimeFormat))
		}
		return c.SendStream(rc, int(info.Size))
	}
}
