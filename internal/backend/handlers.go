package backend

import (
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
)

// maxHistoryFiles bounds one history analysis upload.
const maxHistoryFiles = 20

// RegisterRoutes proxies the Garmin and history endpoints to the backend.
func RegisterRoutes(r fiber.Router, client *Client) {
	r.Post("/garmin/connect", func(c *fiber.Ctx) error {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&body); err != nil || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "email and password required")
		}
		res, err := client.GarminConnect(c.Context(), body.Email, body.Password)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		return c.JSON(res)
	})

	r.Get("/garmin/activity/:activityID/gpx", func(c *fiber.Ctx) error {
		data, err := client.GarminActivityGPX(c.Context(), c.Params("activityID"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		c.Set(fiber.HeaderContentType, "application/gpx+xml")
		return c.Send(data)
	})

	r.Post("/history/analyze", func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "multipart form required")
		}
		headers := form.File["files"]
		if len(headers) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "at least one file required")
		}
		if len(headers) > maxHistoryFiles {
			return fiber.NewError(fiber.StatusBadRequest, "too many files")
		}
		files := make([]File, 0, len(headers))
		for _, h := range headers {
			f, err := ReadFormFile(h)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			files = append(files, f)
		}
		res, err := client.AnalyzeHistory(c.Context(), files)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		return c.JSON(res)
	})
}

// ReadFormFile loads an uploaded multipart file into memory.
func ReadFormFile(h *multipart.FileHeader) (File, error) {
	src, err := h.Open()
	if err != nil {
		return File{}, err
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return File{}, err
	}
	return File{Name: h.Filename, Data: data}, nil
}
