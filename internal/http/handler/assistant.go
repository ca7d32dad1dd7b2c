package handler

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"farmapi/internal/model"
	"farmapi/internal/service"
)

type queryRequest struct {
	Query string `json:"query"`
}

type imageResponse struct {
	Result   string `json:"result"`
	ImageURL string `json:"imageUrl"`
}

var errInvalidBody = fiber.NewError(fiber.StatusBadRequest, msgInvalidBody)

// decodeJSON parses a JSON body into v. Bodies that are empty or not JSON leave v untouched,
// so the service reports the missing fields.
func decodeJSON(c *fiber.Ctx, v any) error {
	if len(c.Body()) == 0 || !c.Is("json") {
		return nil
	}
	if err := c.App().Config().JSONDecoder(c.Body(), v); err != nil {
		return errInvalidBody
	}
	return nil
}

// AskQuery handles POST /api/query.
//
// @Summary Ask a question
// @Accept json
// @Produce json
// @Param body body queryRequest true "query"
// @Success 200 {object} model.Answer
// @Failure 400 {object} errorPayload
// @Router /api/query [post]
func AskQuery(svc service.AssistantService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req queryRequest
		if err := decodeJSON(c, &req); err != nil {
			return err
		}
		ans, err := svc.Ask(c.UserContext(), req.Query)
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(ans)
	}
}

// AnalyzeImage handles POST /api/analyze-image (multipart/form-data, field name: image).
//
// @Summary Analyze a crop image
// @Accept mpfd
// @Produce json
// @Param image formData file true "image"
// @Success 200 {object} imageResponse
// @Failure 400 {object} errorPayload
// @Router /api/analyze-image [post]
func AnalyzeImage(svc service.AssistantService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("image")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, service.MsgImageRequired)
		}

		f, err := fh.Open()
		if err != nil {
			return err
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		res, err := svc.AnalyzeImage(c.UserContext(), f, fh.Filename, ct, fh.Size)
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(imageResponse{
			Result:   res.Result,
			ImageURL: uploadURL(c, res.Filename),
		})
	}
}

// GetWeather handles GET /api/weather?location=.
//
// @Summary Weather for a location
// @Produce json
// @Param location query string true "location"
// @Success 200 {object} model.WeatherReport
// @Failure 400 {object} errorPayload
// @Router /api/weather [get]
func GetWeather(svc service.AssistantService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		report, err := svc.Weather(c.UserContext(), c.Query("location"))
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(report)
	}
}

// SubmitContact handles POST /api/contact.
//
// @Summary Send a contact message
// @Accept json
// @Produce json
// @Param body body model.ContactSubmission true "message"
// @Success 200 {object} model.ContactReceipt
// @Failure 400 {object} errorPayload
// @Router /api/contact [post]
func SubmitContact(svc service.AssistantService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sub model.ContactSubmission
		if err := decodeJSON(c, &sub); err != nil {
			return err
		}
		receipt, err := svc.Contact(c.UserContext(), sub)
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(receipt)
	}
}

// uploadURL builds the public URL of an uploaded file from the request's scheme and host.
func uploadURL(c *fiber.Ctx, filename string) string {
	scheme := c.Protocol()
	if proto := c.Get(fiber.HeaderXForwardedProto); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}
	host := c.Get(fiber.HeaderHost)
	if host == "" {
		host = c.Hostname()
	}
	return scheme + "://" + host + "/uploads/" + url.PathEscape(filename)
}
