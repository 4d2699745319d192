package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sonsdetaville/sounds-api/internal/api/metrics"
	"github.com/sonsdetaville/sounds-api/internal/core/domain"
	"github.com/sonsdetaville/sounds-api/internal/core/ports"
)

// maxAudioBytes caps the uploaded clip size at 16 MiB, Mongo's document limit.
const maxAudioBytes = 16 << 20

// SoundHandler handles HTTP requests for sounds.
type SoundHandler struct {
	service ports.SoundService
}

func NewSoundHandler(service ports.SoundService) *SoundHandler {
	return &SoundHandler{service: service}
}

type updateSoundRequest struct {
	Category string `json:"category"`
}

// List handles GET /sounds with optional location, category, user, date,
// limit and offset filters.
//
// @Summary      List sounds
// @Tags         sounds
// @Produce      json
// @Security     BearerAuth
// @Param        location  query     string  false  "JSON point with radius, e.g. {\"lat\":48.85,\"lng\":2.35,\"radius\":1000}"
// @Param        category  query     string  false  "Category id or name"
// @Param        username  query     string  false  "Filter by owner username"
// @Param        user      query     string  false  "Filter by owner id"
// @Param        date      query     string  false  "Only sounds on or after this day (YYYY-MM-DD)"
// @Param        limit     query     int     false  "Page size, 1-100"
// @Param        offset    query     int     false  "Number of sounds to skip"
// @Success      200       {array}   ports.SoundView
// @Failure      400       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /sounds [get]
func (h *SoundHandler) List(c echo.Context) error {
	sounds, err := h.service.ListSounds(c.Request().Context(), ports.ListSoundsParams{
		Location: c.QueryParam("location"),
		Category: c.QueryParam("category"),
		Username: c.QueryParam("username"),
		UserID:   c.QueryParam("user"),
		Date:     c.QueryParam("date"),
		Limit:    c.QueryParam("limit"),
		Offset:   c.QueryParam("offset"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sounds)
}

// Get handles GET /sounds/:id.
//
// @Summary      Get a sound by id
// @Tags         sounds
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Sound id"
// @Success      200  {object}  ports.SoundView
// @Failure      404  {object}  errorResponse
// @Router       /sounds/{id} [get]
func (h *SoundHandler) Get(c echo.Context) error {
	sound, err := h.service.GetSound(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sound)
}

// Data handles GET /sounds/data/:id and streams the raw audio clip.
//
// @Summary      Download a sound's audio data
// @Tags         sounds
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        id   path      string  true  "Sound id"
// @Success      200  {file}    binary
// @Failure      404  {object}  errorResponse
// @Router       /sounds/data/{id} [get]
func (h *SoundHandler) Data(c echo.Context) error {
	data, err := h.service.GetSoundData(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, data.ContentType, data.Bytes)
}

// Create handles POST /sounds. Expects a multipart form with the clip in
// the "uploaded_audio" file field plus lat, lng and category fields.
//
// @Summary      Publish a new sound
// @Tags         sounds
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        uploaded_audio  formData  file    true  "Audio clip"
// @Param        lat             formData  number  true  "Latitude"
// @Param        lng             formData  number  true  "Longitude"
// @Param        category        formData  string  true  "Category id or name"
// @Success      201             {object}  ports.SoundView
// @Failure      400             {object}  errorResponse
// @Failure      404             {object}  errorResponse
// @Router       /sounds [post]
func (h *SoundHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	lat, latErr := strconv.ParseFloat(c.FormValue("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.FormValue("lng"), 64)
	if latErr != nil || lngErr != nil {
		return domain.BadRequest("Invalid location")
	}

	file, err := c.FormFile("uploaded_audio")
	if err != nil {
		return domain.BadRequest("Sound file is missing")
	}
	if file.Size > maxAudioBytes {
		return domain.BadRequest("Sound file is too large")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	audio, err := io.ReadAll(io.LimitReader(src, maxAudioBytes))
	if err != nil {
		return err
	}

	sound, err := h.service.CreateSound(c.Request().Context(), ports.CreateSoundInput{
		Actor:       actor,
		Lat:         lat,
		Lng:         lng,
		Category:    c.FormValue("category"),
		Audio:       audio,
		ContentType: file.Header.Get(echo.HeaderContentType),
	})
	if err != nil {
		return err
	}

	category := ""
	if sound.Category != nil {
		category = sound.Category.Name
	}
	metrics.SoundsCreatedTotal.WithLabelValues(category).Inc()

	return c.JSON(http.StatusCreated, sound)
}

// Update handles PATCH /sounds/:id — owner or admin only. Only the
// category can be changed.
//
// @Summary      Reassign a sound's category
// @Tags         sounds
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Sound id"
// @Param        body  body      updateSoundRequest  true  "New category name"
// @Success      200   {object}  ports.SoundView
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /sounds/{id} [patch]
func (h *SoundHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateSoundRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	sound, err := h.service.UpdateSoundCategory(c.Request().Context(), actor, c.Param("id"), req.Category)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sound)
}

// Delete handles DELETE /sounds/:id — owner or admin only. The sound's
// comments are removed with it.
//
// @Summary      Delete a sound
// @Tags         sounds
// @Security     BearerAuth
// @Param        id  path  string  true  "Sound id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /sounds/{id} [delete]
func (h *SoundHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteSound(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// Options announces the verbs supported on the collection root.
func (h *SoundHandler) Options(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderAllow, "GET, POST, PATCH, DELETE, OPTIONS")
	return c.NoContent(http.StatusNoContent)
}
