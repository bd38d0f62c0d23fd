package registry

import (
	"errors"
	"io"
	"time"

	"voter-registry/core/logger"
	"voter-registry/feature/registry/roll"
	"voter-registry/feature/registry/sync"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the registry.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the registry routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/registry")
	group.Post("/upload", h.HandleUpload)
	group.Post("/sync", h.HandleSync)
	group.Get("/records", h.HandleListRecords)
	group.Get("/batches", h.HandleListBatches)
}

// HandleUpload ingests an uploaded roll file into the named batch.
// Expects multipart form fields "file" and "batch_name".
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	batchName := c.FormValue("batch_name")
	if batchName == "" {
		return badRequest(c, ErrNoBatchName)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, ErrNoFile)
	}

	f, err := fileHeader.Open()
	if err != nil {
		return badRequest(c, ErrNoFile)
	}
	defer f.Close()

	payload, err := io.ReadAll(f)
	if err != nil {
		l.Error("Reading upload failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read uploaded file",
		})
	}

	count, warnings, err := h.service.IngestRoll(c.Context(), batchName, fileHeader.Filename, payload, time.Now())
	if err != nil {
		if isInputError(err) {
			return badRequest(c, err)
		}
		l.Error("Roll ingestion failed",
			zap.String("batch", batchName),
			zap.String("file", fileHeader.Filename),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	l.Info("Roll ingested",
		zap.String("batch", batchName),
		zap.String("file", fileHeader.Filename),
		zap.Int("created", count),
		zap.Int("warnings", len(warnings)))

	if warnings == nil {
		warnings = []roll.Warning{}
	}
	return c.JSON(fiber.Map{
		"message":  "roll ingested",
		"created":  count,
		"warnings": warnings,
	})
}

// HandleSync applies a client-submitted create/update/delete batch.
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var req sync.Request
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}

	res, err := h.service.Reconciler().Reconcile(c.Context(), req)
	if err != nil {
		if errors.Is(err, sync.ErrEmptyRequest) ||
			errors.Is(err, sync.ErrConflictingOps) ||
			errors.Is(err, sync.ErrInvalidRecord) {
			return badRequest(c, err)
		}
		l.Error("Sync reconciliation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	l.Info("Sync reconciled",
		zap.Int("created", res.Created),
		zap.Int("updated", res.Updated),
		zap.Int("deleted", res.Deleted),
		zap.Int("skipped", res.Skipped))

	return c.JSON(fiber.Map{
		"message": "sync complete",
		"created": res.Created,
		"updated": res.Updated,
		"deleted": res.Deleted,
		"skipped": res.Skipped,
	})
}

// HandleListRecords returns the full record dataset through the snapshot cache.
func (h *Handler) HandleListRecords(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	records, err := h.service.ListRecords(c.Context())
	if err != nil {
		l.Error("Listing records failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(records)
}

// HandleListBatches returns all batches, newest first.
func (h *Handler) HandleListBatches(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	batches, err := h.service.ListBatches(c.Context())
	if err != nil {
		l.Error("Listing batches failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(batches)
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// isInputError reports whether err is the caller's fault rather than a
// persistence failure.
func isInputError(err error) bool {
	return errors.Is(err, ErrNoRecords) ||
		errors.Is(err, ErrNoBatchName) ||
		errors.Is(err, roll.ErrEmptyInput) ||
		errors.Is(err, roll.ErrInvalidEncoding) ||
		errors.Is(err, roll.ErrNoUsableBlocks)
}
