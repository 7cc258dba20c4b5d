package http

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Docuport-api/internal/application/dto"
	"github.com/jhoicas/Docuport-api/internal/application/ingest"
)

// FileHandler maneja la carga manual de documentos y la consulta de archivos.
type FileHandler struct {
	ingestor *ingest.UseCase
}

func NewFileHandler(ingestor *ingest.UseCase) *FileHandler {
	return &FileHandler{ingestor: ingestor}
}

// maxUploadBytes límite del archivo subido por formulario.
const maxUploadBytes = 25 << 20

// Upload godoc
// @Summary      Cargar un documento (PDF o Excel) para procesamiento
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Archivo del documento"
// @Success      201   {object}  dto.UploadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/files/upload [post]
func (h *FileHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el campo 'file' es requerido"})
	}
	if fh.Size > maxUploadBytes {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el archivo supera el tamaño máximo permitido"})
	}

	src, err := fh.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return respondError(c, err)
	}

	out, err := h.ingestor.IngestUpload(c.Context(), GetCompanyID(c), fh.Filename, content)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar archivos recibidos de la empresa del token
// @Tags         files
// @Produce      json
// @Success      200  {object}  dto.FileListResponse
// @Security     BearerAuth
// @Router       /api/files [get]
func (h *FileHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.ingestor.ListFiles(GetCompanyID(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener un archivo por ID
// @Tags         files
// @Produce      json
// @Param        id  path  string  true  "ID del archivo"
// @Success      200  {object}  dto.FileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/files/{id} [get]
func (h *FileHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.ingestor.GetFile(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RetryFailed godoc
// @Summary      Reintentar el procesamiento de archivos fallidos
// @Tags         files
// @Produce      json
// @Param        limit  query  int  false  "Máximo de archivos a reintentar"
// @Success      200  {object}  map[string]int
// @Security     BearerAuth
// @Router       /api/files/retry [post]
func (h *FileHandler) RetryFailed(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	retried, err := h.ingestor.RetryFailed(c.Context(), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"retried": retried})
}
