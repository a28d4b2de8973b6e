package handler

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/producthub/producthub/internal/auth"
	"github.com/producthub/producthub/internal/handler/dto"
	"github.com/producthub/producthub/internal/metrics"
	"github.com/producthub/producthub/internal/service"
	"github.com/producthub/producthub/internal/upload"
)

// multipartMemoryLimit bounds how much of a multipart body is buffered in
// memory before spilling to temp files.
const multipartMemoryLimit = 1 << 20 // 1 MiB

// ProductHandler handles HTTP requests for product operations.
// All routes mount behind the auth middleware, so an identity is always
// present in the request context.
type ProductHandler struct {
	svc     *service.ProductService
	uploads *upload.Store
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(svc *service.ProductService, uploads *upload.Store, logger *slog.Logger, recorder metrics.Recorder) *ProductHandler {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ProductHandler{
		svc:     svc,
		uploads: uploads,
		logger:  logger,
		metrics: recorder,
	}
}

// Create handles POST /api/products. The body is multipart form data
// with fields name, description, price, sku and an optional image part.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FORM", "Invalid multipart form data")
		return
	}

	input := service.CreateProductInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		SKU:         r.FormValue("sku"),
	}

	if priceStr := strings.TrimSpace(r.FormValue("price")); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_PRICE", "Price must be a number")
			return
		}
		input.Price = &price
	}

	// Store the image first so its reference can be persisted with the row.
	file, header, err := formImageFile(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FORM", "Invalid image part")
		return
	}
	if file != nil {
		defer file.Close()

		ref, saveErr := h.uploads.Save(file, header.Size, header.Header.Get("Content-Type"), header.Filename)
		if saveErr != nil {
			h.metrics.IncUploadRejected()
			h.handleUploadError(w, saveErr)
			return
		}
		h.metrics.IncUploadStored()
		input.ImageRef = ref
	}

	product, err := h.svc.Create(r.Context(), identity.UserID, input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("product_created",
		"product_id", product.ID,
		"owner_id", identity.UserID,
		"has_image", product.HasImage(),
		"request_id", requestID(r),
	)

	writeJSON(w, http.StatusCreated, dto.CreateProductResponse{
		Message: "Product registered successfully",
		Product: dto.ToProductResponse(product),
	})
}

// List handles GET /api/products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	products, err := h.svc.List(r.Context(), identity.UserID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProductListResponse(products))
}

// Get handles GET /api/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		// A non-numeric id can never name a product; report it the same
		// way as an unknown one.
		writeError(w, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
		return
	}

	product, err := h.svc.Get(r.Context(), id, identity.UserID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SingleProductResponse{
		Product: dto.ToProductResponse(product),
	})
}

// formImageFile pulls the optional image part from a parsed multipart
// form. An absent part returns all nils; any other failure is a
// malformed request, not a product without an image.
func formImageFile(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	return file, header, nil
}

// handleServiceError maps product service errors to HTTP responses.
func (h *ProductHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingName):
		writeError(w, http.StatusBadRequest, "MISSING_NAME", "Product name is required")
	case errors.Is(err, service.ErrInvalidPrice):
		writeError(w, http.StatusBadRequest, "INVALID_PRICE", "Price must be non-negative")
	case errors.Is(err, service.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// handleUploadError maps upload validation errors to HTTP responses.
func (h *ProductHandler) handleUploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, upload.ErrFileTooLarge):
		writeError(w, http.StatusBadRequest, "FILE_TOO_LARGE", "Image exceeds the maximum upload size")
	case errors.Is(err, upload.ErrUnsupportedType):
		writeError(w, http.StatusBadRequest, "UNSUPPORTED_TYPE", "Only image files are allowed")
	default:
		h.logger.Error("upload_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
