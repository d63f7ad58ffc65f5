package api

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/Domenick1991/staybooking/internal/service/photos"
	"github.com/gin-gonic/gin"
)

const photosField = "photos"

type UploadHandler struct {
	service  photos.PhotoUseCase
	maxFiles int
}

type uploadByLinkRequest struct {
	Link string `json:"link"`
}

func NewUploadHandler(service photos.PhotoUseCase, maxFiles int) *UploadHandler {
	return &UploadHandler{service: service, maxFiles: maxFiles}
}

func (h *UploadHandler) Register(router *gin.RouterGroup) {
	router.POST("/upload-by-link", h.uploadByLink)
	router.POST("/upload", h.upload)
}

func (h *UploadHandler) uploadByLink(c *gin.Context) {
	var req uploadByLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, "upload_by_link", err)
		return
	}

	url, err := h.service.UploadByLink(c.Request.Context(), req.Link)
	if err != nil {
		respondError(c, "upload_by_link", err, "Error downloading image!")
		return
	}
	c.JSON(http.StatusOK, url)
}

func (h *UploadHandler) upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respondBadBody(c, "upload", err)
		return
	}
	defer form.RemoveAll()

	headers := form.File[photosField]
	if h.maxFiles > 0 && len(headers) > h.maxFiles {
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Message: "Too many files!"})
		return
	}

	files := make([]photos.Upload, 0, len(headers))
	for _, fh := range headers {
		files = append(files, toUpload(fh))
	}

	urls, err := h.service.Upload(c.Request.Context(), files)
	if err != nil {
		respondError(c, "upload", err, "Error uploading photos!")
		return
	}
	c.JSON(http.StatusOK, nonNil(urls))
}

func toUpload(fh *multipart.FileHeader) photos.Upload {
	return photos.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}
