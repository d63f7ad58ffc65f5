package api

import (
	"net/http"

	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/Domenick1991/staybooking/internal/service/places"
	"github.com/gin-gonic/gin"
)

type PlaceHandler struct {
	service places.PlaceUseCase
}

// placeRequest is the listing form. Photos arrive as addedPhotos.
type placeRequest struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Address     string   `json:"address"`
	AddedPhotos []string `json:"addedPhotos"`
	Description string   `json:"description"`
	Perks       []string `json:"perks"`
	ExtraInfo   string   `json:"extraInfo"`
	CheckIn     number   `json:"checkIn"`
	CheckOut    number   `json:"checkOut"`
	MaxGuests   number   `json:"maxGuests"`
	Price       number   `json:"price"`
}

func (r placeRequest) fields() domain.PlaceFields {
	return domain.PlaceFields{
		Title:       r.Title,
		Address:     r.Address,
		Photos:      r.AddedPhotos,
		Description: r.Description,
		Perks:       r.Perks,
		ExtraInfo:   r.ExtraInfo,
		CheckIn:     r.CheckIn.Int(),
		CheckOut:    r.CheckOut.Int(),
		MaxGuests:   r.MaxGuests.Int(),
		Price:       float64(r.Price),
	}
}

func NewPlaceHandler(service places.PlaceUseCase) *PlaceHandler {
	return &PlaceHandler{service: service}
}

func (h *PlaceHandler) Register(router *gin.RouterGroup, requireSession gin.HandlerFunc) {
	router.POST("/places", requireSession, h.create)
	router.PUT("/places", requireSession, h.update)
	router.GET("/user-places", requireSession, h.listMine)
	router.GET("/places/:id", h.get)
	router.GET("/places", h.list)
}

func (h *PlaceHandler) create(c *gin.Context) {
	var req placeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, "create_place", err)
		return
	}

	place, err := h.service.Create(c.Request.Context(), sessionFrom(c).UserID, req.fields())
	if err != nil {
		respondError(c, "create_place", err, "Failed creating place!")
		return
	}
	c.JSON(http.StatusOK, place)
}

func (h *PlaceHandler) update(c *gin.Context) {
	var req placeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, "update_place", err)
		return
	}
	if req.ID == "" {
		respondError(c, "update_place", domain.ErrPlaceNotFound, "")
		return
	}

	if err := h.service.Update(c.Request.Context(), req.ID, sessionFrom(c).UserID, req.fields()); err != nil {
		respondError(c, "update_place", err, "Failed updating place!")
		return
	}
	c.JSON(http.StatusOK, "ok")
}

func (h *PlaceHandler) listMine(c *gin.Context) {
	list, err := h.service.ListByOwner(c.Request.Context(), sessionFrom(c).UserID)
	if err != nil {
		respondError(c, "user_places", err, "Failed loading places!")
		return
	}
	c.JSON(http.StatusOK, nonNil(list))
}

func (h *PlaceHandler) get(c *gin.Context) {
	place, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "get_place", err, "Failed loading place!")
		return
	}
	c.JSON(http.StatusOK, place)
}

func (h *PlaceHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, "list_places", err, "Failed loading places!")
		return
	}
	c.JSON(http.StatusOK, nonNil(list))
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
