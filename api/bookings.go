package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/Domenick1991/staybooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

// createBookingRequest has no user field: any user sent in the body is ignored.
type createBookingRequest struct {
	Place          string `json:"place"`
	CheckIn        date   `json:"checkIn"`
	CheckOut       date   `json:"checkOut"`
	NumberOfGuests number `json:"numberOfGuests"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Price          number `json:"price"`
}

// bookingResponse carries place as an id on create and as the full listing
// when read back.
type bookingResponse struct {
	ID             string      `json:"id"`
	Place          interface{} `json:"place"`
	User           string      `json:"user"`
	CheckIn        time.Time   `json:"checkIn"`
	CheckOut       time.Time   `json:"checkOut"`
	NumberOfGuests int         `json:"numberOfGuests"`
	Name           string      `json:"name"`
	Phone          string      `json:"phone"`
	Price          float64     `json:"price"`
	CreatedAt      time.Time   `json:"createdAt"`
}

func newBookingResponse(b domain.Booking, place interface{}) bookingResponse {
	return bookingResponse{
		ID:             b.ID,
		Place:          place,
		User:           b.UserID,
		CheckIn:        b.CheckIn,
		CheckOut:       b.CheckOut,
		NumberOfGuests: b.NumberOfGuests,
		Name:           b.Name,
		Phone:          b.Phone,
		Price:          b.Price,
		CreatedAt:      b.CreatedAt,
	}
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup, requireSession gin.HandlerFunc) {
	router.POST("/bookings", requireSession, h.create)
	router.GET("/bookings", requireSession, h.list)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, "create_booking", err)
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), sessionFrom(c).UserID, booking.CreateBookingInput{
		PlaceID:        req.Place,
		CheckIn:        req.CheckIn.Time(),
		CheckOut:       req.CheckOut.Time(),
		NumberOfGuests: req.NumberOfGuests.Int(),
		Name:           req.Name,
		Phone:          req.Phone,
		Price:          float64(req.Price),
	})
	if err != nil {
		respondError(c, "create_booking", err, "Error creating booking!")
		return
	}

	c.JSON(http.StatusOK, newBookingResponse(*b, b.PlaceID))
}

func (h *BookingHandler) list(c *gin.Context) {
	bookings, err := h.service.ListForUser(c.Request.Context(), sessionFrom(c).UserID)
	if err != nil {
		respondError(c, "list_bookings", err, "Error loading bookings!")
		return
	}

	resp := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		// a booking whose listing is gone renders place as null
		var place interface{}
		if b.Place != nil {
			place = b.Place
		}
		resp = append(resp, newBookingResponse(b, place))
	}
	c.JSON(http.StatusOK, resp)
}
