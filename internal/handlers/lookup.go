package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/craigderington/m3data-api/internal/ipmeta"
	"github.com/craigderington/m3data-api/internal/middleware"
	"github.com/craigderington/m3data-api/internal/models"
	"github.com/craigderington/m3data-api/internal/rabbitmq"
	"github.com/craigderington/m3data-api/internal/services"
	"github.com/gofiber/fiber/v3"
)

// RecordStore is the read side of the record table. A miss is
// (nil, nil); an error always means the storage layer failed.
type RecordStore interface {
	FindByIP(ctx context.Context, ip string) (*models.Record, error)
	FindByPhone(ctx context.Context, national string) (*models.Record, error)
	FindByCoordinates(ctx context.Context, lat, lng float64) ([]models.Record, error)
	FindByName(ctx context.Context, first, last string) (*models.Record, error)
}

// AccessLogger appends audit entries after successful hits.
type AccessLogger interface {
	Record(ctx context.Context, userID int64, resource string) error
}

// AlertPublisher hands alert payloads to the dispatch queue.
type AlertPublisher interface {
	PublishAlert(body []byte) error
}

type LookupHandler struct {
	store     RecordStore
	accessLog AccessLogger
	geocoder  *services.GeocodeService
	publisher AlertPublisher // nil when RabbitMQ is not configured
}

func NewLookupHandler(store RecordStore, accessLog AccessLogger, geocoder *services.GeocodeService, publisher AlertPublisher) *LookupHandler {
	return &LookupHandler{
		store:     store,
		accessLog: accessLog,
		geocoder:  geocoder,
		publisher: publisher,
	}
}

// RecordDetail is the stored-record portion of a lookup response.
type RecordDetail struct {
	CreatedDate time.Time            `json:"created_date"`
	LastSeen    string               `json:"last_seen"`
	IP          string               `json:"ip"`
	UserAgent   string               `json:"user_agent"`
	Person      models.PersonSection `json:"person"`
	Geo         models.GeoSection    `json:"geo"`
	Auto        models.AutoSection   `json:"auto"`
}

func newRecordDetail(rec *models.Record) RecordDetail {
	return RecordDetail{
		CreatedDate: rec.CreatedDate,
		LastSeen:    rec.LastSeen,
		IP:          rec.IP,
		UserAgent:   rec.UserAgent,
		Person:      rec.Person(),
		Geo:         rec.Geo(),
		Auto:        rec.Auto(),
	}
}

// IPLookupResponse is a RecordDetail plus network metadata re-derived
// from the parsed address, not from storage.
type IPLookupResponse struct {
	RecordDetail
	Network ipmeta.NetworkInfo `json:"network"`
}

// PhoneLookupResponse always carries the numbering-plan geocode; the
// record block is present only on a hit.
type PhoneLookupResponse struct {
	Found   bool                  `json:"found"`
	Geocode services.PhoneGeocode `json:"geocode"`
	Record  *RecordDetail         `json:"record,omitempty"`
	Message string                `json:"message,omitempty"`
}

// CoordsLookupResponse returns the full set of exact matches.
type CoordsLookupResponse struct {
	Count   int            `json:"count"`
	Matches []RecordDetail `json:"matches"`
	Message string         `json:"message,omitempty"`
}

// ByIP handles GET /api/v1.0/ipaddr/:ip
func (h *LookupHandler) ByIP(c fiber.Ctx) error {
	raw := c.Params("ip")

	addr, err := ipmeta.ParseIPv4(raw)
	if err != nil {
		// Parse failures return 201 here where the sibling lookups
		// use 400. Kept as-is for wire compatibility with deployed
		// clients.
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"error":   "Invalid IP Address Format",
			"message": err.Error(),
		})
	}

	ctx := context.Background()
	rec, err := h.store.FindByIP(ctx, addr.String())
	if err != nil {
		return storageError(c, err)
	}

	if rec == nil {
		return c.JSON(fiber.Map{
			"message": fmt.Sprintf("No data found for IP: %s", addr.String()),
		})
	}

	h.recordHit(c, "ipaddr", addr.String(), rec)

	return c.JSON(IPLookupResponse{
		RecordDetail: newRecordDetail(rec),
		Network:      ipmeta.Describe(addr),
	})
}

// ByPhone handles GET /api/v1.0/sms/:number
func (h *LookupHandler) ByPhone(c fiber.Ctx) error {
	raw := c.Params("number")

	num, err := h.geocoder.ParseNumber(raw)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Bad Request",
			"message": fmt.Sprintf("Invalid phone number: %s", raw),
		})
	}

	// Geocode first: it depends only on the number's structure and is
	// returned even when no record matches.
	geocode := h.geocoder.Geocode(num)

	ctx := context.Background()
	rec, err := h.store.FindByPhone(ctx, geocode.National)
	if err != nil {
		return storageError(c, err)
	}

	if rec == nil {
		return c.JSON(PhoneLookupResponse{
			Found:   false,
			Geocode: geocode,
			Message: fmt.Sprintf("No data found for number: %s", geocode.National),
		})
	}

	h.recordHit(c, "sms", geocode.National, rec)

	detail := newRecordDetail(rec)
	return c.JSON(PhoneLookupResponse{
		Found:   true,
		Geocode: geocode,
		Record:  &detail,
	})
}

// ByCoordinates handles GET /api/v1.0/geo/:lat/:lng
func (h *LookupHandler) ByCoordinates(c fiber.Ctx) error {
	lat, latErr := strconv.ParseFloat(c.Params("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Params("lng"), 64)
	if latErr != nil || lngErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Bad Request",
			"message": "Latitude and longitude must be decimal numbers",
		})
	}

	ctx := context.Background()
	recs, err := h.store.FindByCoordinates(ctx, lat, lng)
	if err != nil {
		return storageError(c, err)
	}

	if len(recs) == 0 {
		return c.JSON(CoordsLookupResponse{
			Count:   0,
			Matches: []RecordDetail{},
			Message: fmt.Sprintf("No data found for coordinates: %v, %v", lat, lng),
		})
	}

	matches := make([]RecordDetail, 0, len(recs))
	for i := range recs {
		matches = append(matches, newRecordDetail(&recs[i]))
	}

	h.recordHit(c, "geo", fmt.Sprintf("%v,%v", lat, lng), &recs[0])

	return c.JSON(CoordsLookupResponse{
		Count:   len(matches),
		Matches: matches,
	})
}

// ByName handles GET /api/v1.0/name/:first/:last
func (h *LookupHandler) ByName(c fiber.Ctx) error {
	first := strings.TrimSpace(c.Params("first"))
	last := strings.TrimSpace(c.Params("last"))
	if first == "" || last == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Bad Request",
			"message": "First and last name are required",
		})
	}

	ctx := context.Background()
	rec, err := h.store.FindByName(ctx, first, last)
	if err != nil {
		return storageError(c, err)
	}

	if rec == nil {
		return c.JSON(fiber.Map{
			"message": fmt.Sprintf("No data found for name: %s %s", first, last),
		})
	}

	h.recordHit(c, "name", fmt.Sprintf("%s %s", first, last), rec)

	return c.JSON(newRecordDetail(rec))
}

// recordHit runs the post-hit side effects: the audit append and the
// alert publish. Both are best-effort; neither outcome can change the
// response already owed to the caller.
func (h *LookupHandler) recordHit(c fiber.Ctx, resource, key string, rec *models.Record) {
	userID := middleware.GetUserID(c)
	if err := h.accessLog.Record(context.Background(), userID, resource); err != nil {
		log.Printf("Access log write failed (user %d, resource %s): %v", userID, resource, err)
	}

	if h.publisher == nil {
		return
	}

	alert := rabbitmq.AlertMessage{
		Resource:   resource,
		Key:        key,
		PersonName: rec.PersonName(),
		CellPhone:  rec.CellPhone,
		Username:   middleware.GetUsername(c),
	}
	body, err := json.Marshal(alert)
	if err != nil {
		log.Printf("Failed to marshal alert: %v", err)
		return
	}
	if err := h.publisher.PublishAlert(body); err != nil {
		log.Printf("Failed to publish alert: %v", err)
	}
}

func storageError(c fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Database Error",
		"message": err.Error(),
	})
}
