package controller

import (
	"cafeapi/database"
	"cafeapi/logger"
	"cafeapi/metrics"
	"cafeapi/model"
	"cafeapi/utils"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	msgNoLocation = "Sorry, we don't have a cafe at that location."
	msgNoCafeID   = "Sorry a cafe with that id was not found in the database."
	msgNoCafes    = "Sorry, there are no cafes in the database yet."
)

// CafeStore is the storage the handlers need. *database.Store satisfies it.
type CafeStore interface {
	Create(ctx context.Context, c *model.Cafe) error
	ListAll(ctx context.Context) ([]model.Cafe, error)
	ListByLocation(ctx context.Context, loc string) ([]model.Cafe, error)
	GetRandom(ctx context.Context) (model.Cafe, error)
	UpdatePrice(ctx context.Context, id uint, price *string) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

type CafeController struct {
	store   CafeStore
	log     logger.Logger
	metrics *metrics.Manager
}

func NewCafeController(store CafeStore, log logger.Logger, m *metrics.Manager) *CafeController {
	return &CafeController{store: store, log: log, metrics: m}
}

// GetRandomCafe answers GET /random.
func (cc *CafeController) GetRandomCafe(c *gin.Context) {
	cafe, err := cc.store.GetRandom(c.Request.Context())
	cc.record("random", err)
	if err != nil {
		cc.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cafe": cafe})
}

// GetAllCafes answers GET /all with every cafe sorted by name.
func (cc *CafeController) GetAllCafes(c *gin.Context) {
	cafes, err := cc.store.ListAll(c.Request.Context())
	cc.record("list_all", err)
	if err != nil {
		cc.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cafes": cafes})
}

// SearchCafes answers GET /search?loc=...
func (cc *CafeController) SearchCafes(c *gin.Context) {
	loc := c.Query("loc")
	cafes, err := cc.store.ListByLocation(c.Request.Context(), loc)
	cc.record("list_by_location", err)
	if err != nil {
		cc.respondStoreError(c, err)
		return
	}
	if len(cafes) == 0 {
		notFound(c, msgNoLocation)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cafes": cafes})
}

// AddCafe answers POST /add_cafe. Required fields are not checked here; the
// table constraints reject incomplete rows.
func (cc *CafeController) AddCafe(c *gin.Context) {
	cafe := model.Cafe{
		Name:         c.PostForm("name"),
		MapURL:       c.PostForm("map_url"),
		ImgURL:       c.PostForm("img_url"),
		Location:     c.PostForm("loc"),
		HasSockets:   utils.PostFormFlag(c, "sockets"),
		HasToilet:    utils.PostFormFlag(c, "toilet"),
		HasWifi:      utils.PostFormFlag(c, "wifi"),
		CanTakeCalls: utils.PostFormFlag(c, "calls"),
		Seats:        c.PostForm("seats"),
		CoffeePrice:  utils.OptionalPostForm(c, "coffee_price"),
	}

	err := cc.store.Create(c.Request.Context(), &cafe)
	cc.record("create", err)
	if err != nil {
		cc.respondStoreError(c, err)
		return
	}
	cc.refreshCount(c.Request.Context())

	cc.log.Info(c.Request.Context(), "cafe added",
		logger.Uint("id", cafe.ID),
		logger.String("name", cafe.Name),
		logger.String("request_id", utils.RequestID(c)))
	success(c, "Successfully added the new cafe.")
}

// UpdatePrice answers PATCH /update-price/:id?new_price=...
func (cc *CafeController) UpdatePrice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	price := utils.OptionalQuery(c, "new_price")
	if price == nil {
		badRequest(c, "new_price query parameter is required")
		return
	}

	err := cc.store.UpdatePrice(c.Request.Context(), id, price)
	cc.record("update_price", err)
	if err != nil {
		cc.respondStoreError(c, err)
		return
	}
	success(c, "Successfully updated price.")
}

// DeleteCafe answers DELETE /:id.
func (cc *CafeController) DeleteCafe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	err := cc.store.Delete(c.Request.Context(), id)
	cc.record("delete", err)
	if err != nil {
		cc.respondStoreError(c, err)
		return
	}
	cc.refreshCount(c.Request.Context())

	cc.log.Info(c.Request.Context(), "cafe deleted",
		logger.Uint("id", id),
		logger.String("request_id", utils.RequestID(c)))
	success(c, fmt.Sprintf("Successfully deleted cafe with id %d.", id))
}

// Health answers GET /healthz.
func (cc *CafeController) Health(c *gin.Context) {
	if err := cc.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RefreshCount reloads the cafe gauge from the store.
func (cc *CafeController) RefreshCount(ctx context.Context) {
	cc.refreshCount(ctx)
}

func (cc *CafeController) refreshCount(ctx context.Context) {
	n, err := cc.store.Count(ctx)
	if err != nil {
		cc.log.Warn(ctx, "count cafes failed", logger.Error(err))
		return
	}
	cc.metrics.SetCafes(n)
}

func (cc *CafeController) record(op string, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, database.ErrNotFound), errors.Is(err, database.ErrEmptyTable):
		outcome = "not_found"
	case errors.Is(err, database.ErrDuplicateName):
		outcome = "duplicate"
	case errors.Is(err, database.ErrConstraintViolation):
		outcome = "constraint"
	default:
		outcome = "error"
	}
	cc.metrics.RecordStoreOperation(op, outcome)
}

// respondStoreError maps store sentinels onto HTTP statuses.
func (cc *CafeController) respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		notFound(c, msgNoCafeID)
	case errors.Is(err, database.ErrEmptyTable):
		notFound(c, msgNoCafes)
	case errors.Is(err, database.ErrDuplicateName):
		c.JSON(http.StatusConflict, gin.H{"error": gin.H{"Constraint Violation": err.Error()}})
	case errors.Is(err, database.ErrConstraintViolation):
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"Constraint Violation": err.Error()}})
	default:
		_ = c.Error(err)
		cc.log.Error(c.Request.Context(), "store failure",
			logger.Error(err),
			logger.String("path", c.FullPath()),
			logger.String("request_id", utils.RequestID(c)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"Server Error": "Something went wrong, please try again later."}})
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "Invalid cafe ID format")
		return 0, false
	}
	return uint(id), true
}

func success(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"response": gin.H{"success": msg}})
}

func notFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"Not Found": msg}})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"Bad Request": msg}})
}
