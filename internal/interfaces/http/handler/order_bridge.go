package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	appintegration "github.com/erp/orderbridge/internal/application/integration"
	"github.com/erp/orderbridge/internal/domain/integration"
	"github.com/erp/orderbridge/internal/infrastructure/validation"
	"github.com/erp/orderbridge/internal/interfaces/http/dto"
)

// OrderBridge is the application service behind the bridge endpoints
type OrderBridge interface {
	PlaceOrder(ctx context.Context, creds integration.StoreCredentials, order *integration.NormalizedOrder, rawConfig json.RawMessage) (*integration.PlaceOrderResult, error)
	GetOrderStatuses(ctx context.Context, creds integration.StoreCredentials, channelOrderIDs []string) (*integration.OrderStatusResult, error)
	GetRefunds(ctx context.Context, creds integration.StoreCredentials, start, end time.Time) (*integration.RefundBatch, error)
	ListOrders(ctx context.Context, creds integration.StoreCredentials, since time.Time) (*integration.OrderListResult, error)
	ListSyncRecords(ctx context.Context, storeID string, filter integration.OrderSyncRecordFilter) ([]integration.OrderSyncRecord, int64, error)
	GetSyncRecord(ctx context.Context, storeID, marketplaceOrderNumber string) (*integration.OrderSyncRecord, error)
}

var _ OrderBridge = (*appintegration.OrderBridgeService)(nil)

// OrderBridgeHandler handles the marketplace order bridge endpoints
type OrderBridgeHandler struct {
	BaseHandler
	bridge    OrderBridge
	validator integration.SchemaValidator
}

// NewOrderBridgeHandler creates a new OrderBridgeHandler
func NewOrderBridgeHandler(bridge OrderBridge, validator integration.SchemaValidator) *OrderBridgeHandler {
	return &OrderBridgeHandler{
		bridge:    bridge,
		validator: validator,
	}
}

// PlaceOrder godoc
// @ID           placeOrder
//
//	@Summary		Place a marketplace order
//	@Description	Validates a normalized marketplace order, merges the merchant config and creates the order on the storefront. A phone rejection is retried once with every phone number removed.
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			store-id	header		string	true	"Storefront identifier"
//	@Param			token		header		string	true	"Storefront access token"
//	@Param			request		body		validation.PlaceOrderRequest	true	"Normalized order and optional merchant config"
//	@Success		200			{object}	dto.Response{data=BridgePlaceOrderResponse}
//	@Failure		400			{object}	dto.Response
//	@Failure		401			{object}	dto.Response
//	@Failure		409			{object}	dto.Response
//	@Failure		413			{object}	dto.Response
//	@Failure		502			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/place_order [post]
func (h *OrderBridgeHandler) PlaceOrder(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.Error(c, dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size")
			return
		}
		h.BadRequest(c, "could not read request body")
		return
	}

	if issues := h.validator.Validate(json.RawMessage(body), validation.SchemaPlaceOrder); len(issues) > 0 {
		h.ValidationError(c, issues)
		return
	}

	var req validation.PlaceOrderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.bridge.PlaceOrder(c.Request.Context(), getStoreCredentials(c), req.Order, req.Config)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, appintegration.ToPlaceOrderResponse(result))
}

// GetOrderStatuses godoc
// @ID           getOrderStatuses
//
//	@Summary		Get order statuses
//	@Description	Reports fulfillment, tracking and cancellation state per order line. Ids the storefront did not return are listed in failed_ids.
//	@Tags			orders
//	@Produce		json
//	@Param			store-id	header		string	true	"Storefront identifier"
//	@Param			token		header		string	true	"Storefront access token"
//	@Param			channel_order_ids	query		string	true	"Comma separated storefront order ids"
//	@Success		200					{object}	dto.Response{data=BridgeOrderStatusesResponse}
//	@Failure		400					{object}	dto.Response
//	@Failure		401					{object}	dto.Response
//	@Failure		502					{object}	dto.Response
//	@Router			/order_statuses [get]
func (h *OrderBridgeHandler) GetOrderStatuses(c *gin.Context) {
	query := c.Request.URL.Query()
	if issues := h.validator.Validate(query, validation.SchemaOrderStatusesQuery); len(issues) > 0 {
		h.ValidationError(c, issues)
		return
	}

	ids := validation.ParseIDList(query.Get("channel_order_ids"))
	result, err := h.bridge.GetOrderStatuses(c.Request.Context(), getStoreCredentials(c), ids)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, appintegration.ToOrderStatusesResponse(result))
}

// GetOrderRefunds godoc
// @ID           getOrderRefunds
//
//	@Summary		List refund events
//	@Description	Extracts refund events from storefront orders updated between start_date and end_date
//	@Tags			refunds
//	@Produce		json
//	@Param			store-id	header		string	true	"Storefront identifier"
//	@Param			token		header		string	true	"Storefront access token"
//	@Param			start_date	query		string	true	"Range start (RFC 3339 or YYYY-MM-DD)"
//	@Param			end_date	query		string	true	"Range end (RFC 3339 or YYYY-MM-DD)"
//	@Success		200			{object}	dto.Response{data=integration.RefundBatch}
//	@Failure		400			{object}	dto.Response
//	@Failure		401			{object}	dto.Response
//	@Failure		502			{object}	dto.Response
//	@Router			/order_refunds [get]
func (h *OrderBridgeHandler) GetOrderRefunds(c *gin.Context) {
	query := c.Request.URL.Query()
	if issues := h.validator.Validate(query, validation.SchemaOrderRefundsQuery); len(issues) > 0 {
		h.ValidationError(c, issues)
		return
	}

	// both dates passed the flexdate rule
	start, _ := validation.ParseDate(query.Get("start_date"))
	end, _ := validation.ParseDate(query.Get("end_date"))

	batch, err := h.bridge.GetRefunds(c.Request.Context(), getStoreCredentials(c), start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, batch)
}

// ListOrders godoc
// @ID           listOrders
//
//	@Summary		List storefront orders
//	@Description	Lists storefront orders created since start_date, converted to the normalized order shape
//	@Tags			orders
//	@Produce		json
//	@Param			store-id	header		string	true	"Storefront identifier"
//	@Param			token		header		string	true	"Storefront access token"
//	@Param			start_date	query		string	true	"Earliest creation time (RFC 3339 or YYYY-MM-DD)"
//	@Success		200			{object}	dto.Response{data=BridgeOrdersResponse}
//	@Failure		400			{object}	dto.Response
//	@Failure		401			{object}	dto.Response
//	@Failure		502			{object}	dto.Response
//	@Router			/orders [get]
func (h *OrderBridgeHandler) ListOrders(c *gin.Context) {
	query := c.Request.URL.Query()
	if issues := h.validator.Validate(query, validation.SchemaOrdersQuery); len(issues) > 0 {
		h.ValidationError(c, issues)
		return
	}

	since, _ := validation.ParseDate(query.Get("start_date"))
	result, err := h.bridge.ListOrders(c.Request.Context(), getStoreCredentials(c), since)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, appintegration.ToOrdersResponse(result))
}

// ListSyncRecords godoc
// @ID           listSyncRecords
//
//	@Summary		List sync records
//	@Description	Lists the store's place_order attempts, newest first
//	@Tags			sync-records
//	@Produce		json
//	@Param			store-id	header		string	true	"Storefront identifier"
//	@Param			token		header		string	true	"Storefront access token"
//	@Param			status		query		string	false	"Attempt outcome"	Enums(PENDING, SUCCESS, FAILED)
//	@Param			start_date	query		string	false	"Earliest attempt time"
//	@Param			end_date	query		string	false	"Latest attempt time"
//	@Param			page		query		int		false	"Page number"	default(1)
//	@Param			page_size	query		int		false	"Page size"		default(20)
//	@Success		200			{object}	dto.Response{data=[]BridgeSyncRecordResponse,meta=dto.Meta}
//	@Failure		400			{object}	dto.Response
//	@Failure		401			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Router			/sync_records [get]
func (h *OrderBridgeHandler) ListSyncRecords(c *gin.Context) {
	query := c.Request.URL.Query()
	if issues := h.validator.Validate(query, validation.SchemaSyncRecordsQuery); len(issues) > 0 {
		h.ValidationError(c, issues)
		return
	}

	var filter integration.OrderSyncRecordFilter
	if s := query.Get("status"); s != "" {
		status := integration.SyncStatus(s)
		filter.Status = &status
	}
	if s := query.Get("start_date"); s != "" {
		t, _ := validation.ParseDate(s)
		filter.StartTime = &t
	}
	if s := query.Get("end_date"); s != "" {
		t, _ := validation.ParseDate(s)
		filter.EndTime = &t
	}
	filter.Page, _ = strconv.Atoi(query.Get("page"))
	filter.PageSize, _ = strconv.Atoi(query.Get("page_size"))
	filter = filter.Normalized()

	storeID := getStoreCredentials(c).StoreID
	records, total, err := h.bridge.ListSyncRecords(c.Request.Context(), storeID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, appintegration.ToSyncRecordResponses(records), total, filter.Page, filter.PageSize)
}

// GetSyncRecord godoc
// @ID           getSyncRecord
//
//	@Summary		Get a sync record
//	@Description	Returns the latest place_order attempt for a marketplace order number
//	@Tags			sync-records
//	@Produce		json
//	@Param			store-id	header		string	true	"Storefront identifier"
//	@Param			token		header		string	true	"Storefront access token"
//	@Param			mp_order_number	path		string	true	"Marketplace order number"
//	@Success		200				{object}	dto.Response{data=BridgeSyncRecordResponse}
//	@Failure		401				{object}	dto.Response
//	@Failure		404				{object}	dto.Response
//	@Router			/sync_records/{mp_order_number} [get]
func (h *OrderBridgeHandler) GetSyncRecord(c *gin.Context) {
	storeID := getStoreCredentials(c).StoreID
	record, err := h.bridge.GetSyncRecord(c.Request.Context(), storeID, c.Param("mp_order_number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, appintegration.ToSyncRecordResponse(record))
}

// RegisterRoutes mounts the bridge endpoints on rg
func (h *OrderBridgeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/place_order", h.PlaceOrder)
	rg.GET("/order_statuses", h.GetOrderStatuses)
	rg.GET("/order_refunds", h.GetOrderRefunds)
	rg.GET("/orders", h.ListOrders)
	rg.GET("/sync_records", h.ListSyncRecords)
	rg.GET("/sync_records/:mp_order_number", h.GetSyncRecord)
}
