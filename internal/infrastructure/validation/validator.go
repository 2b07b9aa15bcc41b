// Package validation checks inbound documents against named schemas using
// go-playground/validator.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"
	"unicode"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/erp/orderbridge/internal/domain/integration"
)

// Schema names
const (
	SchemaPlaceOrder         = "PlaceOrder"
	SchemaOrderStatusesQuery = "OrderStatusesQuery"
	SchemaOrderRefundsQuery  = "OrderRefundsQuery"
	SchemaOrdersQuery        = "OrdersQuery"
	SchemaSyncRecordsQuery   = "SyncRecordsQuery"
)

// MaxChannelOrderIDs bounds the channel_order_ids list of a status lookup
const MaxChannelOrderIDs = 250

// dateLayouts are tried in order by ParseDate
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type schema struct {
	newDocument func() any
	// query schemas report missing/invalid query params instead of fields
	query bool
}

// SchemaValidator implements integration.SchemaValidator
type SchemaValidator struct {
	validate *validatorv10.Validate
	schemas  map[string]schema
}

// New returns a validator with the request schemas and custom rules registered
func New() *SchemaValidator {
	v := validatorv10.New()

	// report JSON names so issues match the wire document
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("flexdate", func(fl validatorv10.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("id_list", func(fl validatorv10.FieldLevel) bool {
		ids := ParseIDList(fl.Field().String())
		if len(ids) == 0 || len(ids) > MaxChannelOrderIDs {
			return false
		}
		for _, id := range ids {
			if strings.IndexFunc(id, func(r rune) bool { return !unicode.IsDigit(r) }) >= 0 {
				return false
			}
		}
		return true
	})
	v.RegisterStructValidation(refundsRangeValidation, OrderRefundsQuery{})

	return &SchemaValidator{
		validate: v,
		schemas: map[string]schema{
			SchemaPlaceOrder:         {newDocument: func() any { return &PlaceOrderRequest{} }},
			SchemaOrderStatusesQuery: {newDocument: func() any { return &OrderStatusesQuery{} }, query: true},
			SchemaOrderRefundsQuery:  {newDocument: func() any { return &OrderRefundsQuery{} }, query: true},
			SchemaOrdersQuery:        {newDocument: func() any { return &OrdersQuery{} }, query: true},
			SchemaSyncRecordsQuery:   {newDocument: func() any { return &SyncRecordsQuery{} }, query: true},
		},
	}
}

// refundsRangeValidation rejects an end date before the start date
func refundsRangeValidation(sl validatorv10.StructLevel) {
	q := sl.Current().Interface().(OrderRefundsQuery)
	start, errStart := ParseDate(q.StartDate)
	end, errEnd := ParseDate(q.EndDate)
	if errStart != nil || errEnd != nil {
		return
	}
	if end.Before(start) {
		sl.ReportError(q.EndDate, "end_date", "EndDate", "date_order", "")
	}
}

// Validate checks document against the named schema. The document may be raw
// JSON, url.Values, a decoded value, or a pointer to the schema's own type.
func (s *SchemaValidator) Validate(document any, schemaName string) []integration.ValidationIssue {
	sc, ok := s.schemas[schemaName]
	if !ok {
		return []integration.ValidationIssue{{
			Code:    integration.IssueInvalidPayload,
			Message: fmt.Sprintf("unknown schema %q", schemaName),
		}}
	}

	target := sc.newDocument()
	if reflect.TypeOf(document) == reflect.TypeOf(target) {
		target = document
	} else if err := decodeInto(document, target); err != nil {
		return []integration.ValidationIssue{{
			Code:    integration.IssueInvalidPayload,
			Message: err.Error(),
		}}
	}

	err := s.validate.Struct(target)
	if err == nil {
		return nil
	}

	var fieldErrors validatorv10.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return []integration.ValidationIssue{{Code: integration.IssueInvalidPayload, Message: err.Error()}}
	}

	issues := make([]integration.ValidationIssue, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		issues = append(issues, toIssue(fe, sc.query))
	}
	return issues
}

func toIssue(fe validatorv10.FieldError, query bool) integration.ValidationIssue {
	path := fieldPath(fe.Namespace())
	missing := fe.Tag() == "required"

	var code string
	switch {
	case query && missing:
		code = integration.IssueMissingQueryParam
	case query:
		code = integration.IssueInvalidQueryParam
	case missing:
		code = integration.IssueMissingRequiredField
	default:
		code = integration.IssueFieldInvalidValue
	}

	message := fmt.Sprintf("%s is required", path)
	if !missing {
		message = fmt.Sprintf("%s failed %q validation", path, fe.Tag())
	}
	return integration.ValidationIssue{Code: code, Message: message}
}

// fieldPath drops Go type and embedded struct names from a namespace,
// leaving the JSON path: "PlaceOrderRequest.order.ShippingInfo.shipping_city"
// becomes "order.shipping_city".
func fieldPath(namespace string) string {
	segments := strings.Split(namespace, ".")
	kept := segments[:0]
	for _, seg := range segments {
		if seg != "" && unicode.IsUpper([]rune(seg)[0]) {
			continue
		}
		kept = append(kept, seg)
	}
	return strings.Join(kept, ".")
}

func decodeInto(document, target any) error {
	var raw []byte
	switch d := document.(type) {
	case nil:
		return errors.New("document is empty")
	case []byte:
		raw = d
	case json.RawMessage:
		raw = d
	case url.Values:
		flat := make(map[string]string, len(d))
		for k := range d {
			flat[k] = d.Get(k)
		}
		raw, _ = json.Marshal(flat)
	default:
		encoded, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("document is not encodable: %w", err)
		}
		raw = encoded
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("document is not valid JSON for this schema: %w", err)
	}
	return nil
}

// ParseDate parses RFC 3339 timestamps, naive timestamps (UTC) and plain dates
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", value)
}

// ParseIDList splits a comma separated id list, dropping blanks
func ParseIDList(value string) []string {
	var ids []string
	for _, id := range strings.Split(value, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

var _ integration.SchemaValidator = (*SchemaValidator)(nil)
