package validation

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/orderbridge/internal/domain/integration"
)

const validPlaceOrder = `{
	"order": {
		"marketplace_name": "Walmart",
		"mp_order_number": "W-1",
		"customer_email": "buyer@example.com",
		"customer_phone": null,
		"shipping_full_name": "Jane Doe",
		"shipping_address1": "1 Main St",
		"shipping_city": "Austin",
		"shipping_postal_code": "78701",
		"shipping_country_code": "US",
		"order_lines": [
			{"sku": "A", "quantity": 2, "unit_price": "10.00", "sales_tax": 1.6}
		]
	},
	"config": {"transactions": true}
}`

func issueCodes(issues []integration.ValidationIssue) []string {
	codes := make([]string, 0, len(issues))
	for _, issue := range issues {
		codes = append(codes, issue.Code)
	}
	return codes
}

func TestValidate_PlaceOrder(t *testing.T) {
	v := New()
	assert.Empty(t, v.Validate([]byte(validPlaceOrder), SchemaPlaceOrder))
}

func TestValidate_PlaceOrderIssues(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(string) string
		code     string
		contains string
	}{
		{
			name:     "missing sku",
			mutate:   func(s string) string { return strings.Replace(s, `"sku": "A"`, `"sku": ""`, 1) },
			code:     integration.IssueMissingRequiredField,
			contains: "order.order_lines[0].sku",
		},
		{
			name:     "bad email",
			mutate:   func(s string) string { return strings.Replace(s, "buyer@example.com", "not-an-email", 1) },
			code:     integration.IssueFieldInvalidValue,
			contains: "order.customer_email",
		},
		{
			name:     "negative quantity",
			mutate:   func(s string) string { return strings.Replace(s, `"quantity": 2`, `"quantity": -1`, 1) },
			code:     integration.IssueFieldInvalidValue,
			contains: "order.order_lines[0].quantity",
		},
		{
			name:     "missing city in embedded shipping info",
			mutate:   func(s string) string { return strings.Replace(s, `"shipping_city": "Austin",`, "", 1) },
			code:     integration.IssueMissingRequiredField,
			contains: "order.shipping_city",
		},
		{
			name:     "no lines",
			mutate:   func(s string) string { return s[:strings.Index(s, `"order_lines"`)] + `"order_lines": []}}` },
			code:     integration.IssueFieldInvalidValue,
			contains: "order.order_lines",
		},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := v.Validate([]byte(tt.mutate(validPlaceOrder)), SchemaPlaceOrder)
			require.Len(t, issues, 1)
			assert.Equal(t, tt.code, issues[0].Code)
			assert.Contains(t, issues[0].Message, tt.contains)
		})
	}
}

func TestValidate_PlaceOrderStructure(t *testing.T) {
	v := New()

	issues := v.Validate([]byte(`{"config": {}}`), SchemaPlaceOrder)
	require.Len(t, issues, 1)
	assert.Equal(t, integration.IssueMissingRequiredField, issues[0].Code)
	assert.Equal(t, "order is required", issues[0].Message)

	issues = v.Validate([]byte(`{"order": `), SchemaPlaceOrder)
	assert.Equal(t, []string{integration.IssueInvalidPayload}, issueCodes(issues))

	issues = v.Validate(nil, SchemaPlaceOrder)
	assert.Equal(t, []string{integration.IssueInvalidPayload}, issueCodes(issues))

	issues = v.Validate([]byte(`{}`), "Nope")
	assert.Equal(t, []string{integration.IssueInvalidPayload}, issueCodes(issues))
}

func TestValidate_TypedDocument(t *testing.T) {
	v := New()
	assert.Empty(t, v.Validate(&OrdersQuery{StartDate: "2024-03-01"}, SchemaOrdersQuery))
	assert.NotEmpty(t, v.Validate(&OrdersQuery{}, SchemaOrdersQuery))
	assert.Empty(t, v.Validate(map[string]string{"start_date": "2024-03-01"}, SchemaOrdersQuery))
}

func TestValidate_OrderStatusesQuery(t *testing.T) {
	tooMany := make([]string, MaxChannelOrderIDs+1)
	for i := range tooMany {
		tooMany[i] = "1"
	}

	tests := []struct {
		name  string
		query url.Values
		codes []string
	}{
		{"valid", url.Values{"channel_order_ids": {"1, 2,3"}}, []string{}},
		{"missing", url.Values{}, []string{integration.IssueMissingQueryParam}},
		{"only commas", url.Values{"channel_order_ids": {",,"}}, []string{integration.IssueInvalidQueryParam}},
		{"not numeric", url.Values{"channel_order_ids": {"1,abc"}}, []string{integration.IssueInvalidQueryParam}},
		{"too many", url.Values{"channel_order_ids": {strings.Join(tooMany, ",")}}, []string{integration.IssueInvalidQueryParam}},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.codes, issueCodes(v.Validate(tt.query, SchemaOrderStatusesQuery)))
		})
	}
}

func TestValidate_OrderRefundsQuery(t *testing.T) {
	tests := []struct {
		name  string
		query url.Values
		codes []string
	}{
		{"valid", url.Values{"start_date": {"2024-03-01"}, "end_date": {"2024-03-02T10:00:00Z"}}, []string{}},
		{"missing end", url.Values{"start_date": {"2024-03-01"}}, []string{integration.IssueMissingQueryParam}},
		{"bad start", url.Values{"start_date": {"yesterday"}, "end_date": {"2024-03-02"}}, []string{integration.IssueInvalidQueryParam}},
		{"end before start", url.Values{"start_date": {"2024-03-02"}, "end_date": {"2024-03-01"}}, []string{integration.IssueInvalidQueryParam}},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.codes, issueCodes(v.Validate(tt.query, SchemaOrderRefundsQuery)))
		})
	}
}

func TestValidate_SyncRecordsQuery(t *testing.T) {
	tests := []struct {
		name  string
		query url.Values
		codes []string
	}{
		{"empty", url.Values{}, []string{}},
		{"full", url.Values{"status": {"FAILED"}, "start_date": {"2024-03-01"}, "page": {"2"}, "page_size": {"50"}}, []string{}},
		{"unknown status", url.Values{"status": {"DONE"}}, []string{integration.IssueInvalidQueryParam}},
		{"negative page", url.Values{"page": {"-1"}}, []string{integration.IssueInvalidQueryParam}},
		{"bad date and size", url.Values{"end_date": {"soon"}, "page_size": {"ten"}}, []string{integration.IssueInvalidQueryParam, integration.IssueInvalidQueryParam}},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.codes, issueCodes(v.Validate(tt.query, SchemaSyncRecordsQuery)))
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Time
	}{
		{"2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-03-01T10:20:30", time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC)},
		{"2024-03-01 10:20:30", time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC)},
		{"2024-03-01T10:20:30-05:00", time.Date(2024, 3, 1, 15, 20, 30, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			parsed, err := ParseDate(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(parsed))
		})
	}

	_, err := ParseDate("03/01/2024")
	assert.Error(t, err)
}

func TestParseIDList(t *testing.T) {
	assert.Equal(t, []string{"1", "2"}, ParseIDList(" 1 ,, 2,"))
	assert.Empty(t, ParseIDList(""))
}
