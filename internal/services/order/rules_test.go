package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakeshop/internal/validation"
)

func baseCashOrder() validation.Document {
	return validation.Document{
		"orderTime":      "Jan 2, 2024 10:00",
		"name":           "Jane Smith",
		"deliveryMethod": "Pick Up",
		"paymentMethod":  "In Person",
		"dateForOrder":   "Jan 5, 2024",
		"email":          "jane@example.com",
		"phone":          "555-123-4567",
		"total":          []interface{}{10.0, 1.0, 11.0},
		"cart":           []interface{}{map[string]interface{}{"itemName": "Scone", "quantity": 1.0}},
	}
}

func fieldsOf(errs validation.Errors) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestRegularCashRules_ValidOrder(t *testing.T) {
	assert.Empty(t, regularCashRules.Validate(baseCashOrder()))
}

func TestRegularCashRules_Name(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		message string
	}{
		{"digits rejected", "Jane Sm1th", "Name must contain letters only"},
		{"symbols rejected", "Jane Smith!!", "Name must contain letters only"},
		{"too short", "Jane", "Name (First and Last together) must be 6-65 characters"},
		{"empty", "", "Name field is empty"},
		{"whitespace only", "   ", "Name field is empty"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := baseCashOrder()
			doc["name"] = tc.value
			errs := regularCashRules.Validate(doc)
			require.Len(t, errs, 1)
			assert.Equal(t, "name", errs[0].Field)
			assert.Equal(t, tc.message, errs[0].Message)
		})
	}

	for _, ok := range []string{"Mary Su", "Jane Smith", "Anne Marie Van Der Berg"} {
		doc := baseCashOrder()
		doc["name"] = ok
		assert.Empty(t, regularCashRules.Validate(doc), "expected %q to pass", ok)
	}
}

func TestRegularCashRules_DateForOrder(t *testing.T) {
	valid := []string{"Jan 5, 2024", "Dec 25, 2024", "Feb 14, 2025"}
	for _, v := range valid {
		doc := baseCashOrder()
		doc["dateForOrder"] = v
		assert.Empty(t, regularCashRules.Validate(doc), "expected %q to pass", v)
	}

	invalid := []string{"January 5, 2024", "Jan 05 2024", "2024-01-05", "Jan 5 2024"}
	for _, v := range invalid {
		doc := baseCashOrder()
		doc["dateForOrder"] = v
		errs := regularCashRules.Validate(doc)
		require.Len(t, errs, 1, "expected %q to fail", v)
		assert.Equal(t, "Date for order is invalid", errs[0].Message)
	}
}

func TestRegularRules_PaymentMethodMustMatchVariant(t *testing.T) {
	doc := baseCashOrder()
	doc["paymentMethod"] = "Online Payment"
	errs := regularCashRules.Validate(doc)
	require.Len(t, errs, 1)
	assert.Equal(t, "paymentMethod", errs[0].Field)

	doc["paymentMethod"] = "In Person"
	errs = regularOnlineRules.Validate(doc)
	require.Len(t, errs, 1)
	assert.Equal(t, "Payment Method invalid", errs[0].Message)
}

func TestRegularCashRules_AddressSkippedOnPickup(t *testing.T) {
	doc := baseCashOrder()
	// address contents are irrelevant when the order is picked up
	doc["address"] = []interface{}{"", "", "", "", ""}
	assert.Empty(t, regularCashRules.Validate(doc))
}

func TestRegularCashRules_AddressRequiredOnDelivery(t *testing.T) {
	doc := baseCashOrder()
	doc["deliveryMethod"] = "Delivery"
	errs := regularCashRules.Validate(doc)
	assert.Equal(t, []string{"address.0", "address.2", "address.3", "address.4"}, fieldsOf(errs))

	doc["address"] = []interface{}{"12 Main St.", "", "Springfield", "NY", "12345"}
	assert.Empty(t, regularCashRules.Validate(doc))

	doc["address"] = []interface{}{"12 Main St.", "", "Springfield", "New York", "12345"}
	errs = regularCashRules.Validate(doc)
	require.Len(t, errs, 1)
	assert.Equal(t, "State must be 2 letter abbreviation", errs[0].Message)
}

func TestCustomOrderRules_CakeDetails(t *testing.T) {
	doc := validation.Document{
		"orderTime":      "Jan 2, 2024 10:00",
		"orderType":      "Cake",
		"orderDetails":   []interface{}{"Standard Cake", "8 Inches", "Pastel blue", "Happy birthday with sprinkles"},
		"name":           "Jane Smith",
		"deliveryMethod": "Pick Up",
		"dateForOrder":   "Jan 15, 2024",
		"email":          "jane@example.com",
		"phone":          "555-123-4567",
	}
	assert.Empty(t, customOrderRules.Validate(doc))

	doc["orderDetails"] = []interface{}{"Sheet Cake", "8 Inches", "Pastel blue", "Happy birthday with sprinkles"}
	errs := customOrderRules.Validate(doc)
	require.Len(t, errs, 1)
	assert.Equal(t, "Invalid Cake Type", errs[0].Message)
}

func TestCustomOrderRules_OtherDetails(t *testing.T) {
	doc := validation.Document{
		"orderTime":      "Jan 2, 2024 10:00",
		"orderType":      "Other",
		"orderDetails":   "Two dozen assorted macarons in a gift box",
		"name":           "Jane Smith",
		"deliveryMethod": "Pick Up",
		"dateForOrder":   "Jan 15, 2024",
		"email":          "jane@example.com",
		"phone":          "555-123-4567",
	}
	assert.Empty(t, customOrderRules.Validate(doc))

	doc["orderDetails"] = "too short"
	errs := customOrderRules.Validate(doc)
	require.Len(t, errs, 1)
	assert.Equal(t, "orderDetails", errs[0].Field)
	assert.Equal(t, "Other order message must be between 10-300 characters", errs[0].Message)
}

func TestCateringRules_GuestNum(t *testing.T) {
	base := func() validation.Document {
		return validation.Document{
			"orderTime":      "Jan 2, 2024 10:00",
			"name":           "Jane Smith",
			"eventType":      "Birthday Party",
			"guestNum":       "25",
			"deliveryMethod": "Pick Up",
			"dateForOrder":   "Jan 20, 2024",
			"email":          "jane@example.com",
			"phone":          "555-123-4567",
			"message":        "Assorted cupcakes and two letter cakes please",
		}
	}
	assert.Empty(t, cateringOrderRules.Validate(base()))

	doc := base()
	doc["guestNum"] = "1200"
	errs := cateringOrderRules.Validate(doc)
	require.Len(t, errs, 1)
	assert.Equal(t, "Number of Guests cant be more than 3 digits", errs[0].Message)

	doc = base()
	doc["guestNum"] = "many"
	errs = cateringOrderRules.Validate(doc)
	require.Len(t, errs, 1)
	assert.Equal(t, "Number of Guests must contain numbers only", errs[0].Message)

	// numeric payloads are accepted alongside strings
	doc = base()
	doc["guestNum"] = 25.0
	assert.Empty(t, cateringOrderRules.Validate(doc))
}

func TestRulesAccumulateAcrossFields(t *testing.T) {
	doc := baseCashOrder()
	doc["name"] = ""
	doc["phone"] = ""
	doc["email"] = ""
	errs := regularCashRules.Validate(doc)
	assert.Equal(t, []string{"name", "email", "phone"}, fieldsOf(errs))
}
