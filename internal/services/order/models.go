package order

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Order collections. Each order variant lives in its own collection.
const (
	RegularOrdersCollection  = "regularOrders"
	CustomOrdersCollection   = "customOrders"
	CateringOrdersCollection = "cateringOrders"
)

// Delivery methods.
const (
	PickUp   = "Pick Up"
	Delivery = "Delivery"
)

// Payment methods for regular orders.
const (
	OnlinePayment = "Online Payment"
	InPerson      = "In Person"
)

// Custom order kinds.
const (
	CakeOrder  = "Cake"
	OtherOrder = "Other"
)

// scalarText renders a JSON scalar as its string form. The field checks
// coerce the same way, so anything they accepted decodes here too: a zip of
// 12345 and a zip of "12345" are the same address component.
func scalarText(data []byte) (string, error) {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		return text, nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return "", fmt.Errorf("expected a string or number, got %s", data)
	}
	return number.String(), nil
}

// scalarTexts decodes a JSON array of scalars into their string forms.
func scalarTexts(data []byte, want int, what string) ([]string, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return nil, err
	}
	if len(parts) != want {
		return nil, fmt.Errorf("%s must have %d components, got %d", what, want, len(parts))
	}
	texts := make([]string, want)
	for i, raw := range parts {
		text, err := scalarText(raw)
		if err != nil {
			return nil, fmt.Errorf("%s component %d: %w", what, i, err)
		}
		texts[i] = text
	}
	return texts, nil
}

// Address is a five-component delivery address. On the wire it is a JSON
// array: [line1, line2, city, state, zip].
type Address struct {
	Line1 string
	Line2 string
	City  string
	State string
	Zip   string
}

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string{a.Line1, a.Line2, a.City, a.State, a.Zip})
}

func (a *Address) UnmarshalJSON(data []byte) error {
	parts, err := scalarTexts(data, 5, "address")
	if err != nil {
		return err
	}
	a.Line1, a.Line2, a.City, a.State, a.Zip = parts[0], parts[1], parts[2], parts[3], parts[4]
	return nil
}

// CateringAddress is the four-component variant used by catering orders:
// [line1, city, state, zip].
type CateringAddress struct {
	Line1 string
	City  string
	State string
	Zip   string
}

func (a CateringAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string{a.Line1, a.City, a.State, a.Zip})
}

func (a *CateringAddress) UnmarshalJSON(data []byte) error {
	parts, err := scalarTexts(data, 4, "catering address")
	if err != nil {
		return err
	}
	a.Line1, a.City, a.State, a.Zip = parts[0], parts[1], parts[2], parts[3]
	return nil
}

// Totals holds the three components of a regular order total. On the wire it
// is a JSON array: [subtotal, tax, grandTotal].
type Totals struct {
	Subtotal   float64
	Tax        float64
	GrandTotal float64
}

func (t Totals) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float64{t.Subtotal, t.Tax, t.GrandTotal})
}

func (t *Totals) UnmarshalJSON(data []byte) error {
	parts, err := scalarTexts(data, 3, "total")
	if err != nil {
		return err
	}
	values := [3]float64{}
	for i, text := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return fmt.Errorf("total component %d is not numeric: %q", i, text)
		}
		values[i] = value
	}
	t.Subtotal, t.Tax, t.GrandTotal = values[0], values[1], values[2]
	return nil
}

// CakeDetails describes a cake request. On the wire it is a JSON array:
// [cakeType, sizeOrShapeOrLetter, color, message].
type CakeDetails struct {
	CakeType            string
	SizeOrShapeOrLetter string
	Color               string
	Message             string
}

func (d CakeDetails) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string{d.CakeType, d.SizeOrShapeOrLetter, d.Color, d.Message})
}

func (d *CakeDetails) UnmarshalJSON(data []byte) error {
	var parts []string
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	if len(parts) != 4 {
		return fmt.Errorf("cake details must have 4 components, got %d", len(parts))
	}
	d.CakeType, d.SizeOrShapeOrLetter, d.Color, d.Message = parts[0], parts[1], parts[2], parts[3]
	return nil
}

// OrderDetails is the orderType-discriminated payload of a custom order:
// structured cake details for Cake orders, free text for Other orders.
type OrderDetails struct {
	Cake *CakeDetails
	Text string
}

func (d OrderDetails) MarshalJSON() ([]byte, error) {
	if d.Cake != nil {
		return json.Marshal(d.Cake)
	}
	return json.Marshal(d.Text)
}

func (d *OrderDetails) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		d.Text = text
		d.Cake = nil
		return nil
	}
	cake := &CakeDetails{}
	if err := json.Unmarshal(data, cake); err != nil {
		return fmt.Errorf("order details must be a string or a 4-component array: %w", err)
	}
	d.Cake = cake
	return nil
}

// GuestCount accepts either a JSON string or a JSON number on the wire.
type GuestCount string

func (g GuestCount) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(g))
}

func (g *GuestCount) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*g = GuestCount(text)
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("guest count must be a string or number: %w", err)
	}
	*g = GuestCount(number.String())
	return nil
}

// RegularOrder is a menu order, paid online or in person. Last4 is only ever
// set on the online payment path and is stripped from every response.
type RegularOrder struct {
	ID             string        `json:"-"`
	OrderTime      string        `json:"orderTime"`
	Name           string        `json:"name"`
	DeliveryMethod string        `json:"deliveryMethod"`
	PaymentMethod  string        `json:"paymentMethod"`
	DateForOrder   string        `json:"dateForOrder"`
	Address        *Address      `json:"address,omitempty"`
	Email          string        `json:"email"`
	Phone          string        `json:"phone"`
	Total          Totals        `json:"total"`
	Cart           []interface{} `json:"cart"`
	Last4          string        `json:"last4,omitempty"`
}

// CustomOrder is a made-to-order request (cake or free-form).
type CustomOrder struct {
	ID             string       `json:"-"`
	OrderTime      string       `json:"orderTime"`
	OrderType      string       `json:"orderType"`
	OrderDetails   OrderDetails `json:"orderDetails"`
	Name           string       `json:"name"`
	DeliveryMethod string       `json:"deliveryMethod"`
	DateForOrder   string       `json:"dateForOrder"`
	Address        *Address     `json:"address,omitempty"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone"`
}

// CateringOrder is an event catering request.
type CateringOrder struct {
	ID             string           `json:"-"`
	OrderTime      string           `json:"orderTime"`
	Name           string           `json:"name"`
	EventType      string           `json:"eventType"`
	GuestNum       GuestCount       `json:"guestNum"`
	DeliveryMethod string           `json:"deliveryMethod"`
	DateForOrder   string           `json:"dateForOrder"`
	Address        *CateringAddress `json:"address,omitempty"`
	Email          string           `json:"email"`
	Phone          string           `json:"phone"`
	Message        string           `json:"message"`
}

// onlineSubmission is the wire shape of an online payment submission: the
// order fields plus the client-side payment method token under "id".
type onlineSubmission struct {
	PaymentToken string `json:"id"`
	RegularOrder
}
