package order

import (
	"bakeshop/internal/validation"
)

// Field patterns shared by the order rule sets. Dates are the storefront's
// textual form: "Jan 5, 2024".
const (
	namePattern     = `[A-Za-z\s]+`
	datePattern     = `[A-Z][a-z][a-z]\s([1-3][0-9]|[1-9]),\s[0-9][0-9][0-9][0-9]`
	freeTextPattern = `[A-Za-z0-9\W\s]+`
	streetPattern   = `[A-Za-z0-9\.\,\-\s]+`
	cityPattern     = `[A-Za-z0-9\-\s]+`
)

func nameField() validation.Rule {
	return validation.Field("name",
		validation.Required("Name field is empty"),
		validation.Length(6, 65, "Name (First and Last together) must be 6-65 characters"),
		validation.Matches(namePattern, "Name must contain letters only"),
	)
}

func deliveryMethodField() validation.Rule {
	return validation.Field("deliveryMethod",
		validation.Required("Delivery Method field is empty"),
		validation.Matches(`(Pick Up)|(Delivery)`, "Delivery Method invalid"),
	)
}

func phoneField() validation.Rule {
	return validation.Field("phone",
		validation.Required("Phone field is empty"),
		validation.Phone("Invalid phone number"),
	)
}

// addressBlock is the five-field address validated for regular and custom
// orders, skipped entirely when the order is picked up.
func addressBlock() validation.Rule {
	return validation.Group("deliveryMethod", PickUp,
		validation.Field("address.0",
			validation.Required("Address field is empty"),
			validation.Length(5, 65, "Address must be between 5-65 characters"),
			validation.Matches(streetPattern, "Address is invalid"),
		),
		validation.Field("address.1",
			validation.Matches(`^$|^`+streetPattern+`$`, "Apt field contains an invalid character"),
			validation.MaxLength(15, "Apt must be less than 15 characters"),
		),
		validation.Field("address.2",
			validation.Required("City field is empty"),
			validation.Length(3, 30, "City must be between 3-30 characters"),
			validation.Matches(cityPattern, "City contains invalid character"),
		),
		validation.Field("address.3",
			validation.Required("State field is empty"),
			validation.Length(2, 2, "State must be 2 letter abbreviation"),
			validation.Alpha("State is invalid"),
		),
		validation.Field("address.4",
			validation.Required("Zip code field is empty"),
			validation.Length(5, 5, "Zip code must be 5 digits"),
			validation.ZipCode("Zip code is invalid"),
		),
	)
}

func totalFields() []validation.Rule {
	rules := make([]validation.Rule, 0, 3)
	for _, path := range []string{"total.0", "total.1", "total.2"} {
		rules = append(rules, validation.Field(path,
			validation.Required("Total Field is incomplete"),
			validation.Numeric("Invalid total"),
		))
	}
	return rules
}

// regularOrderRules builds the shared rule set for regular orders; the
// accepted payment method is the only difference between the online and
// cash variants.
func regularOrderRules(paymentMethod string) validation.RuleSet {
	rules := validation.RuleSet{
		nameField(),
		deliveryMethodField(),
		validation.Field("paymentMethod",
			validation.Required("Payment Method field is empty"),
			validation.Equals(paymentMethod, "Payment Method invalid"),
		),
		validation.Field("dateForOrder",
			validation.Required("Date For Order field is empty"),
			validation.Matches(datePattern, "Date for order is invalid"),
		),
		addressBlock(),
		validation.Field("email",
			validation.Required("Email field is empty"),
			validation.MinLength(3, "Email must be at least 3 characters long"),
			validation.Email("Email is invalid"),
		),
		phoneField(),
	}
	rules = append(rules, totalFields()...)
	rules = append(rules, validation.Field("cart",
		validation.Required("Cart is empty"),
		validation.Array("Invalid cart"),
	))
	return rules
}

var (
	regularOnlineRules = regularOrderRules(OnlinePayment)
	regularCashRules   = regularOrderRules(InPerson)
)

var customOrderRules = validation.RuleSet{
	validation.Field("orderType",
		validation.Required("Order Type was not selected"),
		validation.Matches(`(Cake)|(Other)`, "Invalid Order Type"),
	),
	validation.Switch("orderType", map[string][]validation.Rule{
		CakeOrder: {
			validation.Field("orderDetails.0",
				validation.Required("Cake type field is empty"),
				validation.Matches(`(Number Cake)|(Standard Cake)|(Letter Cake)|(Shape Cake)`, "Invalid Cake Type"),
			),
			validation.Field("orderDetails.1",
				validation.Required("Cake size field is empty"),
				validation.Matches(`(6 Inches)|(8 Inches)|(10 Inches)|^[0-9]+$|^[A-Za-z\s]+$`, "Cake size/shape/letter/number is invalid"),
			),
			validation.Field("orderDetails.2",
				validation.Required("Cake color field is empty"),
				validation.Length(3, 30, "Cake color must be between 3-30 characters"),
				validation.Matches(`[A-Za-z\,\-\s]+`, "Cake color input is invalid"),
			),
			validation.Field("orderDetails.3",
				validation.Required("Cake order message field is empty"),
				validation.Length(10, 300, "Cake order message must be between 10-300 characters"),
				validation.Matches(freeTextPattern, "Invalid Cake order message"),
			),
		},
		OtherOrder: {
			validation.Field("orderDetails",
				validation.Required("Other order message field is empty"),
				validation.Length(10, 300, "Other order message must be between 10-300 characters"),
				validation.Matches(freeTextPattern, "Invalid other order message"),
			),
		},
	}),
	nameField(),
	deliveryMethodField(),
	validation.Field("dateForOrder",
		validation.Required("Date for order field is empty"),
		validation.Matches(datePattern, "Date is invalid"),
	),
	addressBlock(),
	validation.Field("email",
		validation.Required("Email field is empty"),
		validation.Length(5, 65, "Email must be between 5-65 characters"),
		validation.Email("Invalid Email"),
	),
	phoneField(),
}

var cateringOrderRules = validation.RuleSet{
	nameField(),
	validation.Field("eventType",
		validation.Required("Type of Event field is empty"),
		validation.Length(3, 30, "Type of Event must be between 3-30 characters"),
		validation.Matches(namePattern, "Type of Event must contain letters only"),
	),
	validation.Field("guestNum",
		validation.Required("Number of Guests field is empty"),
		validation.MaxLength(3, "Number of Guests cant be more than 3 digits"),
		validation.Numeric("Number of Guests must contain numbers only"),
	),
	deliveryMethodField(),
	validation.Field("dateForOrder",
		validation.Required("Date for Order field is empty"),
		validation.Matches(datePattern, "Date invalid"),
	),
	// catering addresses fold line two into the street line
	validation.Group("deliveryMethod", PickUp,
		validation.Field("address.0",
			validation.Required("Address field is empty"),
			validation.Length(5, 65, "Address must be between 5-65 characters"),
			validation.Matches(`[A-Za-z0-9\.\,\-\'\s]+`, "Address is invalid"),
		),
		validation.Field("address.1",
			validation.Required("City field is empty"),
			validation.Length(3, 30, "City must be between 3-30 characters"),
			validation.Matches(`[A-Za-z0-9\.\,\-\'\s]+`, "City is invalid"),
		),
		validation.Field("address.2",
			validation.Required("State field is empty"),
			validation.Length(2, 2, "State must be 2 character abbreviation"),
			validation.Alpha("State is invalid"),
		),
		validation.Field("address.3",
			validation.Required("Zip code field is empty"),
			validation.Length(5, 5, "Zip code must be 5 digits"),
			validation.ZipCode("Zip code is invalid"),
		),
	),
	validation.Field("email",
		validation.Required("Email field is empty"),
		validation.Length(5, 65, "Email must be between 5-65 characters"),
		validation.Email("Email is invalid"),
	),
	phoneField(),
	validation.Field("message",
		validation.Required("Message field is empty"),
		validation.Length(10, 300, "Message must be between 10-300 characters"),
		validation.Matches(freeTextPattern, "Message is invalid"),
	),
}
