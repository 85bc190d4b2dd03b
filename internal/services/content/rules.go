package content

import (
	"bakeshop/internal/validation"
)

const (
	freeTextPattern = `[A-Za-z0-9\W\s]+`
	namePattern     = `[A-Za-z\s]+`
	datePattern     = `[A-Z][a-z][a-z]\s([1-3][0-9]|[1-9]),\s[0-9][0-9][0-9][0-9]`
)

var menuItemRules = validation.RuleSet{
	validation.Field("category",
		validation.Required("Category field is empty"),
		validation.Matches(`(Cupcakes)|(Cakes)|(Jars)|(Cakepops)|(Beverages)|(Other)`, "Invalid Category"),
	),
	validation.Field("itemName",
		validation.Required("Item Name field is empty"),
		validation.Length(3, 100, "Item Name must be between 3-100 characters"),
		validation.Matches(freeTextPattern, "Item Name contains an invalid input"),
	),
	validation.Field("price",
		validation.Required("Price field is empty"),
		validation.Length(1, 10, "Price must be between 1-10 characters"),
		validation.Numeric("Price must only contain numbers"),
	),
	validation.Field("itemDesc",
		validation.Required("Item Description field is empty"),
		validation.Length(5, 200, "Item Description must be between 5-200 characters"),
		validation.Matches(freeTextPattern, "Item Description contains an invalid input"),
	),
}

var faqItemRules = validation.RuleSet{
	validation.Field("category",
		validation.Required("Category field is empty"),
		validation.Matches(`(Delivery)|(Pick Up)|(Ordering)|(Shape Cake)|(Allergy And Nutrition)|(Other)`, "Invalid Category"),
	),
	validation.Field("question",
		validation.Required("Question field is empty"),
		validation.Length(5, 200, "Question must be between 5-200 characters"),
		validation.Matches(freeTextPattern, "Question contains an invalid input"),
	),
	validation.Field("answer",
		validation.Required("Answer field is empty"),
		validation.Length(5, 500, "Answer must be between 5-500 characters"),
		validation.Matches(freeTextPattern, "Answer contains an invalid input"),
	),
}

var recipeRules = validation.RuleSet{
	validation.Field("recipeName",
		validation.Required("Recipe Name field is empty"),
		validation.Length(3, 100, "Recipe Name must be between 3-100 characters"),
		validation.Matches(freeTextPattern, "Recipe Name contains an invalid input"),
	),
	validation.Field("estTime",
		validation.Required("Estimated Time field is empty"),
		validation.Length(1, 40, "Estimated Time must be between 1-40 characters"),
		validation.Matches(freeTextPattern, "Estimated Time contains an invalid input"),
	),
	validation.Field("servings",
		validation.Required("Number of Servings field is empty"),
		validation.Length(1, 10, "Number of Servings must be between 1-10 characters"),
		validation.Numeric("Number of Servings must only contain numbers"),
	),
	validation.Field("description",
		validation.Required("Description field is empty"),
		validation.MinLength(5, "Description must be at least 5 characters"),
		validation.Matches(freeTextPattern, "Description contains an invalid input"),
	),
	validation.Field("ingredients",
		validation.Required("Ingredients field is empty"),
		validation.MinLength(5, "Ingredients must be at least 5 characters"),
		validation.Matches(freeTextPattern, "Ingredients contains an invalid input"),
	),
	validation.Field("directions",
		validation.Required("Directions field is empty"),
		validation.MinLength(5, "Directions must be at least 5 characters"),
		validation.Matches(freeTextPattern, "Directions contains an invalid input"),
	),
	validation.Field("bonusTips",
		validation.Matches(`^$|^`+freeTextPattern+`$`, "Bonus Tips contains an invalid input"),
		validation.MaxLength(800, "Bonus Tips cant be more than 800 characters"),
	),
}

var contactRules = validation.RuleSet{
	validation.Field("name",
		validation.Required("Name field is empty"),
		validation.Length(6, 65, "Name (First and Last together) must be 6-65 characters"),
		validation.Matches(namePattern, "Name must contain letters only"),
	),
	validation.Field("email",
		validation.Required("Email field is empty"),
		validation.Length(5, 65, "Email must be between 5-65 characters"),
		validation.Email("Email is invalid"),
	),
	validation.Field("subject",
		validation.Required("Subject field is empty"),
		validation.Length(3, 30, "Subject must be 3-30 characters"),
		validation.Matches(namePattern, "Subject must contain letters only"),
	),
	validation.Field("message",
		validation.Required("Message field is empty"),
		validation.Length(10, 300, "Message must be between 10-300 characters"),
		validation.Matches(freeTextPattern, "Message is invalid"),
	),
}

var aboutRules = validation.RuleSet{
	validation.Field("about",
		validation.Required("About field is empty"),
		validation.MinLength(10, "About must be at least 10 characters"),
		validation.Matches(freeTextPattern, "About contains an invalid input"),
	),
}

var menuToggleRules = validation.RuleSet{
	validation.Field("toggle",
		validation.Required("Menu Page Visibility Toggle field is empty"),
		validation.Boolean("Menu Page Visibility Toggle contains an invalid input"),
	),
}

var deliveryAmountRules = validation.RuleSet{
	validation.Field("amount",
		validation.Required("Delivery Amount field is empty"),
		validation.Numeric("Delivery Amount contains an invalid input"),
	),
}

var orderMinRules = validation.RuleSet{
	validation.Field("minimum",
		validation.Required("Minimum to Order field is empty"),
		validation.Numeric("Minimum to Order contains an invalid input"),
	),
}

var freeDeliveryMinRules = validation.RuleSet{
	validation.Field("minimum",
		validation.Required("Free Delivery Minimum field is empty"),
		validation.Numeric("Free Delivery Minimum contains an invalid input"),
	),
}

var deliveryDateRules = validation.RuleSet{
	validation.Field("date",
		validation.Required("Delivery Date field is empty"),
		validation.Matches(datePattern, "Delivery Date is invalid"),
	),
}

var blockedDatesRules = validation.RuleSet{
	validation.Field("dates",
		validation.Required("Blocked Dates field is empty"),
		validation.Array("Blocked Dates contains an invalid input"),
	),
}
