package models

// PaymentMethod values accepted at checkout
const (
	PaymentCreditCard = "creditCard"
	PaymentPayPal     = "paypal"
	PaymentCOD        = "cod"
)

// CheckoutForm holds the fields submitted on the checkout page.
// Constraints are declared with validator tags; messages live in the
// checkout package.
type CheckoutForm struct {
	FullName      string `json:"fullName" form:"fullName" validate:"min=2"`
	Email         string `json:"email" form:"email" validate:"email"`
	Phone         string `json:"phone" form:"phone" validate:"min=10"`
	Address       string `json:"address" form:"address" validate:"min=5"`
	City          string `json:"city" form:"city" validate:"min=2"`
	ZipCode       string `json:"zipCode" form:"zipCode" validate:"min=5,max=5"`
	Country       string `json:"country" form:"country" validate:"min=2"`
	PaymentMethod string `json:"paymentMethod" form:"paymentMethod" validate:"required,oneof=creditCard paypal cod"`
	SaveAddress   bool   `json:"saveAddress" form:"saveAddress"`
	PromoCode     string `json:"promoCode,omitempty" form:"promoCode"`
	AgreeToTerms  bool   `json:"agreeToTerms" form:"agreeToTerms" validate:"eq=true"`
}

// DefaultCheckoutForm returns the initial values shown on an empty form
func DefaultCheckoutForm() CheckoutForm {
	return CheckoutForm{Country: "USA"}
}
