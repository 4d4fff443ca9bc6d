package checkout

import (
	"context"
	"errors"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Lixing-Zhang/foodie-storefront/internal/models"
)

// messages holds the user-visible text for each field/constraint pair
var messages = map[string]map[string]string{
	"fullName":      {"min": "Full name must be at least 2 characters"},
	"email":         {"email": "Invalid email address"},
	"phone":         {"min": "Phone number must be at least 10 digits"},
	"address":       {"min": "Address is too short"},
	"city":          {"min": "City name is too short"},
	"zipCode":       {"min": "Zip code must be 5 digits", "max": "Zip code must be 5 digits"},
	"country":       {"min": "Country is required"},
	"paymentMethod": {"required": "Please select a payment method", "oneof": "Please select a payment method"},
	"agreeToTerms":  {"eq": "You must agree to the terms and conditions"},
}

const invalidPromoMessage = "Promo code is not valid"

// PromoValidator checks promo codes entered at checkout
type PromoValidator interface {
	IsValid(ctx context.Context, code string) bool
}

// FieldErrors maps a form field name to its first failing message
type FieldErrors map[string]string

// Validator evaluates the checkout schema
type Validator struct {
	validate *validator.Validate
	promo    PromoValidator
}

// NewValidator creates a checkout validator. promo may be nil, in which
// case promo codes are accepted as entered.
func NewValidator(promo PromoValidator) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v, promo: promo}
}

// Validate returns nil when form satisfies every constraint, otherwise
// the first failing message for each offending field.
func (v *Validator) Validate(ctx context.Context, form models.CheckoutForm) FieldErrors {
	errs := FieldErrors{}

	if err := v.validate.StructCtx(ctx, form); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			errs["form"] = err.Error()
			return errs
		}
		for _, fe := range verrs {
			field := fe.Field()
			if _, seen := errs[field]; seen {
				continue
			}
			errs[field] = message(field, fe.Tag())
		}
	}

	if code := strings.TrimSpace(form.PromoCode); code != "" && v.promo != nil {
		if !v.promo.IsValid(ctx, code) {
			errs["promoCode"] = invalidPromoMessage
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func message(field, tag string) string {
	if m, ok := messages[field][tag]; ok {
		return m
	}
	return "Invalid value"
}

// FormFromValues builds a CheckoutForm from posted HTML form values.
// Text fields are kept exactly as entered.
func FormFromValues(values url.Values) models.CheckoutForm {
	get := values.Get
	return models.CheckoutForm{
		FullName:      get("fullName"),
		Email:         get("email"),
		Phone:         get("phone"),
		Address:       get("address"),
		City:          get("city"),
		ZipCode:       get("zipCode"),
		Country:       get("country"),
		PaymentMethod: get("paymentMethod"),
		SaveAddress:   checked(values.Get("saveAddress")),
		PromoCode:     get("promoCode"),
		AgreeToTerms:  checked(values.Get("agreeToTerms")),
	}
}

func checked(v string) bool {
	switch strings.ToLower(v) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
