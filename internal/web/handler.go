package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/foodie-storefront/internal/cart"
	"github.com/Lixing-Zhang/foodie-storefront/internal/checkout"
	"github.com/Lixing-Zhang/foodie-storefront/internal/middleware"
	"github.com/Lixing-Zhang/foodie-storefront/internal/models"
	"github.com/Lixing-Zhang/foodie-storefront/internal/repository"
	"github.com/Lixing-Zhang/foodie-storefront/internal/service"
	"github.com/Lixing-Zhang/foodie-storefront/internal/tracking"
)

// DefaultRestaurantID is shown on /restaurant-menu
const DefaultRestaurantID = "1"

// OrderPlacer creates an order from a visitor's cart and a validated form
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, cartID string, form models.CheckoutForm) (*models.Order, error)
}

// OrderTracker looks up orders for the tracking page
type OrderTracker interface {
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	QRCode(ctx context.Context, id string) ([]byte, error)
}

// Deps are the collaborators of the page handlers. Promo may be nil when
// no promo sets are configured.
type Deps struct {
	Restaurants *service.RestaurantService
	Carts       *service.CartService
	Orders      OrderTracker
	Placer      OrderPlacer
	Validator   *checkout.Validator
	Promo       checkout.PromoValidator
	Logger      *slog.Logger
}

// Handler renders the storefront pages
type Handler struct {
	Deps
	renderer *Renderer
}

// New parses the templates and returns the page handler
func New(deps Deps) (*Handler, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	return &Handler{Deps: deps, renderer: renderer}, nil
}

// Routes registers every page on r, including the not-found page
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.Home)
	r.Get("/restaurant-menu", h.DefaultMenu)
	r.Get("/restaurant/{restaurantId}/menu", h.Menu)
	r.Post("/restaurant/{restaurantId}/items/{itemId}", h.AddToCart)
	r.Get("/cart", h.Cart)
	r.Post("/cart/items/{itemId}/{action}", h.CartAction)
	r.Post("/cart/promo", h.ApplyPromo)
	r.Get("/checkout", h.Checkout)
	r.Post("/checkout", h.SubmitCheckout)
	r.Get("/order-tracking", h.Tracking)
	r.Get("/order-tracking/{orderId}", h.Tracking)
	r.Get("/order-tracking/{orderId}/qrcode", h.TrackingQR)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS()))))
	r.NotFound(h.NotFound)
}

// Layout is the data every page shares
type Layout struct {
	Title     string
	Active    string
	CartCount int
	Year      int
}

type option struct {
	Value string
	Label string
}

var (
	cuisineOptions = []option{
		{"all", "All Cuisines"}, {"italian", "Italian"}, {"chinese", "Chinese"},
		{"indian", "Indian"}, {"mexican", "Mexican"}, {"japanese", "Japanese"}, {"american", "American"},
	}
	ratingOptions = []option{
		{"any", "Any Rating"}, {"4", "4 Stars & Up"}, {"3", "3 Stars & Up"},
	}
	countryOptions = []option{
		{"USA", "United States"}, {"Canada", "Canada"},
	}
	paymentOptions = []option{
		{models.PaymentCreditCard, "Credit Card"}, {models.PaymentPayPal, "PayPal"}, {models.PaymentCOD, "Cash on Delivery"},
	}
)

type homeView struct {
	Layout
	Query       string
	Location    string
	Cuisine     string
	Rating      string
	Cuisines    []option
	Ratings     []option
	Restaurants []models.RestaurantSummary
}

type menuView struct {
	Layout
	Restaurant *models.Restaurant
	Flash      string
	Error      string
}

type cartView struct {
	Layout
	Cart         *cart.Cart
	Totals       cart.Totals
	Error        string
	PromoCode    string
	PromoMessage string
	PromoValid   bool
}

type checkoutView struct {
	Layout
	Form           models.CheckoutForm
	Errors         checkout.FieldErrors
	FormError      string
	Cart           *cart.Cart
	Totals         cart.Totals
	Countries      []option
	PaymentMethods []option
}

type trackingView struct {
	Layout
	Order   *models.Order
	Stepper tracking.Stepper
	Placed  bool
}

// Home handles GET /
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view := homeView{
		Layout:   h.layout(r, "Home", "home"),
		Query:    q.Get("q"),
		Location: q.Get("location"),
		Cuisine:  q.Get("cuisine"),
		Rating:   q.Get("rating"),
		Cuisines: cuisineOptions,
		Ratings:  ratingOptions,
	}
	if view.Location == "" {
		view.Location = "New York, NY"
	}

	restaurants, err := h.Restaurants.Search(r.Context(), view.Query)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	restaurants = service.FilterByCuisine(restaurants, view.Cuisine)
	if minRating, err := strconv.ParseFloat(view.Rating, 64); err == nil {
		restaurants = service.FilterByMinRating(restaurants, minRating)
	}
	view.Restaurants = restaurants

	h.render(w, r, http.StatusOK, "home", view)
}

// DefaultMenu handles GET /restaurant-menu
func (h *Handler) DefaultMenu(w http.ResponseWriter, r *http.Request) {
	h.renderMenu(w, r, DefaultRestaurantID)
}

// Menu handles GET /restaurant/{restaurantId}/menu
func (h *Handler) Menu(w http.ResponseWriter, r *http.Request) {
	h.renderMenu(w, r, chi.URLParam(r, "restaurantId"))
}

func (h *Handler) renderMenu(w http.ResponseWriter, r *http.Request, id string) {
	restaurant, err := h.Restaurants.GetRestaurant(r.Context(), id)
	if errors.Is(err, service.ErrRestaurantNotFound) {
		h.NotFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	q := r.URL.Query()
	view := menuView{
		Layout:     h.layout(r, restaurant.Name, "menu"),
		Restaurant: restaurant,
		Error:      q.Get("error"),
	}
	if added := q.Get("added"); added != "" {
		view.Flash = "Added " + added + " to your cart."
	}

	h.render(w, r, http.StatusOK, "menu", view)
}

// AddToCart handles POST /restaurant/{restaurantId}/items/{itemId} and
// redirects back to the menu
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "restaurantId")
	req := models.AddToCartRequest{
		RestaurantID: restaurantID,
		ItemID:       chi.URLParam(r, "itemId"),
		Quantity:     1,
	}

	back := url.Values{}
	c, err := h.Carts.AddItem(r.Context(), middleware.CartID(r.Context()), req)
	switch {
	case err == nil:
		line, _ := c.Line(req.ItemID)
		back.Set("added", line.Name)
	case errors.Is(err, service.ErrRestaurantNotFound):
		h.NotFound(w, r)
		return
	case errors.Is(err, service.ErrOutOfStock):
		back.Set("error", "Sorry, that item is out of stock.")
	case errors.Is(err, service.ErrItemNotFound):
		back.Set("error", "That item is no longer on the menu.")
	default:
		h.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/restaurant/"+url.PathEscape(restaurantID)+"/menu?"+back.Encode(), http.StatusSeeOther)
}

// Cart handles GET /cart
func (h *Handler) Cart(w http.ResponseWriter, r *http.Request) {
	view, err := h.cartView(r)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "cart", view)
}

// CartAction handles POST /cart/items/{itemId}/{increment|decrement|remove}
func (h *Handler) CartAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cartID := middleware.CartID(ctx)
	itemID := chi.URLParam(r, "itemId")

	var err error
	switch chi.URLParam(r, "action") {
	case "increment":
		_, err = h.Carts.Increment(ctx, cartID, itemID)
	case "decrement":
		_, err = h.Carts.Decrement(ctx, cartID, itemID)
	case "remove":
		_, err = h.Carts.RemoveItem(ctx, cartID, itemID)
	default:
		h.NotFound(w, r)
		return
	}

	// a stale form for a line that is already gone just shows the cart again
	if err != nil && !errors.Is(err, service.ErrLineNotFound) {
		h.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// ApplyPromo handles POST /cart/promo
func (h *Handler) ApplyPromo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	view, err := h.cartView(r)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	code := strings.TrimSpace(r.PostForm.Get("promoCode"))
	view.PromoCode = code
	status := http.StatusOK
	switch {
	case code == "":
		view.PromoMessage = "Enter a promo code."
		status = http.StatusUnprocessableEntity
	case h.Promo == nil || h.Promo.IsValid(r.Context(), code):
		view.PromoValid = true
		view.PromoMessage = "Promo code " + strings.ToUpper(code) + " applied."
	default:
		view.PromoMessage = "Promo code is not valid"
		status = http.StatusUnprocessableEntity
	}

	h.render(w, r, status, "cart", view)
}

func (h *Handler) cartView(r *http.Request) (cartView, error) {
	c, err := h.Carts.Get(r.Context(), middleware.CartID(r.Context()))
	if err != nil {
		return cartView{}, err
	}
	layout := h.layoutWithCount("Your Cart", "cart", c.ItemCount())
	return cartView{Layout: layout, Cart: c, Totals: c.Totals()}, nil
}

// Checkout handles GET /checkout
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	h.renderCheckout(w, r, http.StatusOK, models.DefaultCheckoutForm(), nil, "")
}

// SubmitCheckout handles POST /checkout. Invalid forms are shown again with
// a message per field; a valid form is handed to the order placer once.
func (h *Handler) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := checkout.FormFromValues(r.PostForm)
	if errs := h.Validator.Validate(r.Context(), form); errs != nil {
		h.Logger.Info("checkout form rejected", "invalid_fields", len(errs))
		h.renderCheckout(w, r, http.StatusUnprocessableEntity, form, errs, "")
		return
	}

	order, err := h.Placer.PlaceOrder(r.Context(), middleware.CartID(r.Context()), form)
	if errors.Is(err, service.ErrEmptyCart) {
		h.renderCheckout(w, r, http.StatusUnprocessableEntity, form, nil, "Your cart is empty. Add something from a menu first.")
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/order-tracking/"+url.PathEscape(order.ID)+"?placed=1", http.StatusSeeOther)
}

func (h *Handler) renderCheckout(w http.ResponseWriter, r *http.Request, status int, form models.CheckoutForm, errs checkout.FieldErrors, formError string) {
	c, err := h.Carts.Get(r.Context(), middleware.CartID(r.Context()))
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	view := checkoutView{
		Layout:         h.layoutWithCount("Checkout", "checkout", c.ItemCount()),
		Form:           form,
		Errors:         errs,
		FormError:      formError,
		Cart:           c,
		Totals:         c.Totals(),
		Countries:      countryOptions,
		PaymentMethods: paymentOptions,
	}
	h.render(w, r, status, "checkout", view)
}

// Tracking handles GET /order-tracking and /order-tracking/{orderId}.
// Without an ID the sample order is shown.
func (h *Handler) Tracking(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "orderId")
	if id == "" {
		id = repository.PlaceholderOrderID
	}

	order, err := h.Orders.GetOrder(r.Context(), id)
	if errors.Is(err, service.ErrOrderNotFound) {
		h.NotFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	view := trackingView{
		Layout:  h.layout(r, "Track Your Order", "tracking"),
		Order:   order,
		Stepper: tracking.NewStepper(order.Status),
		Placed:  r.URL.Query().Get("placed") != "",
	}
	h.render(w, r, http.StatusOK, "tracking", view)
}

// TrackingQR handles GET /order-tracking/{orderId}/qrcode
func (h *Handler) TrackingQR(w http.ResponseWriter, r *http.Request) {
	png, err := h.Orders.QRCode(r.Context(), chi.URLParam(r, "orderId"))
	if errors.Is(err, service.ErrOrderNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(png)
}

// NotFound renders the 404 page
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.Logger.Info("page not found", "path", r.URL.Path)
	h.render(w, r, http.StatusNotFound, "notfound", struct{ Layout }{h.layout(r, "Page Not Found", "")})
}

func (h *Handler) layout(r *http.Request, title, active string) Layout {
	count := 0
	if c, err := h.Carts.Get(r.Context(), middleware.CartID(r.Context())); err != nil {
		h.Logger.Warn("failed to load cart for navigation", "error", err)
	} else {
		count = c.ItemCount()
	}
	return h.layoutWithCount(title, active, count)
}

func (h *Handler) layoutWithCount(title, active string, count int) Layout {
	return Layout{Title: title, Active: active, CartCount: count, Year: time.Now().Year()}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	if err := h.renderer.Render(w, status, page, data); err != nil {
		h.serverError(w, r, err)
	}
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.Logger.Error("page request failed", "path", r.URL.Path, "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
