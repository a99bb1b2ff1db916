package demosite

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

// Title is the document title of every page
const Title = "Swag Labs"

// Password is accepted for every known user
const Password = "secret_sauce"

const sessionCookie = "session-username"

// Login error banners
const (
	ErrLockedOut     = "Epic sadface: Sorry, this user has been locked out."
	ErrBadCredential = "Epic sadface: Username and password do not match any user in this service"
	ErrNoUsername    = "Epic sadface: Username is required"
)

// Site serves a stand-in of the shop the workflow drives
type Site struct {
	template *template.Template
	sessions *SessionStore
	catalog  catalog
	users    map[string]bool // username -> locked out

	hideCheckout bool
	mux          *http.ServeMux
}

// Option customises a Site
type Option func(*Site)

// WithoutCheckoutButton renders the cart without its checkout button
func WithoutCheckoutButton() Option {
	return func(s *Site) { s.hideCheckout = true }
}

// WithCatalog replaces the default inventory
func WithCatalog(products []Product) Option {
	return func(s *Site) { s.catalog = newCatalog(products) }
}

// WithUser registers an extra account
func WithUser(username string, lockedOut bool) Option {
	return func(s *Site) { s.users[username] = lockedOut }
}

// New creates the demo site
func New(opts ...Option) (*Site, error) {
	funcMap := template.FuncMap{
		"price": formatPrice,
	}

	tmpl, err := template.New("site").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Site{
		template: tmpl,
		sessions: NewSessionStore(),
		catalog:  newCatalog(DefaultCatalog()),
		users: map[string]bool{
			"standard_user":   false,
			"locked_out_user": true,
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleLoginPage)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("GET /inventory.html", s.authenticated(s.handleInventory))
	mux.HandleFunc("POST /cart/add", s.authenticated(s.handleAddToCart))
	mux.HandleFunc("POST /cart/remove", s.authenticated(s.handleRemoveFromCart))
	mux.HandleFunc("GET /cart.html", s.authenticated(s.handleCart))
	mux.HandleFunc("GET /checkout-step-one.html", s.authenticated(s.handleShippingForm))
	mux.HandleFunc("POST /checkout-step-one.html", s.authenticated(s.handleShipping))
	mux.HandleFunc("GET /checkout-step-two.html", s.authenticated(s.handleOverview))
	mux.HandleFunc("POST /checkout-step-two.html", s.authenticated(s.handleFinish))
	mux.HandleFunc("GET /checkout-complete.html", s.authenticated(s.handleComplete))
	mux.HandleFunc("GET /logout", s.handleLogout)
	s.mux = mux

	return s, nil
}

// Sessions exposes the session store
func (s *Site) Sessions() *SessionStore {
	return s.sessions
}

// ServeHTTP dispatches to the page handlers
func (s *Site) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// PageData is the data passed to every template
type PageData struct {
	Title        string
	Error        string
	Username     string
	Products     []Product
	Items        []Product
	CartCount    int
	InCart       map[string]bool
	ShowCheckout bool
	Shipping     Shipping
	Subtotal     int64
	Tax          int64
	Total        int64
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, session Session)

// authenticated sends requests without a live session back to the login page
func (s *Site) authenticated(next sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		session, ok := s.sessions.Get(cookie.Value)
		if !ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next(w, r, session)
	}
}

func (s *Site) render(w http.ResponseWriter, name string, data PageData) {
	data.Title = Title
	if err := s.template.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Error rendering template %s: %v", name, err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

func (s *Site) pageFor(session Session) PageData {
	inCart := make(map[string]bool, len(session.Cart))
	for _, id := range session.Cart {
		inCart[id] = true
	}
	return PageData{
		Username:  session.Username,
		CartCount: len(session.Cart),
		InCart:    inCart,
		Shipping:  session.Shipping,
	}
}

func (s *Site) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "login.html", PageData{})
}

func (s *Site) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	username := r.PostForm.Get("user-name")
	password := r.PostForm.Get("password")

	lockedOut, known := s.users[username]
	switch {
	case username == "":
		s.renderLoginError(w, username, ErrNoUsername)
		return
	case !known || password != Password:
		s.renderLoginError(w, username, ErrBadCredential)
		return
	case lockedOut:
		s.renderLoginError(w, username, ErrLockedOut)
		return
	}

	session := s.sessions.Create(username)
	log.Printf("User %s logged in (session %s)", username, session.ID)

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
	})
	http.Redirect(w, r, "/inventory.html", http.StatusSeeOther)
}

func (s *Site) renderLoginError(w http.ResponseWriter, username, message string) {
	log.Printf("Rejected login for %q: %s", username, message)
	w.WriteHeader(http.StatusUnauthorized)
	s.render(w, "login.html", PageData{Username: username, Error: message})
}

func (s *Site) handleInventory(w http.ResponseWriter, r *http.Request, session Session) {
	data := s.pageFor(session)
	data.Products = s.catalog.products
	s.render(w, "inventory.html", data)
}

func (s *Site) handleAddToCart(w http.ResponseWriter, r *http.Request, session Session) {
	id := r.FormValue("id")
	if _, ok := s.catalog.byID[id]; !ok {
		http.Error(w, "Unknown product", http.StatusBadRequest)
		return
	}

	s.sessions.Update(session.ID, func(sess *Session) {
		if !sess.InCart(id) {
			sess.Cart = append(sess.Cart, id)
		}
	})
	http.Redirect(w, r, "/inventory.html", http.StatusSeeOther)
}

func (s *Site) handleRemoveFromCart(w http.ResponseWriter, r *http.Request, session Session) {
	id := r.FormValue("id")
	s.sessions.Update(session.ID, func(sess *Session) {
		cart := sess.Cart[:0]
		for _, item := range sess.Cart {
			if item != id {
				cart = append(cart, item)
			}
		}
		sess.Cart = cart
	})

	back := "/inventory.html"
	if r.FormValue("from") == "cart" {
		back = "/cart.html"
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

func (s *Site) handleCart(w http.ResponseWriter, r *http.Request, session Session) {
	data := s.pageFor(session)
	data.Items = s.catalog.lookup(session.Cart)
	data.ShowCheckout = !s.hideCheckout
	s.render(w, "cart.html", data)
}

func (s *Site) handleShippingForm(w http.ResponseWriter, r *http.Request, session Session) {
	s.render(w, "checkout-step-one.html", s.pageFor(session))
}

func (s *Site) handleShipping(w http.ResponseWriter, r *http.Request, session Session) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	shipping := Shipping{
		FirstName:  r.PostForm.Get("first-name"),
		LastName:   r.PostForm.Get("last-name"),
		PostalCode: r.PostForm.Get("postal-code"),
	}

	if message := shippingError(shipping); message != "" {
		data := s.pageFor(session)
		data.Shipping = shipping
		data.Error = message
		w.WriteHeader(http.StatusBadRequest)
		s.render(w, "checkout-step-one.html", data)
		return
	}

	s.sessions.Update(session.ID, func(sess *Session) { sess.Shipping = shipping })
	http.Redirect(w, r, "/checkout-step-two.html", http.StatusSeeOther)
}

func shippingError(s Shipping) string {
	switch {
	case s.FirstName == "":
		return "Error: First Name is required"
	case s.LastName == "":
		return "Error: Last Name is required"
	case s.PostalCode == "":
		return "Error: Postal Code is required"
	}
	return ""
}

func (s *Site) handleOverview(w http.ResponseWriter, r *http.Request, session Session) {
	if !session.Shipping.Complete() {
		http.Redirect(w, r, "/checkout-step-one.html", http.StatusSeeOther)
		return
	}

	data := s.pageFor(session)
	data.Items = s.catalog.lookup(session.Cart)
	data.Subtotal, data.Tax, data.Total = orderTotals(data.Items)
	s.render(w, "checkout-step-two.html", data)
}

func (s *Site) handleFinish(w http.ResponseWriter, r *http.Request, session Session) {
	if !session.Shipping.Complete() {
		http.Redirect(w, r, "/checkout-step-one.html", http.StatusSeeOther)
		return
	}

	items := s.catalog.lookup(session.Cart)
	_, _, total := orderTotals(items)
	log.Printf("Order placed by %s: %d items, total %s", session.Username, len(items), formatPrice(total))

	s.sessions.Update(session.ID, func(sess *Session) {
		sess.Cart = nil
		sess.Shipping = Shipping{}
	})
	http.Redirect(w, r, "/checkout-complete.html", http.StatusSeeOther)
}

func (s *Site) handleComplete(w http.ResponseWriter, r *http.Request, session Session) {
	s.render(w, "checkout-complete.html", s.pageFor(session))
}

func (s *Site) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		s.sessions.Delete(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:   sessionCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
