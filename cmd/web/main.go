package main

import (
	"fmt"
	"log"
	"net/http"

	"concert-ticketing-client/internal/api"
	"concert-ticketing-client/internal/config"
	"concert-ticketing-client/internal/handlers"
	"concert-ticketing-client/internal/middleware"
	"concert-ticketing-client/internal/payment"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Create session store
	sessionStore := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30, // 30 days
		HttpOnly: true,
		Secure:   cfg.Server.Env == "production",
		SameSite: http.SameSiteLaxMode,
	}

	sessionMiddleware := middleware.NewSessionMiddleware(sessionStore)

	// Backend API clients
	graphql := api.NewGraphQLClient(cfg.Backend.GraphQLURL)
	payments := api.NewPaymentsClient(cfg.Backend.BaseURL)

	// Payment widget bridge
	widget := payment.NewSnapBridge(payment.SnapConfig{
		ClientKey:   cfg.Midtrans.ClientKey,
		Environment: cfg.Midtrans.Environment,
	})
	log.Printf("Payment widget: Midtrans Snap (%s environment)", cfg.Midtrans.Environment)

	// Handlers
	authHandler := handlers.NewAuthHandler(sessionMiddleware)
	concertsHandler := handlers.NewConcertsHandler(graphql, sessionStore)
	checkoutHandler := handlers.NewCheckoutHandler(graphql, graphql, payments, widget, sessionStore)
	ordersHandler := handlers.NewOrdersHandler(graphql)
	ticketsHandler := handlers.NewTicketsHandler(graphql)

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.LoggingMiddleware)
	r.Use(sessionMiddleware.LoadSession)

	// Public routes
	r.Get("/concerts", concertsHandler.ListConcerts)
	r.Get("/concerts/{id}", concertsHandler.GetConcert)
	r.Post("/login", authHandler.SignIn)
	r.Post("/logout", authHandler.SignOut)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/me", authHandler.Me)
		r.Post("/concerts/{id}/checkout", concertsHandler.StageSelection)

		r.Get("/checkout", checkoutHandler.ShowCheckout)
		r.Post("/checkout/pay", checkoutHandler.Pay)
		r.Post("/checkout/widget/ready", checkoutHandler.WidgetReady)
		r.Post("/checkout/widget/callback", checkoutHandler.WidgetCallback)
		r.Get("/payment/success", checkoutHandler.ShowConfirmation)

		r.Get("/dashboard/orders", ordersHandler.ListOrders)
		r.Post("/dashboard/orders/{id}/pay", checkoutHandler.PayExistingOrder)
		r.Get("/dashboard/tickets", ticketsHandler.ListTickets)
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Concert client listening on %s (backend %s)", addr, cfg.Backend.BaseURL)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal("Server failed:", err)
	}
}
