package handlers

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Bookings  *BookingHandler
	Payments  *PaymentHandler
	Reviews   *ReviewHandler
	Catalogue *CatalogueHandler
	Providers *ProviderHandler
	Health    *HealthHandler
}
