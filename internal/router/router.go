package router

import (
	"net/http"
	"strings"

	"github.com/bid2ship/bid2ship/internal/handlers"
)

// InitRoutes регистрирует маршруты API и оборачивает их в CORS middleware.
func InitRoutes(userHandler *handlers.UserHandler, shipmentHandler *handlers.ShipmentHandler, bidHandler *handlers.BidHandler, corsOrigins string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/ping", handlers.PingHandler)
	mux.HandleFunc("GET /api/{$}", handlers.RootHandler)

	mux.HandleFunc("POST /api/users/register", userHandler.Register)
	mux.HandleFunc("POST /api/users/login", userHandler.Login)
	mux.HandleFunc("GET /api/users/me", userHandler.Me)

	mux.HandleFunc("POST /api/shipments", shipmentHandler.CreateShipment)
	mux.HandleFunc("GET /api/shipments", shipmentHandler.GetShipments)
	mux.HandleFunc("GET /api/shipments/my", shipmentHandler.GetMyShipments)
	mux.HandleFunc("GET /api/shipments/{shipmentId}", shipmentHandler.GetShipment)

	mux.HandleFunc("POST /api/bids", bidHandler.CreateBid)
	mux.HandleFunc("GET /api/bids/my", bidHandler.GetMyBids)
	mux.HandleFunc("PUT /api/bids/{bidId}/accept", bidHandler.AcceptBid)

	return corsMiddleware(mux, corsOrigins)
}

// corsMiddleware выставляет CORS-заголовки. Разрешенные источники задаются
// через запятую, пустое значение означает "*".
func corsMiddleware(next http.Handler, origins string) http.Handler {
	allowed := map[string]bool{}
	allowAll := origins == "" || origins == "*"
	for _, origin := range strings.Split(origins, ",") {
		allowed[strings.TrimSpace(origin)] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowAll {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		} else if allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
