package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// PingHandler обрабатывает GET запрос к /api/ping
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprint(w, "ok"); err != nil {
		log.Println(err)
	}
}

// RootHandler обрабатывает GET запрос к /api/
func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	payload := map[string]string{"message": "Bid2Ship API - Reverse auction marketplace for logistics"}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Println(err)
	}
}
