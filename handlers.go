package main

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

func registerHealth(r *mux.Router) {
	r.HandleFunc("/healthz", handleHealthz)
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Content-Type", "text/plain")
	fmt.Fprintf(w, "ok\n")
}
