package router

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/amelchenko/forumpay-gateway/internal/logger"
	"github.com/amelchenko/forumpay-gateway/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Config struct {
	Endpoint string
}

// Router serves the widget action endpoint and the processor webhook.
type Router struct {
	config       Config
	payments     models.PaymentService
	tokenService models.TokenService
}

// New builds a Router. tokenService may be nil, which disables the widget
// access-token check.
func New(
	config Config,
	payments models.PaymentService,
	tokenService models.TokenService,
) *Router {
	return &Router{
		config,
		payments,
		tokenService,
	}
}

func (router *Router) get() chi.Router {
	r := chi.NewRouter()

	r.Use(logger.RequestLogger)

	r.Route("/api/forumpay", func(r chi.Router) {
		r.Get("/", router.handleAction)
		r.Post("/", router.handleAction)
		r.Post("/webhook", router.handleWebhookRoute)
	})

	return r
}

func (router *Router) Run() {
	log.Fatal(http.ListenAndServe(router.config.Endpoint, router.get()))
}

// handleAction serves every widget action selected by the act parameter.
func (router *Router) handleAction(w http.ResponseWriter, r *http.Request) {
	params := NewParams(r)

	name, err := params.GetRequired("act")
	if err != nil {
		writeError(w, newHTTPError(codeUnknownAction, http.StatusBadRequest, err.Error()))
		return
	}

	action, ok := ParseAction(name)
	if !ok {
		logger.Log.Error("unknown action requested", zap.String("action", name))
		writeError(w, newHTTPError(codeUnknownAction, http.StatusBadRequest, "action "+name+" not found"))
		return
	}

	if httpErr := router.checkToken(action, params); httpErr != nil {
		writeError(w, httpErr)
		return
	}

	response, httpErr := router.execute(r.Context(), action, params)
	if httpErr != nil {
		writeError(w, httpErr)
		return
	}

	writeJSON(w, response)
}

// handleWebhookRoute serves processor callbacks posted to the dedicated
// webhook path; no act parameter or access token is involved.
func (router *Router) handleWebhookRoute(w http.ResponseWriter, r *http.Request) {
	params := NewParams(r)

	response, httpErr := router.execute(r.Context(), ActionWebhook, params)
	if httpErr != nil {
		writeError(w, httpErr)
		return
	}

	writeJSON(w, response)
}

// checkToken enforces the widget access token when a token service is
// configured. The webhook is exempt; it is authenticated by re-checking the
// payment against the processor.
func (router *Router) checkToken(action Action, params *Params) *HTTPError {
	if router.tokenService == nil || action == ActionWebhook {
		return nil
	}

	orderID, err := router.tokenService.Validate(params.Get("token", ""))
	if err != nil {
		logger.Log.Error("widget token rejected", zap.Error(err))
		return newHTTPError(codeInvalidToken, http.StatusUnauthorized, "invalid access token")
	}

	if orderID != params.Get("orderId", "") {
		logger.Log.Error("widget token order mismatch", zap.String("tokenOrderID", orderID))
		return newHTTPError(codeInvalidToken, http.StatusUnauthorized, "invalid access token")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")

	resp, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	if _, err := w.Write(resp); err != nil {
		logger.Log.Error("failed to write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, httpErr *HTTPError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpErr.httpCode)

	if err := json.NewEncoder(w).Encode(httpErr); err != nil {
		logger.Log.Error("failed to write error response", zap.Error(err))
	}
}
