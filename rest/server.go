package rest

import (
	"context"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/omnirelay/console/cache"
	"github.com/omnirelay/console/config"
	"github.com/omnirelay/console/flow"
	"github.com/omnirelay/console/imports"
	"github.com/omnirelay/console/logger"
	"github.com/omnirelay/console/persistence"
	"github.com/omnirelay/console/service"
	"github.com/omnirelay/console/validate"
)

type Server struct {
	http.Server
	Port           int
	conf           config.Config
	storage        persistence.Storage
	authService    *service.AuthService
	flowService    *service.FlowService
	billingService *service.BillingService
	contactService *service.ContactService
	tenantCache    *cache.TenantCache
}

func NewServer(conf config.Config, storage persistence.Storage, authService *service.AuthService,
	flowService *service.FlowService, billingService *service.BillingService,
	contactService *service.ContactService) (*Server, error) {

	s := &Server{
		Server: http.Server{
			Addr: conf.HttpAddr(),
		},
		Port:           conf.HttpPort,
		conf:           conf,
		storage:        storage,
		authService:    authService,
		flowService:    flowService,
		billingService: billingService,
		contactService: contactService,
		tenantCache:    cache.NewTenantCache(),
	}

	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()
	api.Use(loggingMiddleware)

	// no session required
	api.HandleFunc("/auth/login", s.HandleLogin).Methods(http.MethodPost)
	api.HandleFunc("/tenants", s.HandleCreateTenant).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(s.authMiddleware)

	authed.HandleFunc("/tenants", s.HandleListTenants).Methods(http.MethodGet)
	authed.HandleFunc("/tenants/{id}", s.HandleGetTenant).Methods(http.MethodGet)
	authed.HandleFunc("/tenants/{id}", s.HandleUpdateTenant).Methods(http.MethodPut)
	authed.HandleFunc("/tenants/{id}", s.HandleDeleteTenant).Methods(http.MethodDelete)

	// fixed paths before {id} so mux never swallows them
	authed.HandleFunc("/contacts/export", s.HandleExportContacts).Methods(http.MethodGet)
	authed.HandleFunc("/contacts/import", s.HandleImportContacts).Methods(http.MethodPost)
	authed.HandleFunc("/contacts/upload", s.HandleImportContacts).Methods(http.MethodPost)
	authed.HandleFunc("/contacts", s.HandleListContacts).Methods(http.MethodGet)
	authed.HandleFunc("/contacts", s.HandleCreateContact).Methods(http.MethodPost)
	authed.HandleFunc("/contacts/{id}", s.HandleGetContact).Methods(http.MethodGet)
	authed.HandleFunc("/contacts/{id}", s.HandleUpdateContact).Methods(http.MethodPut)
	authed.HandleFunc("/contacts/{id}", s.HandleDeleteContact).Methods(http.MethodDelete)

	authed.HandleFunc("/contact-lists", s.HandleListContactLists).Methods(http.MethodGet)
	authed.HandleFunc("/contact-lists", s.HandleCreateContactList).Methods(http.MethodPost)
	authed.HandleFunc("/contact-lists/{id}", s.HandleGetContactList).Methods(http.MethodGet)
	authed.HandleFunc("/contact-lists/{id}", s.HandleUpdateContactList).Methods(http.MethodPut)
	authed.HandleFunc("/contact-lists/{id}", s.HandleDeleteContactList).Methods(http.MethodDelete)

	authed.HandleFunc("/channels", s.HandleListChannels).Methods(http.MethodGet)

	authed.HandleFunc("/templates", s.HandleListTemplates).Methods(http.MethodGet)
	authed.HandleFunc("/templates", s.HandleCreateTemplate).Methods(http.MethodPost)
	authed.HandleFunc("/templates/{id}", s.HandleGetTemplate).Methods(http.MethodGet)
	authed.HandleFunc("/templates/{id}", s.HandleUpdateTemplate).Methods(http.MethodPut)
	authed.HandleFunc("/templates/{id}", s.HandleDeleteTemplate).Methods(http.MethodDelete)

	authed.HandleFunc("/campaigns", s.HandleListCampaigns).Methods(http.MethodGet)
	authed.HandleFunc("/campaigns", s.HandleCreateCampaign).Methods(http.MethodPost)
	authed.HandleFunc("/campaigns/{id}", s.HandleGetCampaign).Methods(http.MethodGet)
	authed.HandleFunc("/campaigns/{id}", s.HandleUpdateCampaign).Methods(http.MethodPut)
	authed.HandleFunc("/campaigns/{id}", s.HandleDeleteCampaign).Methods(http.MethodDelete)

	authed.HandleFunc("/flows/palette", s.HandleFlowPalette).Methods(http.MethodGet)
	authed.HandleFunc("/flows", s.HandleListFlows).Methods(http.MethodGet)
	authed.HandleFunc("/flows", s.HandleCreateFlow).Methods(http.MethodPost)
	authed.HandleFunc("/flows/{id}", s.HandleGetFlow).Methods(http.MethodGet)
	authed.HandleFunc("/flows/{id}", s.HandleUpdateFlow).Methods(http.MethodPut)
	authed.HandleFunc("/flows/{id}", s.HandleDeleteFlow).Methods(http.MethodDelete)
	authed.HandleFunc("/flows/{id}/active", s.HandleSetFlowActive).Methods(http.MethodPut)

	authed.HandleFunc("/conversations", s.HandleListConversations).Methods(http.MethodGet)
	authed.HandleFunc("/conversations", s.HandleCreateConversation).Methods(http.MethodPost)
	authed.HandleFunc("/conversations/{id}", s.HandleGetConversation).Methods(http.MethodGet)
	authed.HandleFunc("/conversations/{id}/messages", s.HandleSendMessage).Methods(http.MethodPost)
	authed.HandleFunc("/conversations/{id}/assign", s.HandleAssignConversation).Methods(http.MethodPut)

	authed.HandleFunc("/billing/intent", s.HandleCreateIntent).Methods(http.MethodPost)
	authed.HandleFunc("/billing/topup", s.HandleTopup).Methods(http.MethodPost)
	authed.HandleFunc("/billing/charge", s.HandleCharge).Methods(http.MethodPost)
	authed.HandleFunc("/transactions", s.HandleListTransactions).Methods(http.MethodGet)

	authed.HandleFunc("/integrations", s.HandleListIntegrations).Methods(http.MethodGet)
	authed.HandleFunc("/integrations", s.HandleCreateIntegration).Methods(http.MethodPost)
	authed.HandleFunc("/integrations/{id}", s.HandleGetIntegration).Methods(http.MethodGet)
	authed.HandleFunc("/integrations/{id}", s.HandleUpdateIntegration).Methods(http.MethodPut)
	authed.HandleFunc("/integrations/{id}", s.HandleDeleteIntegration).Methods(http.MethodDelete)
	authed.HandleFunc("/integrations/{id}/toggle", s.HandleToggleIntegration).Methods(http.MethodPost)

	corsOptions := cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}
	if len(conf.CorsOrigins) > 0 {
		corsOptions.AllowedOrigins = conf.CorsOrigins
	}
	s.Handler = cors.New(corsOptions).Handler(router)
	return s, nil
}

func (s *Server) Start() error {
	logger.Info("starting http server on", zap.Int("port", s.Port))
	if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Stop() error {
	logger.Info("stopping http server")
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := s.Shutdown(ctx)
	if err != nil {
		logger.Error("error shutting down http server", zap.Error(err))
	}
	return nil
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondOK(w http.ResponseWriter, message string) {
	respondWithJSON(w, http.StatusOK, map[string]string{"message": message})
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"message": message})
}

func respondWithFieldErrors(w http.ResponseWriter, errs validate.FieldErrors) {
	respondWithJSON(w, http.StatusBadRequest, map[string]any{
		"message": "validation failed",
		"errors":  errs,
	})
}

// respondStorageError maps storage faults to the error contract:
// missing or cross-tenant rows are 404, everything else is a logged 500
// with a generic body.
func respondStorageError(w http.ResponseWriter, err error) {
	switch e := err.(type) {
	case persistence.NotFoundError:
		respondWithError(w, http.StatusNotFound, e.Error())
	case flow.ValidationErrors:
		respondWithJSON(w, http.StatusBadRequest, map[string]any{
			"message": "flow graph is invalid",
			"errors":  e,
		})
	case persistence.InsufficientBalanceError:
		respondWithError(w, http.StatusPaymentRequired, e.Error())
	case imports.HeaderError:
		respondWithError(w, http.StatusBadRequest, e.Error())
	default:
		logger.Error("request failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
