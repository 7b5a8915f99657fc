package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/IlyasAtabaev731/expense-tracker/internal/config"
	"github.com/IlyasAtabaev731/expense-tracker/internal/dashboard"
	"github.com/IlyasAtabaev731/expense-tracker/internal/domain/models"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"
)

// Storage is everything the handlers need from a persistence driver.
type Storage interface {
	SaveUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	SaveIncome(ctx context.Context, income *models.Income) error
	ListIncome(ctx context.Context, userID string) ([]models.Income, error)
	DeleteIncome(ctx context.Context, userID, id string) error

	SaveExpense(ctx context.Context, expense *models.Expense) error
	ListExpense(ctx context.Context, userID string) ([]models.Expense, error)
	DeleteExpense(ctx context.Context, userID, id string) error
}

type APIServer struct {
	config     *config.Config
	logger     *slog.Logger
	server     *http.Server
	storage    Storage
	dashboard  *dashboard.Aggregator
	jwtSecret  []byte
	bcryptCost int
	now        func() time.Time
}

func New(config *config.Config, logger *slog.Logger, storage Storage) *APIServer {
	s := &APIServer{
		config: config,
		logger: logger,
		server: &http.Server{
			Addr:         config.ApiHost + ":" + strconv.Itoa(config.ApiPort),
			ReadTimeout:  config.HTTP.ReadTimeout,
			WriteTimeout: config.HTTP.WriteTimeout,
			IdleTimeout:  config.HTTP.IdleTimeout,
		},
		storage:    storage,
		dashboard:  dashboard.NewAggregator(storage, config.Dashboard.RecentLimit),
		jwtSecret:  []byte(config.JWT.Secret),
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
	s.configureRouter()

	return s
}

func (s *APIServer) Start() error {
	s.logger.Info("Starting server", slog.String("addr", s.server.Addr))

	return s.server.ListenAndServe()
}

func (s *APIServer) MustStart() {
	err := s.Start()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic("Failed to start server: " + err.Error())
	}
}

func (s *APIServer) Stop(ctx context.Context) error {
	defer s.logger.Info("Server successfully stopped")
	return s.server.Shutdown(ctx)
}

// Handler exposes the fully wrapped router.
func (s *APIServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *APIServer) configureRouter() {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "Route not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	router.HandleFunc("/healthz", s.healthHandler()).Methods(http.MethodGet)
	router.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.config.UploadsDir))),
	).Methods(http.MethodGet, http.MethodHead)

	v1 := router.PathPrefix("/api/v1").Subrouter()

	auth := v1.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", s.registerHandler()).Methods(http.MethodPost)
	auth.HandleFunc("/login", s.loginHandler()).Methods(http.MethodPost)
	auth.HandleFunc("/getUser", s.authenticate(s.getUserHandler())).Methods(http.MethodGet)

	income := v1.PathPrefix("/income").Subrouter()
	income.HandleFunc("", s.authenticate(s.addIncomeHandler())).Methods(http.MethodPost)
	income.HandleFunc("/add", s.authenticate(s.addIncomeHandler())).Methods(http.MethodPost)
	income.HandleFunc("", s.authenticate(s.listIncomeHandler())).Methods(http.MethodGet)
	income.HandleFunc("/get", s.authenticate(s.listIncomeHandler())).Methods(http.MethodGet)
	income.HandleFunc("/download", s.authenticate(s.downloadIncomeHandler())).Methods(http.MethodGet)
	income.HandleFunc("/downloadexcel", s.authenticate(s.downloadIncomeHandler())).Methods(http.MethodGet)
	income.HandleFunc("/{id}", s.authenticate(s.deleteIncomeHandler())).Methods(http.MethodDelete)

	expense := v1.PathPrefix("/expense").Subrouter()
	expense.HandleFunc("", s.authenticate(s.addExpenseHandler())).Methods(http.MethodPost)
	expense.HandleFunc("/add", s.authenticate(s.addExpenseHandler())).Methods(http.MethodPost)
	expense.HandleFunc("", s.authenticate(s.listExpenseHandler())).Methods(http.MethodGet)
	expense.HandleFunc("/get", s.authenticate(s.listExpenseHandler())).Methods(http.MethodGet)
	expense.HandleFunc("/download", s.authenticate(s.downloadExpenseHandler())).Methods(http.MethodGet)
	expense.HandleFunc("/downloadexcel", s.authenticate(s.downloadExpenseHandler())).Methods(http.MethodGet)
	expense.HandleFunc("/{id}", s.authenticate(s.deleteExpenseHandler())).Methods(http.MethodDelete)

	v1.HandleFunc("/dashboard", s.authenticate(s.dashboardHandler())).Methods(http.MethodGet)

	// CORS runs outside the router so preflights never reach route matching.
	// The logger sits outermost so recovered panics are logged with their 500.
	s.server.Handler = s.logRequests(s.recoverer(s.cors(router)))
}

func (s *APIServer) healthHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
