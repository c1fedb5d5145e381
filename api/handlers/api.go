package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/reuniteapp/reunite-api/api"
	"github.com/reuniteapp/reunite-api/api/scheduler"
	"github.com/reuniteapp/reunite-api/config"
	"github.com/reuniteapp/reunite-api/databases"
	"github.com/reuniteapp/reunite-api/models"
)

// App stores the router and db connection
type App struct {
	Router     *mux.Router
	Config     config.Config
	Scheduler  *scheduler.Matcher
	dbHelper   databases.DatabaseHelper
	cloudinary *cloudinary.Cloudinary
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	r := mux.NewRouter()

	udb := databases.NewUserDatabase(a.dbHelper)
	mdb := databases.NewMissingPersonDatabase(a.dbHelper)
	fdb := databases.NewFoundPersonDatabase(a.dbHelper)
	ndb := databases.NewNotificationDatabase(a.dbHelper)
	fbdb := databases.NewFeedbackDatabase(a.dbHelper)

	auth := api.Auth{
		Secret: []byte(a.Config.JWTSecret),
		Lookup: func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
			return udb.FindOne(ctx, bson.M{"_id": id})
		},
	}

	hub := NewHub()
	notifier := &Notifier{DB: ndb, Hub: hub}

	authAPI := Auth{DB: udb, Secret: auth.Secret}
	missing := Missing{DB: mdb, Notifier: notifier}
	found := Found{DB: fdb, Notifier: notifier}
	feedback := Feedback{DB: fbdb, Notifier: notifier}
	notification := Notification{DB: ndb}
	stats := Stats{MDB: mdb, FDB: fdb}
	upload := Upload{Cloudinary: a.cloudinary}
	stream := NotificationStream{Hub: hub, Auth: auth}

	r.HandleFunc("/health", healthCheckHandler)

	// The stream stays outside the /api subrouter so the timeout
	// middleware cannot tear down long-lived websocket connections
	r.HandleFunc("/api/notifications/stream", stream.StreamHandler)

	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.Use(api.TimeoutMiddleware(30 * time.Second))

	apiRouter.Handle("/auth/register", http.HandlerFunc(authAPI.RegisterHandler)).Methods(http.MethodPost)
	apiRouter.Handle("/auth/login", http.HandlerFunc(authAPI.LoginHandler)).Methods(http.MethodPost)
	apiRouter.Handle("/auth/me", auth.Middleware(http.HandlerFunc(authAPI.MeHandler))).Methods(http.MethodGet)

	apiRouter.Handle("/missing", http.HandlerFunc(missing.MissingPersonsHandler)).Methods(http.MethodGet)
	apiRouter.Handle("/missing/{missing_id}", http.HandlerFunc(missing.MissingPersonByIDHandler)).Methods(http.MethodGet)
	apiRouter.Handle("/missing", auth.Middleware(http.HandlerFunc(missing.CreateMissingPersonHandler))).Methods(http.MethodPost)
	apiRouter.Handle("/missing/{missing_id}", auth.Middleware(http.HandlerFunc(missing.UpdateMissingPersonHandler))).Methods(http.MethodPut)
	apiRouter.Handle("/missing/{missing_id}", auth.Middleware(http.HandlerFunc(missing.DeleteMissingPersonHandler))).Methods(http.MethodDelete)

	apiRouter.Handle("/found", http.HandlerFunc(found.FoundPersonsHandler)).Methods(http.MethodGet)
	apiRouter.Handle("/found/{found_id}", http.HandlerFunc(found.FoundPersonByIDHandler)).Methods(http.MethodGet)
	apiRouter.Handle("/found", auth.Middleware(http.HandlerFunc(found.CreateFoundPersonHandler))).Methods(http.MethodPost)
	apiRouter.Handle("/found/{found_id}", auth.Middleware(http.HandlerFunc(found.UpdateFoundPersonHandler))).Methods(http.MethodPut)
	apiRouter.Handle("/found/{found_id}", auth.Middleware(http.HandlerFunc(found.DeleteFoundPersonHandler))).Methods(http.MethodDelete)

	apiRouter.Handle("/feedback", auth.Middleware(http.HandlerFunc(feedback.CreateFeedbackHandler))).Methods(http.MethodPost)
	apiRouter.Handle("/feedback", auth.Middleware(http.HandlerFunc(feedback.FeedbackByUserHandler))).Methods(http.MethodGet)

	apiRouter.Handle("/notifications", auth.Middleware(http.HandlerFunc(notification.NotificationsHandler))).Methods(http.MethodGet)
	apiRouter.Handle("/notifications/read-all", auth.Middleware(http.HandlerFunc(notification.MarkAllNotificationsReadHandler))).Methods(http.MethodPut)
	apiRouter.Handle("/notifications/{notification_id}/read", auth.Middleware(http.HandlerFunc(notification.MarkNotificationReadHandler))).Methods(http.MethodPut)

	apiRouter.Handle("/stats", http.HandlerFunc(stats.StatsHandler)).Methods(http.MethodGet)
	apiRouter.Handle("/uploads", auth.Middleware(http.HandlerFunc(upload.UploadImageHandler))).Methods(http.MethodPost)

	r.Use(api.RequestLogger)

	return r
}

// Initialize connects to mongo and wires up the router and match job
func (a *App) Initialize(ctx context.Context) error {
	client, err := databases.NewClient(&a.Config)
	if err != nil {
		return err
	}
	a.dbHelper = databases.NewDatabase(&a.Config, client)
	if err := client.Connect(); err != nil {
		return err
	}
	zap.S().Info("reunite-api has connected to the database")

	if a.Config.CloudinaryURL != "" {
		cld, err := cloudinary.NewFromURL(a.Config.CloudinaryURL)
		if err != nil {
			return err
		}
		a.cloudinary = cld
	}

	a.Scheduler = scheduler.New(
		databases.NewMissingPersonDatabase(a.dbHelper),
		databases.NewFoundPersonDatabase(a.dbHelper),
		databases.NewNotificationDatabase(a.dbHelper),
	)

	a.initializeRoutes()
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

// healthCheckHandler returns alive: true
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(models.HealthCheckResponse{Alive: true})
}
