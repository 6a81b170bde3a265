package di

import (
	"context"
	"fmt"
	"log"

	"truckmap/api"
	"truckmap/api/geocode"
	"truckmap/api/vendorapi"
	"truckmap/channel"
	"truckmap/config"
	"truckmap/dao/redis"
	"truckmap/db"
	"truckmap/server"
	"truckmap/server/handlers"
	services "truckmap/service"
	"truckmap/session"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
)

// Container holds all application dependencies.
type Container struct {
	RedisClient             db.RedisClient
	RedisVendorDao          *redis.RedisVendorDAO
	LocationChannel         *channel.LocationChannel
	VendorAPI               vendorapi.VendorAPI
	Geocoder                geocode.Geocoder
	MapService              *services.MapService
	SessionStore            *session.Store
	SessionManager          *session.Manager
	VendorHandler           *handlers.VendorHandler
	AuthHandler             *handlers.AuthHandler
	EditorHandler           *handlers.EditorHandler
	PickerHandler           *handlers.PickerHandler
	MuxRouter               *mux.Router
	Router                  *server.Router
	TruckMapHttpServer      *server.TruckMapHttpServer
	VendorsRefresherService *services.VendorsRefresherService
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(env string) *Container {
	log.Printf("initializing container - env: %s", env)
	ctx := context.Background()

	// Initialize Redis client
	var redisClient db.RedisClient
	if env != "prod" {
		log.Printf("Using in-memory redis client")
		redisClient = db.NewMockRedisClient(ctx)
	} else {
		redisInternalClient := goredis.NewClient(&goredis.Options{
			Addr:     config.REDIS_DB_ADDRESS,
			Password: config.REDIS_DB_PASSWORD,
			DB:       config.REDIS_DB,
		})
		redisClient = db.NewGeoRedisClient(ctx, redisInternalClient)
		if err := redisClient.Ping(); err != nil {
			panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
		}
	}

	// Initialize Redis Vendor DAO and the shared location channel
	redisVendorDao := redis.NewRedisVendorDAO(redisClient)
	locationChannel := channel.NewLocationChannel(redisClient)

	// Initialize Vendor API - mock outside prod
	var vendorApiClient vendorapi.VendorAPI
	if env != "prod" {
		vendorApiClient = vendorapi.NewVendorApiClientMock()
		log.Printf("Using mock vendor api")
	} else {
		log.Printf("Using prod vendor api")
		httpClient := api.NewHTTPClient(config.VENDOR_API_ENDPOINT_BASE)
		vendorApiClient = vendorapi.NewVendorApiClient(httpClient)
	}

	// Initialize geocoder - mock outside prod
	var geocoder geocode.Geocoder
	if env != "prod" {
		geocoder = geocode.NewGeocoderMock()
		log.Printf("Using mock geocoder")
	} else {
		log.Printf("Using prod geocoder")
		httpClient := api.NewHTTPClient(config.GEOCODE_ENDPOINT_BASE)
		geocoder = geocode.NewGoogleGeocoder(httpClient, config.GeocodeAPIKey())
	}

	// Initialize service layer
	mapService := services.NewMapService(redisVendorDao, vendorApiClient)

	// Initialize session state
	sessionStore := session.NewStore()
	sessionManager := session.NewManager(config.SessionSecret())

	// Initialize handlers
	vendorHandler := handlers.NewVendorHandler(mapService)
	authHandler := handlers.NewAuthHandler(vendorApiClient, sessionStore, sessionManager)
	editorHandler := handlers.NewEditorHandler(vendorApiClient, locationChannel)
	pickerHandler := handlers.NewPickerHandler(locationChannel, geocoder)

	// Initialize mux router
	muxRouter := mux.NewRouter()

	// Initialize router
	router := server.NewRouter(vendorHandler, authHandler, editorHandler, pickerHandler, sessionManager, muxRouter)

	// initialize truckmap server
	truckMapHttpServer := server.NewTruckMapHttpServer(router, muxRouter)

	vendorsRefresherService := services.NewVendorsRefresherService(redisVendorDao, vendorApiClient)

	return &Container{
		RedisClient:             redisClient,
		RedisVendorDao:          redisVendorDao,
		LocationChannel:         locationChannel,
		VendorAPI:               vendorApiClient,
		Geocoder:                geocoder,
		MapService:              mapService,
		SessionStore:            sessionStore,
		SessionManager:          sessionManager,
		VendorHandler:           vendorHandler,
		AuthHandler:             authHandler,
		EditorHandler:           editorHandler,
		PickerHandler:           pickerHandler,
		MuxRouter:               muxRouter,
		Router:                  router,
		TruckMapHttpServer:      truckMapHttpServer,
		VendorsRefresherService: vendorsRefresherService,
	}
}
