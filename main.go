package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vivekpradhan736/task-tracker-backend/handlers"
	"github.com/vivekpradhan736/task-tracker-backend/logging"
	"github.com/vivekpradhan736/task-tracker-backend/middleware"
	"github.com/vivekpradhan736/task-tracker-backend/services"
)

func createEmailIndex(collection *mongo.Collection) error {
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"email": 1},
		Options: options.Index().SetUnique(true),
	}
	_, err := collection.Indexes().CreateOne(context.TODO(), indexModel)
	if err != nil {
		return fmt.Errorf("failed to create unique index on user email: %v", err)
	}
	return nil
}

func main() {
	logging.InitLogger()
	logging.Logger.Info("Starting task tracker backend...")

	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("No .env file loaded: %v", err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	mongoDBName := os.Getenv("MONGO_DB_NAME")
	if mongoDBName == "" {
		mongoDBName = "task_tracker"
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logging.Logger.Fatal("JWT_SECRET is not set")
	}
	serverAddress := os.Getenv("SERVER_ADDRESS")
	if serverAddress == "" {
		serverAddress = ":8080"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logging.Logger.Fatalf("Database connection failed: %v", err)
	}
	defer client.Disconnect(context.TODO())

	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Connected to MongoDB at %s", mongoURI)

	db := client.Database(mongoDBName)
	usersCollection := db.Collection("users")
	projectsCollection := db.Collection("projects")
	tasksCollection := db.Collection("tasks")

	if err := createEmailIndex(usersCollection); err != nil {
		logging.Logger.Fatalf("Index creation failed: %v", err)
	}

	userService := services.NewUserService(usersCollection, []byte(jwtSecret))
	projectService := services.NewProjectService(projectsCollection)
	taskService := services.NewTaskService(tasksCollection, projectsCollection)

	authHandler := handlers.NewAuthHandler(userService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	healthHandler := handlers.NewHealthHandler(client)

	jwtAuth := middleware.JWTAuth([]byte(jwtSecret))

	r := mux.NewRouter()
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/signup", authHandler.Signup).Methods("POST")
	auth.HandleFunc("/login", authHandler.Login).Methods("POST")
	auth.Handle("/logout", jwtAuth(http.HandlerFunc(authHandler.Logout))).Methods("POST")

	projects := api.PathPrefix("/projects").Subrouter()
	projects.Use(jwtAuth)
	projects.HandleFunc("", projectHandler.CreateProject).Methods("POST")
	projects.HandleFunc("", projectHandler.GetProjects).Methods("GET")
	projects.HandleFunc("/{id}", projectHandler.GetProject).Methods("GET")
	projects.HandleFunc("/{id}", projectHandler.UpdateProject).Methods("PUT")
	projects.HandleFunc("/{id}", projectHandler.DeleteProject).Methods("DELETE")

	tasks := api.PathPrefix("/tasks").Subrouter()
	tasks.Use(jwtAuth)
	tasks.HandleFunc("", taskHandler.CreateTask).Methods("POST")
	tasks.HandleFunc("/project/{projectId}", taskHandler.GetTasksByProject).Methods("GET")
	tasks.HandleFunc("/{id}", taskHandler.GetTask).Methods("GET")
	tasks.HandleFunc("/{id}", taskHandler.UpdateTask).Methods("PUT")
	tasks.HandleFunc("/{id}", taskHandler.DeleteTask).Methods("DELETE")

	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      enableCORS(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logging.Logger.Infof("Server is running on %s", serverAddress)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Logger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Logger.Errorf("Server shutdown error: %v", err)
	}
}

// enableCORS allows cross-origin requests from the frontend.
func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
