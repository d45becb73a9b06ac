package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/lborowski/cinema-tickets/internal/booking"
	"github.com/lborowski/cinema-tickets/internal/config"
	"github.com/lborowski/cinema-tickets/internal/database"
	"github.com/lborowski/cinema-tickets/internal/handler"
	"github.com/lborowski/cinema-tickets/internal/queue"
	"github.com/lborowski/cinema-tickets/internal/repository"
	"github.com/lborowski/cinema-tickets/internal/router"
	"github.com/lborowski/cinema-tickets/internal/schedule"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	cfg := config.Load()
	loc := cfg.Location()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()

	movies := repository.NewMovieRepo(db)
	halls := repository.NewHallRepo(db)
	showings := repository.NewShowingRepo(db)
	orders := repository.NewOrderRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	hours := schedule.OpenHours{
		OpenHour:    cfg.OpeningHour,
		OpenMinute:  cfg.OpeningMinute,
		CloseHour:   cfg.ClosingHour,
		CloseMinute: cfg.ClosingMinute,
	}
	engine := schedule.NewEngine(movies, halls, showings, hours, loc)
	ledger := booking.NewLedger(orders, showings, halls)

	e := echo.New()
	e.HideBanner = true

	router.RegisterHealth(e)
	router.RegisterPublic(e, handler.NewPublicHandler(movies, halls, showings, ledger, loc), rdb)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterClient(e, handler.NewClientHandler(ledger, orders, showings, movies), cfg.JWTSecret)
	router.RegisterCashier(e, handler.NewCashierHandler(ledger, orders, users), cfg.JWTSecret)
	router.RegisterStaff(e, handler.NewStaffHandler(movies, halls, showings, users, engine), cfg.JWTSecret)

	go func() {
		if err := queue.StartOrderConsumer(); err != nil {
			log.Printf("order consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
