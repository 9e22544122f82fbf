package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/crewdesk-dev/back-office/backend/internal/config"
	"github.com/crewdesk-dev/back-office/backend/internal/repository"
	"github.com/crewdesk-dev/back-office/backend/internal/seed"
	"github.com/crewdesk-dev/back-office/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "operation to run (1: insert random users, 2: insert random clients, 3: insert random jobseekers, 4: insert random positions, 5: insert demo data set)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("unable to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("unable to create the database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open only builds the pool object, it does not connect, so ping explicitly
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("unable to reach the database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation specified")
	case 1:
		if n <= 0 {
			slog.Error("please pass a valid user count")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			user, err := utils.GenerateRandomUser(cfg.Seed.User.Password)
			if err != nil {
				slog.Error("unable to generate user", slog.String("error", err.Error()))
				continue
			}

			if err := repo.CreateUser(user); err != nil {
				slog.Error("unable to insert user", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("users inserted", slog.Int("count", n-cnt))
	case 2:
		if n <= 0 {
			slog.Error("please pass a valid client count")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			client := utils.GenerateRandomClient()
			if err := repo.CreateClient(client); err != nil {
				slog.Error("unable to insert client", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("clients inserted", slog.Int("count", n-cnt))
	case 3:
		if n <= 0 {
			slog.Error("please pass a valid jobseeker count")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			jobseeker := utils.GenerateRandomJobseeker()
			if err := repo.CreateJobseeker(jobseeker); err != nil {
				slog.Error("unable to insert jobseeker", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("jobseekers inserted", slog.Int("count", n-cnt))
	case 4:
		if n <= 0 {
			slog.Error("please pass a valid position count")
			return
		}

		// positions hang off existing clients
		clients, _, err := repo.GetClients("", 100, 0)
		if err != nil {
			slog.Error("unable to load clients", slog.String("error", err.Error()))
			return
		}
		if len(clients) == 0 {
			slog.Error("no clients to attach positions to, run -op 2 first")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			client := clients[rand.Intn(len(clients))]
			position := utils.GenerateRandomPosition(client.ID)
			if err := repo.CreatePosition(position); err != nil {
				slog.Error("unable to insert position", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("positions inserted", slog.Int("count", n-cnt))
	case 5:
		seed.SeedDemoData(repo)
	default:
		slog.Error("unknown operation")
	}
}
