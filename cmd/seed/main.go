package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/shiftwise-dev/shiftwise/backend/internal/config"
	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
	"github.com/shiftwise-dev/shiftwise/backend/internal/repository"
	"github.com/shiftwise-dev/shiftwise/backend/internal/seed"
	"github.com/shiftwise-dev/shiftwise/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var shopID int64

	flag.IntVar(&op, "op", 0, "operation to run (1: insert random employees, 2: insert random shift labels, 3: insert demo data)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Int64Var(&shopID, "shop-id", 0, "shop to attach random employees or labels to")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database connection pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open only builds the pool, it does not dial anything yet
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to the database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation given")
	case 1:
		if n <= 0 {
			slog.Error("number of employees must be positive")
			return
		}
		if shopID <= 0 {
			slog.Error("a valid shop id is required")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			user, err := utils.GenerateRandomEmployee(cfg.Seed.User.Password, "shiftwise.test")
			if err != nil {
				slog.Error("failed to generate a random employee", slog.String("error", err.Error()))
				continue
			}

			if err := repo.CreateUser(user); err != nil {
				slog.Error("failed to insert employee", slog.String("error", err.Error()))
				continue
			}
			if err := repo.AddShopMember(shopID, user.ID, domain.ShopRoleMember); err != nil {
				slog.Error("failed to add employee to shop", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("employees inserted", slog.Int("count", n-cnt))
	case 2:
		if n <= 0 {
			slog.Error("number of labels must be positive")
			return
		}
		if shopID <= 0 {
			slog.Error("a valid shop id is required")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			label := utils.GenerateRandomShiftLabel(shopID)
			if err := repo.CreateShiftLabel(label); err != nil {
				slog.Error("failed to insert shift label", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("shift labels inserted", slog.Int("count", n-cnt))
	case 3:
		seed.SeedDemoData(repo, cfg.Seed.User.Password)
	default:
		slog.Error("unknown operation")
	}
}
