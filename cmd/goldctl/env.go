package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"goldbook/internal/client"
	"goldbook/internal/config"
	"goldbook/internal/database"
	"goldbook/internal/identity"
	"goldbook/internal/ledger"
	"goldbook/internal/portfolio"
	"goldbook/internal/pricefeed"
	"goldbook/internal/services"
	"goldbook/internal/store"
	"goldbook/internal/uuid"
)

// localUserID owns records kept in local mode by a user who never signed in.
const localUserID = "local"

// env is everything one command run needs.
type env struct {
	cfg     *config.Config
	api     *client.Client
	session identity.Session
	mode    ledger.Mode
	ledger  services.LedgerServicer
	db      *database.Manager
}

// openEnv loads configuration and the saved sign-in and builds a ledger
// service for the configured storage mode. modeOverride, when set, replaces
// STORAGE_MODE. priceOverride, when set, is used before any other feed.
func openEnv(cfg *config.Config, modeOverride string, priceOverride *int64) (*env, error) {
	modeName := cfg.StorageMode
	if modeOverride != "" {
		modeName = modeOverride
	}
	mode, err := ledger.ParseMode(modeName)
	if err != nil {
		return nil, err
	}
	policy, err := portfolio.ParseSellPolicy(cfg.SellPolicy)
	if err != nil {
		return nil, err
	}

	e := &env{
		cfg:  cfg,
		mode: mode,
		api:  client.New(cfg.RemoteAPIURL, &http.Client{Timeout: cfg.RemoteTimeout}),
	}

	saved, err := identity.LoadSession(cfg.TokenFile)
	switch {
	case err == nil:
		e.session = saved.Session()
	case errors.Is(err, identity.ErrNoSession) && mode == ledger.ModeLocal:
		e.session = identity.Session{UserID: localUserID}
	case errors.Is(err, identity.ErrNoSession):
		return nil, fmt.Errorf("storage mode %s needs a signed-in user: run goldctl login first", mode)
	default:
		return nil, err
	}

	var remote, local ledger.Store
	if mode != ledger.ModeLocal {
		remote = store.NewRemoteStore(e.api)
	}
	if mode != ledger.ModeRemote {
		e.db, err = database.NewManager(database.LocalConfig(cfg.LocalDBPath))
		if err != nil {
			return nil, err
		}
		if err := e.db.RunMigrations(); err != nil {
			_ = e.db.Close()
			return nil, err
		}
		local = store.NewGormStore(e.db.DB(), uuid.V7{}, ledger.SourceLocal)
	}

	gateway, err := ledger.NewGateway(mode, remote, local, ledger.WithRemoteTimeout(cfg.RemoteTimeout))
	if err != nil {
		e.close()
		return nil, err
	}

	var feeds []pricefeed.Feed
	if priceOverride != nil {
		feeds = append(feeds, pricefeed.NewStatic(*priceOverride))
	}
	if mode != ledger.ModeLocal {
		feeds = append(feeds, pricefeed.NewRemote(e.api, e.session.Token, cfg.RemoteTimeout))
	}
	if cfg.GoldPricePerGram > 0 {
		feeds = append(feeds, pricefeed.NewStatic(cfg.GoldPricePerGram))
	}

	e.ledger = services.NewLedgerService(gateway, pricefeed.NewChain(feeds...),
		services.WithSellPolicy(policy),
		services.WithCurrency(cfg.Currency),
	)
	return e, nil
}

func (e *env) close() {
	if e.db != nil {
		_ = e.db.Close()
	}
}

// login signs in against the API server and saves the session.
func login(ctx context.Context, cfg *config.Config, api *client.Client, email, password string) (*identity.SavedSession, error) {
	res, err := api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	saved := identity.SavedSession{UserID: res.User.ID, Email: res.User.Email, Token: res.Token, SavedAt: time.Now().UTC()}
	if err := identity.SaveSession(cfg.TokenFile, saved); err != nil {
		return nil, err
	}
	return &saved, nil
}
