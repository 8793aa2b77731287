package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/zendworks/go-session-keeper/countdown"
	"github.com/zendworks/go-session-keeper/credentials"
	"github.com/zendworks/go-session-keeper/identity"
	"github.com/zendworks/go-session-keeper/internal/config"
	"github.com/zendworks/go-session-keeper/refresh"
	"github.com/zendworks/go-session-keeper/session"
	"github.com/zendworks/go-session-keeper/storage"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatal().Err(err).Msg("error running session watcher")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("session watcher stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	_ = godotenv.Load() // a .env file is optional

	c := config.New()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if c.GetEnv() == "DEV" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	displayAppname(c.GetAppName())

	ctx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	// Each iteration is one page context; a restart (refresh outcome) tears
	// it down and derives everything again from a fresh snapshot.
	for {
		restarted, err := runPageContext(ctx, c)
		if err != nil {
			return err
		}
		if !restarted {
			return nil
		}
		log.Info().Msg("page context restarting")
	}
}

func runPageContext(ctx context.Context, c config.Config) (restarted bool, err error) {
	attributeStore, err := credentials.NewFileStore(c.GetAttributeFile())
	if err != nil {
		return false, fmt.Errorf("attribute store: %w", err)
	}
	reader, err := credentials.NewReader(attributeStore)
	if err != nil {
		return false, fmt.Errorf("credentials reader: %w", err)
	}
	kv, err := storage.NewFileStore(c.GetStateFile())
	if err != nil {
		return false, fmt.Errorf("key-value store: %w", err)
	}

	restartCh := make(chan struct{}, 1)
	restart := func() {
		select {
		case restartCh <- struct{}{}:
		default:
		}
	}

	coordinator, err := refresh.NewCoordinator(refresh.Config{
		Endpoint:           c.GetRefreshEndpoint(),
		IncludeCredentials: c.GetIncludeCredentialsOnRefresh(),
	}, http.DefaultClient, kv, restart)
	if err != nil {
		return false, fmt.Errorf("refresh coordinator: %w", err)
	}
	resolver, err := identity.NewResolver(c.GetIdentityEndpoint(), http.DefaultClient)
	if err != nil {
		return false, fmt.Errorf("identity resolver: %w", err)
	}
	identities, err := identity.NewStore(kv)
	if err != nil {
		return false, fmt.Errorf("identity store: %w", err)
	}

	scheduler := countdown.NewScheduler(countdown.WithPendingSignal(func() {
		log.Info().Msg("reauthentication pending")
	}))

	manager, err := session.NewManager(session.Deps{
		Credentials: reader,
		Resolver:    resolver,
		Identities:  identities,
		Refresher:   coordinator,
		Scheduler:   scheduler,
		KeyValue:    kv,
		Restart:     restart,
	}, session.Config{
		ClearCounterOnLogout: c.GetClearCounterOnLogout(),
	}, session.WithTick(func(remaining string) {
		log.Info().Str("remaining", remaining).Msg("session expires in")
	}))
	if err != nil {
		return false, fmt.Errorf("session manager: %w", err)
	}

	unsubscribe := manager.OnReady(func(user identity.Identity) {
		if user.Empty() {
			log.Info().Msg("session ready without identity")
			return
		}
		log.Info().Str("name", user.Name).Str("email", user.Email).Msg("session ready")
	})
	defer unsubscribe()

	manager.Start(ctx)

	select {
	case <-ctx.Done():
		return false, nil
	case <-restartCh:
		return true, nil
	}
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
