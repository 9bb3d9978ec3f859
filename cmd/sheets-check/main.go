// Command sheets-check verifies the configured store is reachable and
// prints a short summary of the registry and guestbook.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/invitation-backend/internal/gifts"
	"github.com/angelmondragon/invitation-backend/internal/messages"
	"github.com/angelmondragon/invitation-backend/pkg/config"
	"github.com/angelmondragon/invitation-backend/pkg/logger"
	"github.com/angelmondragon/invitation-backend/pkg/sheets"
)

const checkTimeout = 30 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "sheets-check"})
	_ = godotenv.Load()

	cfg, err := config.Load()
	requireResource(logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "sheets-check",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()
	ctx = logg.WithField(ctx, "store_driver", cfg.App.StoreDriver)

	store, closeStore, err := sheets.Open(ctx, cfg, logg)
	requireResource(logg, "store", err)
	defer closeStore()

	report, err := collect(ctx, store)
	requireResource(logg, "summary", err)

	fmt.Printf("gifts:            %d\n", report.gifts)
	fmt.Printf("gifts with notes: %d\n", report.withNotes)
	fmt.Printf("messages:         %d\n", report.messages)
	fmt.Printf("gifts header:     %s\n", strings.Join(report.header, " | "))
}

type summary struct {
	gifts     int
	withNotes int
	messages  int
	header    []string
}

func collect(ctx context.Context, store sheets.Store) (*summary, error) {
	giftService, err := gifts.NewService(gifts.ServiceParams{Repo: gifts.NewRepository(store)})
	if err != nil {
		return nil, err
	}
	messageService, err := messages.NewService(messages.ServiceParams{Store: store})
	if err != nil {
		return nil, err
	}

	list, err := giftService.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing gifts: %w", err)
	}
	guestbook, err := messageService.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	rows, err := store.ReadRange(ctx, sheets.GiftsRange)
	if err != nil {
		return nil, fmt.Errorf("reading gifts header: %w", err)
	}

	out := &summary{gifts: len(list), messages: len(guestbook)}
	for _, gift := range list {
		if strings.TrimSpace(gift.Notes) != "" {
			out.withNotes++
		}
	}
	if len(rows) > 0 {
		out.header = rows[0]
	}
	return out, nil
}

func requireResource(logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	logg.Error(logg.WithField(context.Background(), "resource", name), "sheets check failed", err)
	os.Exit(1)
}
