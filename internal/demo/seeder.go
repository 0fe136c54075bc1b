// Package demo seeds a small catalog of items and a couple of months of
// orders for development environments. Seeding runs once, guarded by a
// persisted flag so a restart does not duplicate the catalog.
package demo

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/salestracker/salestracker-server/internal/flags"
	"github.com/salestracker/salestracker-server/internal/item"
	itemdto "github.com/salestracker/salestracker-server/internal/item/dto"
	"github.com/salestracker/salestracker-server/internal/model"
	"github.com/salestracker/salestracker-server/internal/order"
	orderdto "github.com/salestracker/salestracker-server/internal/order/dto"
)

var productNames = []string{
	"Wireless Headphones", "USB-C Cable", "Portable Charger", "Bluetooth Speaker",
	"Phone Stand", "Screen Protector", "USB Hub", "Laptop Stand",
	"Keyboard", "Mouse Pad", "HDMI Cable", "Memory Card",
	"Case/Cover", "Tempered Glass", "Fast Charger", "Power Bank",
	"Webcam", "Microphone", "Phone Pop Socket", "Desk Lamp",
	"Cable Organizer", "Phone Ringer", "Smart Watch Band", "Ring Light",
}

var firstNames = []string{
	"John", "Sarah", "Michael", "Emma", "David", "Lisa", "James", "Mary",
	"Robert", "Jennifer", "William", "Patricia", "Richard", "Barbara",
	"Joseph", "Susan", "Thomas", "Jessica", "Christopher", "Karen",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
}

// Seeder creates demo records through the real usecases so allocation logic
// and validation run exactly as they would for user input.
type Seeder struct {
	items  item.UseCase
	orders order.UseCase
	flags  flags.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewSeeder(items item.UseCase, orders order.UseCase, flagStore flags.Store, log *zap.Logger) *Seeder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Seeder{
		items:  items,
		orders: orders,
		flags:  flagStore,
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// SeedIfNeeded seeds the demo catalog unless the loaded flag is already set.
func (s *Seeder) SeedIfNeeded(ctx context.Context) error {
	loaded, err := s.flags.Get(ctx, flags.DemoDataLoadedKey)
	if err != nil {
		return fmt.Errorf("read demo flag: %w", err)
	}
	if loaded {
		s.logger.Debug("demo data already loaded, skipping seed")
		return nil
	}

	if err := s.seed(ctx); err != nil {
		return err
	}

	if err := s.flags.Set(ctx, flags.DemoDataLoadedKey, true); err != nil {
		return fmt.Errorf("set demo flag: %w", err)
	}
	s.logger.Info("demo data seeded")
	return nil
}

func (s *Seeder) seed(ctx context.Context) error {
	// Fixed seed keeps the demo catalog reproducible between runs.
	rng := rand.New(rand.NewSource(42))

	items := make([]*model.Item, 0, len(productNames))
	for _, name := range productNames {
		cost := decimal.NewFromFloat(rng.Float64()*50 + 10).Round(2)
		salePrice := cost.Mul(decimal.NewFromFloat(rng.Float64() * 1.5)).Add(cost).Round(2)

		it, err := s.items.CreateItem(ctx, &itemdto.CreateItemInput{
			Name:        name,
			Description: "High-quality " + name,
			SalePrice:   &salePrice,
			Cost:        cost,
			CurrentQty:  rng.Intn(100),
		})
		if err != nil {
			return fmt.Errorf("seed item %q: %w", name, err)
		}
		items = append(items, it)
	}

	today := s.now()
	currentMonthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	previousMonthStart := currentMonthStart.AddDate(0, -1, 0)

	for i := 0; i < 15; i++ {
		if err := s.seedOrder(ctx, rng, items, currentMonthStart, false); err != nil {
			return err
		}
	}
	for i := 0; i < 10; i++ {
		if err := s.seedOrder(ctx, rng, items, previousMonthStart, true); err != nil {
			return err
		}
	}

	return nil
}

func (s *Seeder) seedOrder(ctx context.Context, rng *rand.Rand, items []*model.Item, monthStart time.Time, mayDeliver bool) error {
	daysInMonth := monthStart.AddDate(0, 1, 0).AddDate(0, 0, -1).Day()
	sellDate := monthStart.AddDate(0, 0, rng.Intn(daysInMonth))

	it := items[rng.Intn(len(items))]
	customer := firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))]

	// Price left unset so the item's sale price is applied as the default.
	o, err := s.orders.CreateOrder(ctx, &orderdto.CreateOrderInput{
		CustomerName: customer,
		ItemID:       it.ID,
		SellDate:     sellDate,
		Qty:          rng.Intn(5) + 1,
		Paid:         rng.Float64() > 0.2,
	})
	if err != nil {
		return fmt.Errorf("seed order for item %d: %w", it.ID, err)
	}

	if mayDeliver && rng.Float64() > 0.5 {
		if _, err := s.orders.MarkAsDelivered(ctx, o.ID); err != nil {
			return fmt.Errorf("deliver seeded order %d: %w", o.ID, err)
		}
	}
	return nil
}
