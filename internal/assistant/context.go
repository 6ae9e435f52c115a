package assistant

import (
	"context"
	"sync/atomic"
)

// BusinessContext is a point-in-time, read-only summary of business metrics
// used to ground model prompts. Field order is fixed so serialized prompts
// are reproducible for identical snapshots.
type BusinessContext struct {
	Inventory InventorySnapshot `json:"inventory"`
	Customers CustomerSnapshot  `json:"customers"`
	Sales     SalesSnapshot     `json:"sales"`
	Market    MarketSnapshot    `json:"market"`
}

type InventorySnapshot struct {
	TotalItems      int      `json:"totalItems"`
	LowStockItems   int      `json:"lowStockItems"`
	ExpiringItems   int      `json:"expiringItems"`
	TopSellingItems []string `json:"topSellingItems"`
	Categories      []string `json:"categories"`
}

type CustomerSnapshot struct {
	TotalCustomers  int      `json:"totalCustomers"`
	ActiveCustomers int      `json:"activeCustomers"`
	TopCustomers    []string `json:"topCustomers"`
	CreditCustomers int      `json:"creditCustomers"`
}

type SalesSnapshot struct {
	TodaySales    int     `json:"todaySales"`
	TodayRevenue  float64 `json:"todayRevenue"`
	WeeklyGrowth  float64 `json:"weeklyGrowth"`
	MonthlyGrowth float64 `json:"monthlyGrowth"`
}

type MarketSnapshot struct {
	CurrentSeason     string   `json:"currentSeason"`
	UpcomingFestivals []string `json:"upcomingFestivals"`
	WeatherImpact     string   `json:"weatherImpact"`
	PriceVolatility   string   `json:"priceVolatility"`
}

// SnapshotSource supplies a fresh BusinessContext. Implementations may read
// from a live data layer; failures must not disturb the last-known-good
// snapshot held by Snapshots.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (BusinessContext, error)
}

// Snapshots holds the current BusinessContext. Refresh replaces the whole
// value atomically; readers never observe a partially updated snapshot.
type Snapshots struct {
	source SnapshotSource
	cur    atomic.Pointer[BusinessContext]
}

func NewSnapshots(source SnapshotSource) *Snapshots {
	s := &Snapshots{source: source}
	s.cur.Store(&BusinessContext{})
	return s
}

// Refresh pulls a new snapshot from the source and swaps it in. On source
// failure the previous snapshot is retained and the error returned.
func (s *Snapshots) Refresh(ctx context.Context) error {
	snap, err := s.source.Snapshot(ctx)
	if err != nil {
		return err
	}
	s.cur.Store(&snap)
	return nil
}

// Current returns the last refreshed snapshot, or a zero snapshot if
// Refresh has never succeeded.
func (s *Snapshots) Current() BusinessContext {
	return *s.cur.Load()
}

// StaticSource returns a fixed snapshot. The default carries the demo mandi
// dataset so the gateway runs without a live data layer.
type StaticSource struct {
	Value BusinessContext
}

func (s StaticSource) Snapshot(context.Context) (BusinessContext, error) {
	return s.Value, nil
}

func DemoSource() StaticSource {
	return StaticSource{Value: BusinessContext{
		Inventory: InventorySnapshot{
			TotalItems:      1500,
			LowStockItems:   12,
			ExpiringItems:   8,
			TopSellingItems: []string{"Tomatoes", "Onions", "Potatoes", "Rice", "Wheat"},
			Categories:      []string{"Vegetables", "Fruits", "Grains", "Spices", "Dairy"},
		},
		Customers: CustomerSnapshot{
			TotalCustomers:  1240,
			ActiveCustomers: 890,
			TopCustomers:    []string{"Sharma Retail", "Gupta Wholesale", "Singh Traders"},
			CreditCustomers: 45,
		},
		Sales: SalesSnapshot{
			TodaySales:    342,
			TodayRevenue:  45600,
			WeeklyGrowth:  12.5,
			MonthlyGrowth: 8.3,
		},
		Market: MarketSnapshot{
			CurrentSeason:     "monsoon",
			UpcomingFestivals: []string{"Diwali", "Dussehra"},
			WeatherImpact:     "moderate",
			PriceVolatility:   "high",
		},
	}}
}
