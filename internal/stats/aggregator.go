package stats

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/dinhthuw/back1/internal/catalog"
	"github.com/dinhthuw/back1/internal/orders/app/queries"
	"github.com/dinhthuw/back1/internal/orders/domain"
	"github.com/dinhthuw/back1/internal/orders/ports"
	"github.com/dinhthuw/back1/internal/telemetry"
)

// ErrAggregation marks a statistics build that could not complete. Any
// underlying failure aborts the whole report; partial reports are never
// returned.
var ErrAggregation = errors.New("statistics aggregation failed")

const recentOrdersLimit = 10

// Aggregator computes the admin statistics report from the order store and
// the catalog. Every build works on a fresh snapshot of all orders.
type Aggregator struct {
	orders  ports.OrderRepository
	books   catalog.Repository
	metrics *Metrics
}

func NewAggregator(orders ports.OrderRepository, books catalog.Repository, metrics *Metrics) *Aggregator {
	return &Aggregator{
		orders:  orders,
		books:   books,
		metrics: metrics,
	}
}

// Build assembles the full report. Counting views and summing views are
// computed independently from the same snapshot, so a count view and its
// sum view always describe the same set of orders.
func (a *Aggregator) Build(ctx context.Context) (*Report, error) {
	ctx, span := telemetry.StartSpan(ctx, "Aggregator.Build")
	defer span.End()

	start := time.Now()
	report, err := a.build(ctx)
	a.metrics.RecordReportBuild(ctx, time.Since(start).Seconds(), err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, fmt.Errorf("%w: %w", ErrAggregation, err)
	}

	telemetry.AddSpanAttributes(span,
		attribute.Int64("stats.total_orders", report.TotalOrders),
		attribute.Int64("stats.total_books", report.TotalBooks),
	)
	telemetry.SetSpanSuccess(span)
	return report, nil
}

func (a *Aggregator) build(ctx context.Context) (*Report, error) {
	snapshot, err := a.orders.List(ctx, ports.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("load order snapshot: %w", err)
	}

	totalBooks, err := a.books.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count books: %w", err)
	}

	trendingBooks, err := a.books.CountTrending(ctx)
	if err != nil {
		return nil, fmt.Errorf("count trending books: %w", err)
	}

	recent, err := a.recentOrders(ctx, snapshot)
	if err != nil {
		return nil, err
	}

	return &Report{
		TotalOrders:           int64(len(snapshot)),
		TotalSales:            totalSales(snapshot),
		OrdersByPaymentMethod: groupByPaymentMethod(snapshot),
		OrdersByStatus:        groupByStatus(snapshot),
		OrdersByPaymentStatus: groupByPaymentStatus(snapshot),
		TrendingBooks:         trendingBooks,
		TotalBooks:            totalBooks,
		MonthlySales:          monthlySales(snapshot),
		RecentOrders:          recent,
	}, nil
}

func (a *Aggregator) recentOrders(ctx context.Context, snapshot []domain.Order) ([]queries.OrderView, error) {
	// The snapshot arrives newest first, so the head is the recent window.
	window := snapshot
	if len(window) > recentOrdersLimit {
		window = window[:recentOrdersLimit]
	}

	views, err := queries.ResolveOrders(ctx, a.books, window)
	if err != nil {
		return nil, fmt.Errorf("resolve recent orders: %w", err)
	}
	return views, nil
}

func totalSales(orders []domain.Order) decimal.Decimal {
	total := decimal.Zero
	for _, order := range orders {
		total = total.Add(order.TotalPrice)
	}
	return total
}

func groupByPaymentMethod(orders []domain.Order) []PaymentMethodGroup {
	counts := make(map[domain.PaymentMethod]int64)
	sums := make(map[domain.PaymentMethod]decimal.Decimal)
	for _, order := range orders {
		counts[order.PaymentMethod]++
		sums[order.PaymentMethod] = sums[order.PaymentMethod].Add(order.TotalPrice)
	}

	groups := make([]PaymentMethodGroup, 0, len(counts))
	for method, count := range counts {
		groups = append(groups, PaymentMethodGroup{
			PaymentMethod: method,
			Count:         count,
			TotalAmount:   sums[method],
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].PaymentMethod < groups[j].PaymentMethod
	})
	return groups
}

func groupByStatus(orders []domain.Order) []StatusGroup {
	counts := make(map[domain.OrderStatus]int64)
	for _, order := range orders {
		counts[order.Status]++
	}

	groups := make([]StatusGroup, 0, len(counts))
	for status, count := range counts {
		groups = append(groups, StatusGroup{Status: status, Count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Status < groups[j].Status
	})
	return groups
}

func groupByPaymentStatus(orders []domain.Order) []PaymentStatusGroup {
	counts := make(map[domain.PaymentStatus]int64)
	sums := make(map[domain.PaymentStatus]decimal.Decimal)
	for _, order := range orders {
		counts[order.PaymentStatus]++
		sums[order.PaymentStatus] = sums[order.PaymentStatus].Add(order.TotalPrice)
	}

	groups := make([]PaymentStatusGroup, 0, len(counts))
	for status, count := range counts {
		groups = append(groups, PaymentStatusGroup{
			PaymentStatus: status,
			Count:         count,
			TotalAmount:   sums[status],
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].PaymentStatus < groups[j].PaymentStatus
	})
	return groups
}

func monthlySales(orders []domain.Order) []MonthlyBucket {
	sums := make(map[string]decimal.Decimal)
	counts := make(map[string]int64)
	for _, order := range orders {
		month := order.CreatedAt.UTC().Format("2006-01")
		sums[month] = sums[month].Add(order.TotalPrice)
		counts[month]++
	}

	buckets := make([]MonthlyBucket, 0, len(sums))
	for month := range sums {
		buckets = append(buckets, MonthlyBucket{
			Month:       month,
			TotalSales:  sums[month],
			TotalOrders: counts[month],
		})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Month < buckets[j].Month
	})
	return buckets
}
