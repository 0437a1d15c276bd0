package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Sergiom84/Lucy3000/internal/dto"
	"github.com/Sergiom84/Lucy3000/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	dashboardCacheKey = "dashboard:summary"
	dashboardCacheTTL = 30 * time.Second
)

type DashboardService interface {
	Summary(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	reportRepo       repository.ReportRepository
	appointmentRepo  repository.AppointmentRepository
	saleRepo         repository.SaleRepository
	notificationRepo repository.NotificationRepository
	cash             CashService
	rdb              *redis.Client
}

func NewDashboardService(
	reportRepo repository.ReportRepository,
	appointmentRepo repository.AppointmentRepository,
	saleRepo repository.SaleRepository,
	notificationRepo repository.NotificationRepository,
	cash CashService,
	rdb *redis.Client,
) DashboardService {
	return &dashboardService{
		reportRepo:       reportRepo,
		appointmentRepo:  appointmentRepo,
		saleRepo:         saleRepo,
		notificationRepo: notificationRepo,
		cash:             cash,
		rdb:              rdb,
	}
}

// Summary aggregates the landing-page numbers. The whole payload is cached
// in Redis for a short TTL; the dashboard polls, the queries are not free.
func (s *dashboardService) Summary(ctx context.Context) (*dto.DashboardResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, dashboardCacheKey).Result(); err == nil {
			var resp dto.DashboardResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return &resp, nil
			}
		}
	}

	resp, err := s.build(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, dashboardCacheKey, data, dashboardCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("dashboard cache write failed")
			}
		}
	}
	return resp, nil
}

func (s *dashboardService) build(ctx context.Context) (*dto.DashboardResponse, error) {
	now := time.Now()
	today := now.Format("2006-01-02")
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")

	resp := &dto.DashboardResponse{}

	todayAppts, err := s.appointmentRepo.CountByDate(ctx, now)
	if err != nil {
		return nil, err
	}
	resp.TodayAppointments = todayAppts

	todayCount, todayRevenue, err := s.reportRepo.SalesTotals(ctx, today, today)
	if err != nil {
		return nil, err
	}
	resp.TodaySalesCount = todayCount
	resp.TodayRevenue = todayRevenue

	monthCount, monthRevenue, err := s.reportRepo.SalesTotals(ctx, monthStart, today)
	if err != nil {
		return nil, err
	}
	resp.MonthSalesCount = monthCount
	resp.MonthRevenue = monthRevenue

	if n, err := s.reportRepo.CountActiveClients(ctx); err == nil {
		resp.ActiveClients = n
	}
	if n, err := s.reportRepo.CountLowStock(ctx); err == nil {
		resp.LowStockCount = n
	}
	if n, err := s.notificationRepo.CountUnread(ctx); err == nil {
		resp.UnreadNotifications = n
	}

	if session, err := s.cash.Current(ctx); err == nil {
		resp.OpenCashSession = session
	}

	if appts, err := s.appointmentRepo.FindByDate(ctx, now); err == nil {
		for i := range appts {
			resp.UpcomingAppointments = append(resp.UpcomingAppointments, appointmentToResponse(&appts[i]))
		}
	}

	if sales, _, err := s.saleRepo.List(ctx, dto.SaleFilter{Status: "all", Page: 1, Limit: 5}); err == nil {
		for i := range sales {
			resp.RecentSales = append(resp.RecentSales, saleToListItem(&sales[i]))
		}
	}

	if points, err := s.reportRepo.RevenueByDay(ctx, 7); err == nil {
		for _, p := range points {
			resp.SalesChart = append(resp.SalesChart, dto.DayRevenue{
				Date:    p.Day,
				Revenue: p.Revenue,
				Count:   p.Count,
			})
		}
	}

	return resp, nil
}
