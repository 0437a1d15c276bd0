package service

import (
	"context"

	"github.com/Sergiom84/Lucy3000/internal/dto"
	"github.com/Sergiom84/Lucy3000/internal/model"
	"github.com/Sergiom84/Lucy3000/internal/repository"

	"github.com/shopspring/decimal"
)

const reportTopLimit = 10

type ReportService interface {
	Sales(ctx context.Context, filter dto.DateRangeFilter) (*dto.SalesReportResponse, error)
	Clients(ctx context.Context) (*dto.ClientReportResponse, error)
	Products(ctx context.Context, filter dto.DateRangeFilter) (*dto.ProductReportResponse, error)
	Cash(ctx context.Context, filter dto.DateRangeFilter) (*dto.CashReportResponse, error)
}

type reportService struct {
	repo        repository.ReportRepository
	productRepo repository.ProductRepository
	cashRepo    repository.CashRepository
}

func NewReportService(
	repo repository.ReportRepository,
	productRepo repository.ProductRepository,
	cashRepo repository.CashRepository,
) ReportService {
	return &reportService{repo: repo, productRepo: productRepo, cashRepo: cashRepo}
}

func (s *reportService) Sales(ctx context.Context, filter dto.DateRangeFilter) (*dto.SalesReportResponse, error) {
	count, revenue, err := s.repo.SalesTotals(ctx, filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, err
	}

	average := decimal.Zero
	if count > 0 {
		average = revenue.Div(decimal.NewFromInt(count)).Round(2)
	}

	byMethod, err := s.repo.SalesByPaymentMethod(ctx, filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, err
	}
	methods := make(map[string]decimal.Decimal, len(byMethod))
	for _, row := range byMethod {
		methods[row.PaymentMethod] = row.Total
	}

	topRows, err := s.repo.TopProducts(ctx, filter.StartDate, filter.EndDate, reportTopLimit)
	if err != nil {
		return nil, err
	}
	top := make([]dto.TopProduct, 0, len(topRows))
	for _, row := range topRows {
		top = append(top, dto.TopProduct{Name: row.Name, Quantity: row.Quantity})
	}

	return &dto.SalesReportResponse{
		TotalSales:     count,
		TotalRevenue:   revenue,
		AverageTicket:  average,
		PaymentMethods: methods,
		TopProducts:    top,
	}, nil
}

func (s *reportService) Clients(ctx context.Context) (*dto.ClientReportResponse, error) {
	total, err := s.repo.CountActiveClients(ctx)
	if err != nil {
		return nil, err
	}
	spent, err := s.repo.SumClientSpend(ctx)
	if err != nil {
		return nil, err
	}
	average := decimal.Zero
	if total > 0 {
		average = spent.Div(decimal.NewFromInt(total)).Round(2)
	}

	clients, err := s.repo.TopClients(ctx, reportTopLimit)
	if err != nil {
		return nil, err
	}
	top := make([]dto.TopClient, 0, len(clients))
	for _, c := range clients {
		top = append(top, dto.TopClient{
			ID:            c.ID.String(),
			Name:          c.FirstName + " " + c.LastName,
			TotalSpent:    c.TotalSpent,
			LoyaltyPoints: c.LoyaltyPoints,
		})
	}

	return &dto.ClientReportResponse{
		TotalClients: total,
		TotalSpent:   spent,
		AverageSpent: average,
		TopClients:   top,
	}, nil
}

func (s *reportService) Products(ctx context.Context, filter dto.DateRangeFilter) (*dto.ProductReportResponse, error) {
	total, err := s.repo.CountProducts(ctx)
	if err != nil {
		return nil, err
	}
	value, err := s.repo.InventoryValue(ctx)
	if err != nil {
		return nil, err
	}

	lowStockProducts, err := s.productRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	lowStock := make([]dto.LowStockProduct, 0, len(lowStockProducts))
	for _, p := range lowStockProducts {
		lowStock = append(lowStock, dto.LowStockProduct{
			ID:       p.ID.String(),
			Name:     p.Name,
			Stock:    p.Stock,
			MinStock: p.MinStock,
		})
	}

	topRows, err := s.repo.TopProducts(ctx, filter.StartDate, filter.EndDate, reportTopLimit)
	if err != nil {
		return nil, err
	}
	sellers := make([]dto.TopSeller, 0, len(topRows))
	for _, row := range topRows {
		sellers = append(sellers, dto.TopSeller{
			ID:        row.ProductID,
			Name:      row.Name,
			TotalSold: row.Quantity,
			Revenue:   row.Revenue,
		})
	}

	return &dto.ProductReportResponse{
		TotalProducts:  total,
		InventoryValue: value,
		LowStock:       lowStock,
		TopSellers:     sellers,
	}, nil
}

func (s *reportService) Cash(ctx context.Context, filter dto.DateRangeFilter) (*dto.CashReportResponse, error) {
	movements, err := s.cashRepo.ListMovementsBetween(ctx, filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, err
	}

	resp := &dto.CashReportResponse{
		TotalIncome:      decimal.Zero,
		TotalExpenses:    decimal.Zero,
		TotalWithdrawals: decimal.Zero,
		TotalDeposits:    decimal.Zero,
	}
	for _, m := range movements {
		switch m.Type {
		case model.MovementIncome:
			resp.TotalIncome = resp.TotalIncome.Add(m.Amount)
		case model.MovementExpense:
			resp.TotalExpenses = resp.TotalExpenses.Add(m.Amount)
		case model.MovementWithdrawal:
			resp.TotalWithdrawals = resp.TotalWithdrawals.Add(m.Amount)
		case model.MovementDeposit:
			resp.TotalDeposits = resp.TotalDeposits.Add(m.Amount)
		}
	}
	resp.NetCashFlow = resp.TotalIncome.Add(resp.TotalDeposits).
		Sub(resp.TotalExpenses).Sub(resp.TotalWithdrawals)

	return resp, nil
}
