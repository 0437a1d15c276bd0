package dto

import "github.com/shopspring/decimal"

// DateRangeFilter is shared by all report endpoints.
type DateRangeFilter struct {
	StartDate string `form:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date"   validate:"omitempty,datetime=2006-01-02"`
}

// ─── Sales report ────────────────────────────────────────────────────────────

type TopProduct struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type SalesReportResponse struct {
	TotalSales     int64                      `json:"total_sales"`
	TotalRevenue   decimal.Decimal            `json:"total_revenue"`
	AverageTicket  decimal.Decimal            `json:"average_ticket"`
	PaymentMethods map[string]decimal.Decimal `json:"payment_methods"`
	TopProducts    []TopProduct               `json:"top_products"`
}

// ─── Client report ───────────────────────────────────────────────────────────

type TopClient struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
	LoyaltyPoints int             `json:"loyalty_points"`
}

type ClientReportResponse struct {
	TotalClients int64           `json:"total_clients"`
	TotalSpent   decimal.Decimal `json:"total_spent"`
	AverageSpent decimal.Decimal `json:"average_spent"`
	TopClients   []TopClient     `json:"top_clients"`
}

// ─── Product report ──────────────────────────────────────────────────────────

type LowStockProduct struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Stock    int    `json:"stock"`
	MinStock int    `json:"min_stock"`
}

type TopSeller struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	TotalSold int             `json:"total_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type ProductReportResponse struct {
	TotalProducts  int64             `json:"total_products"`
	InventoryValue decimal.Decimal   `json:"inventory_value"`
	LowStock       []LowStockProduct `json:"low_stock"`
	TopSellers     []TopSeller       `json:"top_sellers"`
}

// ─── Cash report ─────────────────────────────────────────────────────────────

type CashReportResponse struct {
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	TotalWithdrawals decimal.Decimal `json:"total_withdrawals"`
	TotalDeposits    decimal.Decimal `json:"total_deposits"`
	NetCashFlow      decimal.Decimal `json:"net_cash_flow"`
}

// ─── Dashboard ───────────────────────────────────────────────────────────────

type DayRevenue struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
	Count   int64           `json:"count"`
}

type DashboardResponse struct {
	TodayAppointments    int64                 `json:"today_appointments"`
	TodayRevenue         decimal.Decimal       `json:"today_revenue"`
	TodaySalesCount      int64                 `json:"today_sales_count"`
	MonthRevenue         decimal.Decimal       `json:"month_revenue"`
	MonthSalesCount      int64                 `json:"month_sales_count"`
	ActiveClients        int64                 `json:"active_clients"`
	LowStockCount        int64                 `json:"low_stock_count"`
	UnreadNotifications  int64                 `json:"unread_notifications"`
	OpenCashSession      *CashSessionResponse  `json:"open_cash_session"`
	UpcomingAppointments []AppointmentResponse `json:"upcoming_appointments"`
	RecentSales          []SaleListItem        `json:"recent_sales"`
	SalesChart           []DayRevenue          `json:"sales_chart"`
}
