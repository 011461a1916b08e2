package calc

import "github.com/dmitrijs2005/jobkeeper/internal/client/models"

func LaborCost(job models.Job) float64 {
	return job.LaborHours * job.LaborRate
}

func ExpensesTotal(job models.Job) float64 {
	var sum float64
	for _, e := range job.Expenses {
		sum += e.Amount
	}
	return sum
}

// TotalCost is labor + materials + expenses.
func TotalCost(job models.Job) float64 {
	return LaborCost(job) + job.MaterialsCost + ExpensesTotal(job)
}

// PaidRevenueForJob sums the totals of paid invoices tied to jobID.
func PaidRevenueForJob(invoices []models.Invoice, jobID string) float64 {
	var sum float64
	for _, inv := range invoices {
		if inv.Status == models.InvoiceStatusPaid && inv.HasJob(jobID) {
			sum += inv.Total
		}
	}
	return sum
}

func Profit(paidRevenue, totalCost float64) float64 {
	return paidRevenue - totalCost
}

// ProfitLabel is "Loss" for a negative profit and "Profit" otherwise.
func ProfitLabel(profit float64) string {
	if profit < 0 {
		return "Loss"
	}
	return "Profit"
}

type Financials struct {
	LaborCost     float64
	MaterialsCost float64
	ExpensesTotal float64
	TotalCost     float64
	PaidRevenue   float64
	Profit        float64
	ProfitLabel   string
}

func JobFinancials(job models.Job, invoices []models.Invoice) Financials {
	f := Financials{
		LaborCost:     LaborCost(job),
		MaterialsCost: job.MaterialsCost,
		ExpensesTotal: ExpensesTotal(job),
		TotalCost:     TotalCost(job),
		PaidRevenue:   PaidRevenueForJob(invoices, job.ID),
	}
	f.Profit = Profit(f.PaidRevenue, f.TotalCost)
	f.ProfitLabel = ProfitLabel(f.Profit)
	return f
}
