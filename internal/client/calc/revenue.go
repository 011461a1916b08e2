package calc

import "github.com/dmitrijs2005/jobkeeper/internal/client/models"

// TotalRevenue sums paid invoices.
func TotalRevenue(invoices []models.Invoice) float64 {
	var sum float64
	for _, inv := range invoices {
		if inv.Status == models.InvoiceStatusPaid {
			sum += inv.Total
		}
	}
	return sum
}

// PendingRevenue sums sent and overdue invoices.
func PendingRevenue(invoices []models.Invoice) float64 {
	var sum float64
	for _, inv := range invoices {
		if inv.Status == models.InvoiceStatusSent || inv.Status == models.InvoiceStatusOverdue {
			sum += inv.Total
		}
	}
	return sum
}

// ActiveJobs returns every job that is not completed, in input order.
func ActiveJobs(jobs []models.Job) []models.Job {
	out := []models.Job{}
	for _, j := range jobs {
		if j.Status != models.JobStatusCompleted {
			out = append(out, j)
		}
	}
	return out
}

func JobCountForClient(jobs []models.Job, clientID string) int {
	n := 0
	for _, j := range jobs {
		if j.ClientID == clientID {
			n++
		}
	}
	return n
}
