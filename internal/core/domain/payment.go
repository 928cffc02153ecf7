package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus indicates the settlement state of a payment.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentVoided  PaymentStatus = "VOIDED"
)

// Payment is a settlement derived from a worker's assignments on a plot.
// The capacity core only reads payments (for analytics); it never mutates
// capacity through them.
type Payment struct {
	PaymentID   int64           `json:"paymentID"`
	PlotID      int64           `json:"plotID"`
	WorkerID    int64           `json:"workerID"`
	GrossPay    decimal.Decimal `json:"grossPay"`
	NetPay      decimal.Decimal `json:"netPay"`
	Deductions  decimal.Decimal `json:"deductions"`
	PaymentDate time.Time       `json:"paymentDate"`
	Status      PaymentStatus   `json:"status"`
	AuditFields
}

// Worker is an external entity; only id and display name are known here.
type Worker struct {
	WorkerID int64  `json:"workerID"`
	Name     string `json:"name"`
}
