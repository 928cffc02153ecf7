package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkerConsumption is one worker's total capacity draw on a plot.
type WorkerConsumption struct {
	WorkerID int64           `json:"workerID"`
	Total    decimal.Decimal `json:"total"`
}

// DayConsumption is the total capacity drawn from a plot on one calendar day.
type DayConsumption struct {
	Date  time.Time       `json:"date"`
	Total decimal.Decimal `json:"total"`
}
