package service

import (
	"time"

	"github.com/shopspring/decimal"
)

func nowUTC() time.Time { return time.Now().UTC() }

func decimalFromInt(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }

func decimalFromString(s string) (decimal.Decimal, error) { return decimal.NewFromString(s) }
