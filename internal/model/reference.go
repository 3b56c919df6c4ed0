package model

import "github.com/shopspring/decimal"

type Category struct {
	Key    int64
	Name   string
	SeqNum int
}

type SubCategory struct {
	Key         int64
	CategoryKey int64
	Name        string
	SeqNum      int
}

type Currency struct {
	Key          int64
	Code         string
	Name         string
	ExchangeRate decimal.Decimal
}
