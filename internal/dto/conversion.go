package dto

import "github.com/shopspring/decimal"

// ConvertRequest asks for an ad-hoc currency conversion.
type ConvertRequest struct {
	Amount       decimal.Decimal `json:"amount" binding:"required,decimalgt0"`
	FromCurrency string          `json:"fromCurrency" binding:"required,len=3,uppercase"`
	ToCurrency   string          `json:"toCurrency" binding:"required,len=3,uppercase"`
}

// ConversionResult is the outcome of a currency normalization: the converted
// amount and the exchange rate that produced it.
type ConversionResult struct {
	Amount decimal.Decimal `json:"amount"`
	Rate   decimal.Decimal `json:"rate"`
}

// ConvertResponse echoes the request alongside the conversion outcome.
type ConvertResponse struct {
	OriginalAmount  decimal.Decimal `json:"originalAmount"`
	FromCurrency    string          `json:"fromCurrency"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	ToCurrency      string          `json:"toCurrency"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
}
