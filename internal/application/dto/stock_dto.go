package dto

import "github.com/shopspring/decimal"

// AssessRequest body para POST /api/stock/assess.
// pill_fraction y dose_amount aceptan número o texto ("0.5"); start_date en formato AAAA-MM-DD.
type AssessRequest struct {
	ID            string              `json:"id,omitempty"`
	Name          string              `json:"name,omitempty"`
	DosagePattern string              `json:"dosage_pattern"`
	DoseType      string              `json:"dose_type"`
	PillFraction  decimal.NullDecimal `json:"pill_fraction"`
	DoseAmount    decimal.NullDecimal `json:"dose_amount"`
	CurrentStock  decimal.NullDecimal `json:"current_stock"`
	StartDate     string              `json:"start_date,omitempty"`
	TreatmentDays *int                `json:"treatment_days,omitempty"`
	ReferenceDate string              `json:"reference_date,omitempty"`
}

// AssessBatchRequest body para POST /api/stock/assess/batch.
type AssessBatchRequest struct {
	ReferenceDate string          `json:"reference_date,omitempty"`
	Medications   []AssessRequest `json:"medications"`
}

// AssessmentDTO resultado de la evaluación de stock de un medicamento.
type AssessmentDTO struct {
	ID                  string           `json:"id,omitempty"`
	Name                string           `json:"name,omitempty"`
	ReferenceDate       string           `json:"reference_date"`
	DailyDoses          decimal.Decimal  `json:"daily_doses"`
	DailyUsage          decimal.Decimal  `json:"daily_usage"`
	UsageKnown          bool             `json:"usage_known"`
	CurrentStock        decimal.Decimal  `json:"current_stock"`
	SimpleDaysRemaining int64            `json:"simple_days_remaining"`
	DaysPassed          *int             `json:"days_passed,omitempty"`
	PillsNeeded         *decimal.Decimal `json:"pills_needed,omitempty"`
	TreatmentBalance    *decimal.Decimal `json:"treatment_balance,omitempty"`
	BalanceText         string           `json:"balance_text,omitempty"` // "1/2", "40"
	Status              string           `json:"status"`                 // ok | low | critical
	IsLowStock          bool             `json:"is_low_stock"`
	IsCritical          bool             `json:"is_critical"`
	NeedsReview         bool             `json:"needs_review"`
	Reasons             []string         `json:"reasons"`
}

// AssessBatchResponse respuesta de la evaluación por lote.
type AssessBatchResponse struct {
	ReferenceDate string          `json:"reference_date"`
	Total         int             `json:"total"`
	Low           int             `json:"low"`
	Critical      int             `json:"critical"`
	NeedsReview   int             `json:"needs_review"`
	Items         []AssessmentDTO `json:"items"`
}
