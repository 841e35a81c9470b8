// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// RiskLevel classifies the business risk of a priced line item.
type RiskLevel string

const (
	RiskLow  RiskLevel = "Low"
	RiskHigh RiskLevel = "High"
)

// RiskAssessment is derived from exactly one PricedLineItem.
type RiskAssessment struct {
	ProductName string    `json:"product_name" yaml:"product_name"`
	Level       RiskLevel `json:"risk_level" yaml:"risk_level"`
	Summary     string    `json:"summary" yaml:"summary"`
	Reasons     []string  `json:"reasons,omitempty" yaml:"reasons,omitempty"`
}
