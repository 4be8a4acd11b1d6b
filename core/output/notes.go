package output

import (
	"fmt"

	"github.com/shopspring/decimal"

	"infra-estimator/core/pricing"
	"infra-estimator/core/types"
)

// InfoNotes returns the informational panel shown under an estimate
func InfoNotes(preset types.Preset) []Note {
	var notes []Note

	if preset == types.PresetArchitecture {
		notes = append(notes, Note{
			Title: "Architecture",
			Text:  "Monorepo uses fewer, larger instances and is typically 30-50% cheaper. Microservices uses more, smaller instances with better isolation.",
		})
	}

	notes = append(notes,
		Note{Title: "Currency", Text: fmt.Sprintf("Exchange rate: 1 USD = ₹%s", types.USDToINR.String())},
		Note{Title: "Region", Text: "Prices are based on us-east-1 (N. Virginia). Other regions may vary."},
		Note{Title: "Free Tiers", Text: freeTiers(preset)},
		Note{Title: "Optimization", Text: "Reserved Instances can save 40-70% on EC2 costs."},
		Note{Title: "Actual Usage", Text: "Costs vary with actual traffic patterns and data usage."},
	)

	switch preset {
	case types.PresetArchitecture:
		notes = append(notes, Note{
			Title: "Additional Costs",
			Text:  "Load balancers, CloudWatch and backups may add extra charges.",
		})
	case types.PresetProject:
		notes = append(notes, Note{
			Title: "Salaries",
			Text:  "Team costs use average monthly USD salaries for the selected seniority.",
		})
	}

	return notes
}

func freeTiers(preset types.Preset) string {
	rates := pricing.DefaultRates()
	if tables, err := pricing.ForPreset(preset); err == nil {
		rates = tables.Rates
	}

	text := fmt.Sprintf("Cognito first %sk MAU, SNS/SQS first %sM requests and the first %s GB of data transfer are free.",
		rates.CognitoFreeMAU.Div(decimal.NewFromInt(1000)).String(),
		rates.MessagingFreeRequests.Div(decimal.NewFromInt(1_000_000)).String(),
		rates.TransferFreeGB.String())
	if preset == types.PresetProject {
		text += fmt.Sprintf(" %s CloudWatch metrics and %s GB of logs are free.",
			rates.FreeMetrics.String(), rates.FreeLogGB.String())
	}
	return text
}
