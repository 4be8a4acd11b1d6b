// Package cmd - pricing tables
package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"infra-estimator/core/pricing"
	"infra-estimator/core/types"
	"infra-estimator/core/ui"
	"infra-estimator/internal/errors"
)

func newPricingCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "pricing [preset]",
		Short: "Show the tier tables and unit rates of a preset",
		Long: `Show the sizing tiers and us-east-1 unit rates a preset prices with.

Examples:
  infra-estimator pricing
  infra-estimator pricing project`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := types.Presets
			if len(args) == 1 {
				presets = []types.Preset{types.Preset(args[0])}
			}

			w := ui.NewWriter(cmd.OutOrStdout(), root.noColor)
			for _, p := range presets {
				tables, err := pricing.ForPreset(p)
				if err != nil {
					return errors.Wrap(errors.TypeInput, "pricing", err)
				}
				printTables(w, tables)
			}
			return nil
		},
	}
}

func printTables(w *ui.Writer, t *pricing.Tables) {
	w.Header(fmt.Sprintf("Preset: %s", t.Name))
	w.Println("%s", w.Muted(t.Description))
	w.Println("")

	for _, arch := range []types.Architecture{types.ArchitectureMonorepo, types.ArchitectureMicroservices} {
		w.SubHeader(fmt.Sprintf("EC2 (%s)", arch))
		tbl := w.NewTable("Users up to", "Count", "Type", "Hourly").AlignRight(0, 1, 3)
		for _, tier := range t.EC2[arch] {
			tbl.AddRow(bound(tier.MaxUsers), strconv.Itoa(tier.Value.Count), tier.Value.Type, "$"+tier.Value.Hourly.String())
		}
		tbl.Render()
		if t.Name == types.PresetProject {
			w.Println("%s", w.Muted("Project sizing ignores architecture."))
			break
		}
	}

	nodeTable(w, "Redis node", t.RedisNode)
	intTable(w, "Redis instances", "Count", t.RedisInstances)
	intTable(w, "S3 storage", "GB", t.S3StorageGB)
	if len(t.RDSNode) > 0 {
		nodeTable(w, "RDS node", t.RDSNode)
		intTable(w, "RDS storage", "GB", t.RDSStorageGB)
	}

	r := t.Rates
	w.SubHeader("Unit rates")
	rates := w.NewTable("Rate", "Value").AlignRight(1)
	rates.AddRow("S3 per GB-month", "$"+r.S3PerGB.String())
	rates.AddRow("S3 per 1k requests", "$"+r.S3PerThousandRequest.String())
	rates.AddRow("Cognito free MAU", r.CognitoFreeMAU.String())
	rates.AddRow("Cognito per MAU (first tier)", "$"+r.CognitoFirstRate.String())
	rates.AddRow("Cognito per MAU (beyond)", "$"+r.CognitoSecondRate.String())
	rates.AddRow("SNS/SQS free requests", r.MessagingFreeRequests.String())
	rates.AddRow("SNS per million", "$"+r.SNSPerMillion.String())
	rates.AddRow("SQS per million", "$"+r.SQSPerMillion.String())
	rates.AddRow("Data transfer free GB", r.TransferFreeGB.String())
	rates.AddRow("Data transfer per GB", "$"+r.TransferPerGB.String())
	if t.Name == types.PresetProject {
		rates.AddRow("RDS storage per GB-month", "$"+r.RDSStoragePerGB.String())
		rates.AddRow("API Gateway per million", "$"+r.APIPerMillion.String())
		rates.AddRow("NAT gateway hourly", "$"+r.NATGatewayHourly.String())
		rates.AddRow("ALB hourly", "$"+r.ALBHourly.String())
		rates.AddRow("LCU hourly", "$"+r.LCUHourly.String())
		rates.AddRow("CloudWatch per metric", "$"+r.PerMetric.String())
		rates.AddRow("CloudWatch logs per GB", "$"+r.PerLogGB.String())
	}
	rates.Render()
	w.Println("")
}

func nodeTable(w *ui.Writer, title string, tiers []pricing.Tier[pricing.NodeType]) {
	w.SubHeader(title)
	tbl := w.NewTable("Users up to", "Type", "Hourly").AlignRight(0, 2)
	for _, tier := range tiers {
		tbl.AddRow(bound(tier.MaxUsers), tier.Value.Type, "$"+tier.Value.Hourly.String())
	}
	tbl.Render()
}

func intTable(w *ui.Writer, title, unit string, tiers []pricing.Tier[int]) {
	w.SubHeader(title)
	tbl := w.NewTable("Users up to", unit).AlignRight(0, 1)
	for _, tier := range tiers {
		tbl.AddRow(bound(tier.MaxUsers), strconv.Itoa(tier.Value))
	}
	tbl.Render()
}

func bound(n int) string {
	if n == pricing.Unbounded {
		return "∞"
	}
	return strconv.Itoa(n)
}
