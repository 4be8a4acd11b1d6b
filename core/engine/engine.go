// Package engine maps an estimation Configuration to a cost breakdown and
// a staffing plan. Every call is independent and deterministic: the engine
// holds no mutable state and performs no I/O.
//
// CLI and HTTP are thin wrappers around this package.
package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"infra-estimator/core/pricing"
	"infra-estimator/core/pricing/primitives"
	"infra-estimator/core/types"
)

// Engine evaluates configurations against a staffing model.
// The zero value is not usable; use New.
type Engine struct {
	staffing pricing.Staffing
}

// New creates an engine with the default staffing model
func New() *Engine {
	return &Engine{staffing: pricing.DefaultStaffing()}
}

// NewWithStaffing creates an engine with a custom staffing model
func NewWithStaffing(staffing pricing.Staffing) *Engine {
	return &Engine{staffing: staffing}
}

var defaultEngine = New()

// ComputeInfrastructureCost prices cfg with the default engine
func ComputeInfrastructureCost(cfg types.Configuration) *types.CostBreakdown {
	return defaultEngine.ComputeInfrastructureCost(cfg)
}

// ComputeTeamAndSchedule sizes a team for cfg with the default engine
func ComputeTeamAndSchedule(cfg types.Configuration) *types.TeamBreakdown {
	return defaultEngine.ComputeTeamAndSchedule(cfg)
}

var serviceLabels = map[types.Service]string{
	types.ServiceEC2:          "EC2 Instances",
	types.ServiceRDS:          "RDS Database",
	types.ServiceRedis:        "Redis (ElastiCache)",
	types.ServiceS3:           "S3 Storage",
	types.ServiceAPIGateway:   "API Gateway",
	types.ServiceVPC:          "VPC (NAT Gateway)",
	types.ServiceCognito:      "Cognito",
	types.ServiceSNS:          "SNS",
	types.ServiceSQS:          "SQS",
	types.ServiceLoadBalancer: "Load Balancer",
	types.ServiceMonitoring:   "Monitoring (CloudWatch)",
	types.ServiceDataTransfer: "Data Transfer",
}

// Label returns the display label of a line item
func Label(svc types.Service) string {
	if l, ok := serviceLabels[svc]; ok {
		return l
	}
	return string(svc)
}

// ComputeInfrastructureCost prices every line item of the configuration's
// preset. Disabled services are kept as zero-amount items so the item set
// of a preset never changes shape.
func (e *Engine) ComputeInfrastructureCost(cfg types.Configuration) *types.CostBreakdown {
	cfg, adjustments := Normalize(cfg)

	tables, err := pricing.ForPreset(cfg.Preset)
	if err != nil {
		// Normalize only yields known presets.
		panic(err)
	}

	c := &calculation{
		cfg:    cfg,
		tables: tables,
		rates:  tables.Rates,
		users:  decimal.NewFromInt(int64(cfg.UserCount)),
		out:    types.NewCostBreakdown(cfg.Preset, cfg.UserCount),
	}
	c.out.Adjustments = adjustments

	for _, svc := range tables.Services {
		c.price(svc)
	}

	return c.out
}

// calculation carries one evaluation of a configuration
type calculation struct {
	cfg    types.Configuration
	tables *pricing.Tables
	rates  pricing.Rates
	users  decimal.Decimal
	out    *types.CostBreakdown
}

func (c *calculation) price(svc types.Service) {
	var (
		detail string
		charge primitives.Charge
	)

	switch svc {
	case types.ServiceEC2:
		detail, charge = c.ec2()
	case types.ServiceS3:
		detail, charge = c.s3()
	case types.ServiceCognito:
		detail, charge = c.cognito()
	case types.ServiceSNS:
		detail, charge = c.sns()
	case types.ServiceSQS:
		detail, charge = c.sqs()
	case types.ServiceRedis:
		detail, charge = c.redis()
	case types.ServiceDataTransfer:
		detail, charge = c.dataTransfer()
	case types.ServiceRDS:
		detail, charge = c.rds()
	case types.ServiceAPIGateway:
		detail, charge = c.apiGateway()
	case types.ServiceVPC:
		detail, charge = c.vpc()
	case types.ServiceLoadBalancer:
		detail, charge = c.loadBalancer()
	case types.ServiceMonitoring:
		detail, charge = c.monitoring()
	default:
		panic(fmt.Sprintf("no pricing for service %q", svc))
	}

	item := types.LineItem{
		Service:  svc,
		Label:    Label(svc),
		Detail:   detail,
		Measure:  charge.Measure,
		Quantity: charge.Quantity,
		Rate:     charge.Rate,
		Amount:   charge.Amount,
		Enabled:  true,
		Required: svc.IsRequired(),
		Formula:  charge.Formula,
	}

	if c.cfg.Preset.Toggleable() && !c.cfg.EnabledServices.Has(svc) {
		item.Enabled = false
		item.Quantity = decimal.Zero
		item.Amount = decimal.Zero
		item.Formula = "disabled"
	}

	c.out.Add(item)
}

func (c *calculation) ec2() (string, primitives.Charge) {
	spec := pricing.Lookup(c.tables.EC2[c.cfg.Architecture], c.cfg.UserCount)
	c.out.Sizing.EC2Instances = spec.Count
	c.out.Sizing.EC2Type = spec.Type

	return fmt.Sprintf("%d× %s", spec.Count, spec.Type),
		primitives.InstanceHours(spec.Count, spec.Type, spec.Hourly)
}

func (c *calculation) s3() (string, primitives.Charge) {
	gb := pricing.Lookup(c.tables.S3StorageGB, c.cfg.UserCount)
	c.out.Sizing.S3StorageGB = gb

	storage := primitives.StorageGB(gb, c.rates.S3PerGB)
	requests := primitives.Requests(
		c.users.Mul(c.rates.S3RequestsPerUser),
		c.rates.S3PerThousandRequest,
		decimal.NewFromInt(1000),
	)

	return fmt.Sprintf("%d GB", gb),
		storage.Plus(requests, storage.Formula+" + "+requests.Formula)
}

func (c *calculation) cognito() (string, primitives.Charge) {
	billable := primitives.FreeTier(c.users, c.rates.CognitoFreeMAU)
	amount := primitives.CalculateTieredCost(billable, []primitives.PricingTier{
		{UpTo: c.rates.CognitoTierSize, UnitRate: c.rates.CognitoFirstRate},
		{UnitRate: c.rates.CognitoSecondRate},
	})

	detail := "Free tier"
	formula := fmt.Sprintf("%s MAU within %s free", c.users.String(), c.rates.CognitoFreeMAU.String())
	if billable.IsPositive() {
		detail = fmt.Sprintf("%s billable MAU", billable.String())
		formula = fmt.Sprintf("first %s billable × $%s, remainder × $%s",
			c.rates.CognitoTierSize.String(), c.rates.CognitoFirstRate.String(), c.rates.CognitoSecondRate.String())
	}

	return detail, primitives.Charge{
		Measure:  "MAU",
		Quantity: billable,
		Rate:     c.rates.CognitoFirstRate,
		Amount:   amount,
		Formula:  formula,
	}
}

func (c *calculation) sns() (string, primitives.Charge) {
	messages := c.users.Mul(c.rates.SNSPerUser)
	c.out.Sizing.SNSMessages = messages.IntPart()

	return fmt.Sprintf("%sk msgs", messages.Div(decimal.NewFromInt(1000)).StringFixed(0)),
		primitives.FreeTierRequests(messages, c.rates.MessagingFreeRequests, c.rates.SNSPerMillion)
}

func (c *calculation) sqs() (string, primitives.Charge) {
	requests := c.users.Mul(c.rates.SQSPerUser)
	c.out.Sizing.SQSRequests = requests.IntPart()

	return fmt.Sprintf("%sk msgs", requests.Div(decimal.NewFromInt(1000)).StringFixed(0)),
		primitives.FreeTierRequests(requests, c.rates.MessagingFreeRequests, c.rates.SQSPerMillion)
}

func (c *calculation) redis() (string, primitives.Charge) {
	node := pricing.Lookup(c.tables.RedisNode, c.cfg.UserCount)
	count := pricing.Lookup(c.tables.RedisInstances, c.cfg.UserCount)
	c.out.Sizing.RedisType = node.Type
	c.out.Sizing.RedisInstances = count

	return fmt.Sprintf("%d× %s", count, node.Type),
		primitives.NodeHours(count, node.Type, node.Hourly)
}

func (c *calculation) dataTransfer() (string, primitives.Charge) {
	gb := c.rates.TransferBaseGB.Add(c.users.Div(c.rates.TransferUsersPerGB))
	c.out.Sizing.DataTransferGB = gb

	return fmt.Sprintf("~%s GB", gb.StringFixed(0)),
		primitives.DataTransferGB(gb, c.rates.TransferFreeGB, c.rates.TransferPerGB)
}

func (c *calculation) rds() (string, primitives.Charge) {
	node := pricing.Lookup(c.tables.RDSNode, c.cfg.UserCount)
	gb := pricing.Lookup(c.tables.RDSStorageGB, c.cfg.UserCount)
	c.out.Sizing.RDSClass = node.Type
	c.out.Sizing.RDSStorageGB = gb

	instance := primitives.NodeHours(1, node.Type, node.Hourly)
	storage := primitives.StorageGB(gb, c.rates.RDSStoragePerGB)

	return fmt.Sprintf("%s + %d GB", node.Type, gb),
		instance.Plus(storage, instance.Formula+" + "+storage.Formula)
}

func (c *calculation) apiGateway() (string, primitives.Charge) {
	requests := c.users.Mul(c.rates.APIRequestsPerUser)

	return fmt.Sprintf("%s requests", requests.String()),
		primitives.Requests(requests, c.rates.APIPerMillion, primitives.Million)
}

func (c *calculation) vpc() (string, primitives.Charge) {
	return "1× NAT gateway", primitives.FixedHourly("NAT gateway", c.rates.NATGatewayHourly)
}

func (c *calculation) loadBalancer() (string, primitives.Charge) {
	lcus := (c.cfg.UserCount + c.rates.UsersPerLCU - 1) / c.rates.UsersPerLCU
	if lcus < 1 {
		lcus = 1
	}

	alb := primitives.FixedHourly("ALB", c.rates.ALBHourly)
	capacity := primitives.InstanceHours(lcus, "LCU", c.rates.LCUHourly)

	return fmt.Sprintf("1× ALB, %d LCU", lcus),
		alb.Plus(capacity, alb.Formula+" + "+capacity.Formula)
}

func (c *calculation) monitoring() (string, primitives.Charge) {
	metrics := decimal.NewFromInt(int64(c.rates.MetricsPerService * c.cfg.Scope.Total()))
	billableMetrics := primitives.FreeTier(metrics, c.rates.FreeMetrics)
	metricCost := billableMetrics.Mul(c.rates.PerMetric)

	logsGB := c.users.Mul(c.rates.LogGBPerUser)
	billableLogs := primitives.FreeTier(logsGB, c.rates.FreeLogGB)
	logCost := billableLogs.Mul(c.rates.PerLogGB)

	return fmt.Sprintf("%s metrics, %s GB logs", metrics.String(), logsGB.String()),
		primitives.Charge{
			Measure:  "metrics",
			Quantity: billableMetrics,
			Rate:     c.rates.PerMetric,
			Amount:   metricCost.Add(logCost),
			Formula: fmt.Sprintf("(%s - %s free) metrics × $%s + (%s - %s free) GB logs × $%s",
				metrics.String(), c.rates.FreeMetrics.String(), c.rates.PerMetric.String(),
				logsGB.String(), c.rates.FreeLogGB.String(), c.rates.PerLogGB.String()),
		}
}
