package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"infra-estimator/core/pricing/primitives"
	"infra-estimator/core/types"
)

var dec = primitives.Dec

// On-demand hourly prices, us-east-1
var (
	t3Medium = dec(0.0416)
	t3Large  = dec(0.0832)
	t3XLarge = dec(0.1664)

	cacheT3Micro = NodeType{Type: "cache.t3.micro", Hourly: dec(0.017)}
	cacheT3Small = NodeType{Type: "cache.t3.small", Hourly: dec(0.034)}

	dbT3Micro  = NodeType{Type: "db.t3.micro", Hourly: dec(0.017)}
	dbT3Small  = NodeType{Type: "db.t3.small", Hourly: dec(0.034)}
	dbT3Medium = NodeType{Type: "db.t3.medium", Hourly: dec(0.068)}
	dbM5Large  = NodeType{Type: "db.m5.large", Hourly: dec(0.171)}
)

// Rates are the usage-driven unit prices and free allowances shared by
// both presets.
type Rates struct {
	S3PerGB              decimal.Decimal
	S3RequestsPerUser    decimal.Decimal
	S3PerThousandRequest decimal.Decimal

	CognitoFreeMAU    decimal.Decimal
	CognitoTierSize   decimal.Decimal
	CognitoFirstRate  decimal.Decimal
	CognitoSecondRate decimal.Decimal

	MessagingFreeRequests decimal.Decimal
	SNSPerUser            decimal.Decimal
	SNSPerMillion         decimal.Decimal
	SQSPerUser            decimal.Decimal
	SQSPerMillion         decimal.Decimal

	TransferBaseGB     decimal.Decimal
	TransferUsersPerGB decimal.Decimal
	TransferFreeGB     decimal.Decimal
	TransferPerGB      decimal.Decimal

	RDSStoragePerGB decimal.Decimal

	APIRequestsPerUser decimal.Decimal
	APIPerMillion      decimal.Decimal

	NATGatewayHourly decimal.Decimal

	ALBHourly   decimal.Decimal
	LCUHourly   decimal.Decimal
	UsersPerLCU int

	MetricsPerService int
	FreeMetrics       decimal.Decimal
	PerMetric         decimal.Decimal
	LogGBPerUser      decimal.Decimal
	FreeLogGB         decimal.Decimal
	PerLogGB          decimal.Decimal
}

// DefaultRates returns the us-east-1 rate card
func DefaultRates() Rates {
	return Rates{
		S3PerGB:              dec(0.023),
		S3RequestsPerUser:    decimal.NewFromInt(1000),
		S3PerThousandRequest: dec(0.0004),

		CognitoFreeMAU:    decimal.NewFromInt(50_000),
		CognitoTierSize:   decimal.NewFromInt(50_000),
		CognitoFirstRate:  dec(0.0055),
		CognitoSecondRate: dec(0.0046),

		MessagingFreeRequests: decimal.NewFromInt(1_000_000),
		SNSPerUser:            decimal.NewFromInt(100),
		SNSPerMillion:         dec(0.50),
		SQSPerUser:            decimal.NewFromInt(500),
		SQSPerMillion:         dec(0.40),

		TransferBaseGB:     decimal.NewFromInt(10),
		TransferUsersPerGB: decimal.NewFromInt(10),
		TransferFreeGB:     decimal.NewFromInt(100),
		TransferPerGB:      dec(0.09),

		RDSStoragePerGB: dec(0.115),

		APIRequestsPerUser: decimal.NewFromInt(1000),
		APIPerMillion:      dec(3.50),

		NATGatewayHourly: dec(0.045),

		ALBHourly:   dec(0.0225),
		LCUHourly:   dec(0.008),
		UsersPerLCU: 1000,

		MetricsPerService: 10,
		FreeMetrics:       decimal.NewFromInt(10),
		PerMetric:         dec(0.30),
		LogGBPerUser:      dec(0.01),
		FreeLogGB:         decimal.NewFromInt(5),
		PerLogGB:          dec(0.50),
	}
}

// Tables is the complete pricing definition of one preset
type Tables struct {
	// Name is the preset these tables implement
	Name types.Preset

	// Description is shown in preset listings
	Description string

	// Services are the line items in output order
	Services []types.Service

	// EC2 maps an architecture to its instance tiers. Presets that ignore
	// architecture register the same tiers under both keys.
	EC2 map[types.Architecture][]Tier[InstanceSpec]

	S3StorageGB []Tier[int]

	RedisNode      []Tier[NodeType]
	RedisInstances []Tier[int]

	RDSNode      []Tier[NodeType]
	RDSStorageGB []Tier[int]

	Rates Rates
}

// Architecture returns the tables of the monorepo/microservices calculator
func Architecture() *Tables {
	return &Tables{
		Name:        types.PresetArchitecture,
		Description: "20 Node.js services (10 backend + 10 frontend), monorepo vs microservices",
		Services: []types.Service{
			types.ServiceEC2,
			types.ServiceS3,
			types.ServiceCognito,
			types.ServiceSNS,
			types.ServiceSQS,
			types.ServiceRedis,
			types.ServiceDataTransfer,
		},
		EC2: map[types.Architecture][]Tier[InstanceSpec]{
			types.ArchitectureMonorepo: {
				{MaxUsers: 50, Value: InstanceSpec{Count: 1, Type: "t3.large", Hourly: t3Large}},
				{MaxUsers: 100, Value: InstanceSpec{Count: 2, Type: "t3.large", Hourly: t3Large}},
				{MaxUsers: 200, Value: InstanceSpec{Count: 2, Type: "t3.xlarge", Hourly: t3XLarge}},
				{MaxUsers: Unbounded, Value: InstanceSpec{Count: 3, Type: "t3.xlarge", Hourly: t3XLarge}},
			},
			types.ArchitectureMicroservices: {
				{MaxUsers: 40, Value: InstanceSpec{Count: 6, Type: "t3.medium", Hourly: t3Medium}},
				{MaxUsers: 100, Value: InstanceSpec{Count: 8, Type: "t3.medium", Hourly: t3Medium}},
				{MaxUsers: 200, Value: InstanceSpec{Count: 12, Type: "t3.medium", Hourly: t3Medium}},
				{MaxUsers: Unbounded, Value: InstanceSpec{Count: 16, Type: "t3.medium", Hourly: t3Medium}},
			},
		},
		S3StorageGB: []Tier[int]{
			{MaxUsers: 40, Value: 20},
			{MaxUsers: 100, Value: 50},
			{MaxUsers: 200, Value: 100},
			{MaxUsers: 300, Value: 200},
			{MaxUsers: Unbounded, Value: 300},
		},
		RedisNode: []Tier[NodeType]{
			{MaxUsers: 100, Value: cacheT3Micro},
			{MaxUsers: Unbounded, Value: cacheT3Small},
		},
		RedisInstances: []Tier[int]{
			{MaxUsers: 200, Value: 1},
			{MaxUsers: Unbounded, Value: 2},
		},
		Rates: DefaultRates(),
	}
}

// Project returns the tables of the project planning calculator
func Project() *Tables {
	ec2 := []Tier[InstanceSpec]{
		{MaxUsers: 100, Value: InstanceSpec{Count: 2, Type: "t3.medium", Hourly: t3Medium}},
		{MaxUsers: 500, Value: InstanceSpec{Count: 3, Type: "t3.large", Hourly: t3Large}},
		{MaxUsers: 2000, Value: InstanceSpec{Count: 4, Type: "t3.xlarge", Hourly: t3XLarge}},
		{MaxUsers: Unbounded, Value: InstanceSpec{Count: 6, Type: "t3.xlarge", Hourly: t3XLarge}},
	}

	return &Tables{
		Name:        types.PresetProject,
		Description: "Project scope sizing with per-service toggles and team staffing",
		Services: []types.Service{
			types.ServiceEC2,
			types.ServiceRDS,
			types.ServiceRedis,
			types.ServiceS3,
			types.ServiceAPIGateway,
			types.ServiceVPC,
			types.ServiceCognito,
			types.ServiceSNS,
			types.ServiceSQS,
			types.ServiceLoadBalancer,
			types.ServiceMonitoring,
			types.ServiceDataTransfer,
		},
		EC2: map[types.Architecture][]Tier[InstanceSpec]{
			types.ArchitectureMonorepo:      ec2,
			types.ArchitectureMicroservices: ec2,
		},
		S3StorageGB: []Tier[int]{
			{MaxUsers: 100, Value: 20},
			{MaxUsers: 1000, Value: 50},
			{MaxUsers: 5000, Value: 100},
			{MaxUsers: 10000, Value: 200},
			{MaxUsers: Unbounded, Value: 300},
		},
		RedisNode: []Tier[NodeType]{
			{MaxUsers: 1000, Value: cacheT3Micro},
			{MaxUsers: Unbounded, Value: cacheT3Small},
		},
		RedisInstances: []Tier[int]{
			{MaxUsers: 5000, Value: 1},
			{MaxUsers: Unbounded, Value: 2},
		},
		RDSNode: []Tier[NodeType]{
			{MaxUsers: 100, Value: dbT3Micro},
			{MaxUsers: 1000, Value: dbT3Small},
			{MaxUsers: 5000, Value: dbT3Medium},
			{MaxUsers: Unbounded, Value: dbM5Large},
		},
		RDSStorageGB: []Tier[int]{
			{MaxUsers: 100, Value: 20},
			{MaxUsers: 1000, Value: 50},
			{MaxUsers: 5000, Value: 100},
			{MaxUsers: Unbounded, Value: 200},
		},
		Rates: DefaultRates(),
	}
}

// ForPreset returns the tables of preset
func ForPreset(preset types.Preset) (*Tables, error) {
	switch preset {
	case types.PresetArchitecture:
		return Architecture(), nil
	case types.PresetProject:
		return Project(), nil
	default:
		return nil, fmt.Errorf("unknown preset %q", preset)
	}
}
