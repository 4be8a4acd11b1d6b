// Package types - Managed cloud services and toggle sets
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Service names a billable cloud service line item
type Service string

const (
	ServiceEC2          Service = "EC2"
	ServiceRDS          Service = "RDS"
	ServiceRedis        Service = "Redis"
	ServiceS3           Service = "S3"
	ServiceAPIGateway   Service = "APIGateway"
	ServiceVPC          Service = "VPC"
	ServiceCognito      Service = "Cognito"
	ServiceSNS          Service = "SNS"
	ServiceSQS          Service = "SQS"
	ServiceLoadBalancer Service = "LoadBalancer"
	ServiceMonitoring   Service = "Monitoring"

	// ServiceDataTransfer is always billed; it has no toggle.
	ServiceDataTransfer Service = "DataTransfer"
)

// ToggleServices lists the services that can be switched on and off,
// in bit order of ServiceSet.
var ToggleServices = []Service{
	ServiceEC2,
	ServiceRDS,
	ServiceRedis,
	ServiceS3,
	ServiceAPIGateway,
	ServiceVPC,
	ServiceCognito,
	ServiceSNS,
	ServiceSQS,
	ServiceLoadBalancer,
	ServiceMonitoring,
}

// RequiredServices cannot be disabled
var RequiredServices = []Service{ServiceEC2, ServiceS3, ServiceVPC}

var serviceAliases = map[string]Service{
	"ec2":           ServiceEC2,
	"rds":           ServiceRDS,
	"redis":         ServiceRedis,
	"elasticache":   ServiceRedis,
	"s3":            ServiceS3,
	"apigateway":    ServiceAPIGateway,
	"api_gateway":   ServiceAPIGateway,
	"api-gateway":   ServiceAPIGateway,
	"vpc":           ServiceVPC,
	"cognito":       ServiceCognito,
	"sns":           ServiceSNS,
	"sqs":           ServiceSQS,
	"loadbalancer":  ServiceLoadBalancer,
	"load_balancer": ServiceLoadBalancer,
	"load-balancer": ServiceLoadBalancer,
	"alb":           ServiceLoadBalancer,
	"monitoring":    ServiceMonitoring,
	"cloudwatch":    ServiceMonitoring,
	"datatransfer":  ServiceDataTransfer,
	"data_transfer": ServiceDataTransfer,
}

// ParseService resolves a service name, case-insensitively
func ParseService(name string) (Service, error) {
	if svc, ok := serviceAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return svc, nil
	}
	return "", fmt.Errorf("unknown service %q", name)
}

// IsToggleable reports whether the service has an on/off switch
func (s Service) IsToggleable() bool {
	return s.bit() != 0
}

// IsRequired reports whether the service is always enabled
func (s Service) IsRequired() bool {
	for _, r := range RequiredServices {
		if r == s {
			return true
		}
	}
	return false
}

func (s Service) bit() ServiceSet {
	for i, svc := range ToggleServices {
		if svc == s {
			return 1 << uint(i)
		}
	}
	return 0
}

// ServiceSet is an immutable set of enabled toggle services.
// It is a plain value so Configuration stays comparable.
type ServiceSet uint16

// NewServiceSet builds a set from the given services. Non-toggle services are ignored.
func NewServiceSet(services ...Service) ServiceSet {
	var set ServiceSet
	for _, svc := range services {
		set |= svc.bit()
	}
	return set
}

// AllServices returns the set with every toggle enabled
func AllServices() ServiceSet {
	return NewServiceSet(ToggleServices...)
}

// Has reports whether svc is enabled. Services without a toggle are always enabled.
func (s ServiceSet) Has(svc Service) bool {
	bit := svc.bit()
	if bit == 0 {
		return true
	}
	return s&bit != 0
}

// With returns a copy of the set with svc enabled
func (s ServiceSet) With(svc Service) ServiceSet {
	return s | svc.bit()
}

// Without returns a copy of the set with svc disabled
func (s ServiceSet) Without(svc Service) ServiceSet {
	return s &^ svc.bit()
}

// Services lists enabled services in toggle order
func (s ServiceSet) Services() []Service {
	out := make([]Service, 0, len(ToggleServices))
	for _, svc := range ToggleServices {
		if s.Has(svc) {
			out = append(out, svc)
		}
	}
	return out
}

// String returns a comma-separated list of enabled services
func (s ServiceSet) String() string {
	names := make([]string, 0, len(ToggleServices))
	for _, svc := range s.Services() {
		names = append(names, string(svc))
	}
	return strings.Join(names, ",")
}

// MarshalJSON encodes the set as a list of service names
func (s ServiceSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Services())
}

// UnmarshalJSON decodes a list of service names
func (s *ServiceSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	set, err := ParseServiceSet(names)
	if err != nil {
		return err
	}
	*s = set
	return nil
}

// ParseServiceSet resolves a list of service names into a set
func ParseServiceSet(names []string) (ServiceSet, error) {
	var set ServiceSet
	for _, name := range names {
		svc, err := ParseService(name)
		if err != nil {
			return 0, err
		}
		set = set.With(svc)
	}
	return set, nil
}
