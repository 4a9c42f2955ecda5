package domain

// Service is a single sellable treatment.
type Service struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	PriceEUR    int    `yaml:"price_eur" json:"price_eur"`
}

// ServiceGroup is a display category of services. Group and service order is
// preserved for display; validation only cares about name membership.
type ServiceGroup struct {
	Name     string    `yaml:"name" json:"name"`
	Services []Service `yaml:"services" json:"services"`
}
