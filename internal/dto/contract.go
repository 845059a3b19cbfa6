package dto

import "time"

// ContractRequest selects a contract template for a freelancer.
type ContractRequest struct {
	Niche        string `json:"niche"`
	Experience   string `json:"experience,omitempty"`
	ContractType string `json:"contractType,omitempty"`
}

// ContractResponse returns the rendered template with generation metadata.
type ContractResponse struct {
	Contract string           `json:"contract"`
	Metadata ContractMetadata `json:"metadata"`
}

// ContractMetadata records how the contract was generated.
type ContractMetadata struct {
	Niche        string    `json:"niche"`
	Experience   string    `json:"experience,omitempty"`
	ContractType string    `json:"contractType"`
	GeneratedAt  time.Time `json:"generatedAt"`
}
